package api

import (
	"encoding/json"
	"net/http"

	"github.com/garagebook/garagebook/internal/models"
	"github.com/rs/zerolog/log"
)

func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.db.ListVehicles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (s *Server) searchVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	vehicles, err := s.db.SearchVehicles(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (s *Server) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	vehicle, err := s.db.GetVehicle(r.Context(), id)
	if err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if v.LicensePlate == "" || v.Brand == "" || v.Model == "" {
		writeError(w, http.StatusInternalServerError, "license_plate, brand and model are required")
		return
	}
	models.DefaultVehicle.Apply(&v)

	created, err := s.db.CreateVehicle(r.Context(), &v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Int("id", created.ID).Str("plate", created.LicensePlate).Msg("vehicle created")
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var v models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	models.DefaultVehicle.Apply(&v)

	updated, err := s.db.UpdateVehicle(r.Context(), id, &v)
	if err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	if err := s.db.DeleteVehicle(r.Context(), id); err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}

	log.Info().Int("id", id).Msg("vehicle deleted with records")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted successfully"})
}

func (s *Server) setVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var req struct {
		StatusFlag string `json:"status_flag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	// "in use" goes through the atomic single-active transition; anything
	// else is a plain flag update.
	if req.StatusFlag == models.StatusInUse {
		err = s.db.ActivateVehicle(r.Context(), id)
	} else {
		err = s.db.SetVehicleStatus(r.Context(), id, req.StatusFlag)
	}
	if err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated successfully"})
}

func (s *Server) clearVehicleStatus(w http.ResponseWriter, r *http.Request) {
	if err := s.db.ClearInUse(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "All vehicles set to unused"})
}
