package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/garagebook/garagebook/internal/models"
	"github.com/garagebook/garagebook/internal/stats"
	"github.com/rs/zerolog/log"
)

func (s *Server) listCharging(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	records, err := s.db.ListCharging(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []models.ChargingRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) createCharging(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var c models.ChargingRecord
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if c.ChargingDate == "" {
		writeError(w, http.StatusInternalServerError, "charging_date is required")
		return
	}
	c.VehicleID = id

	created, err := s.db.CreateCharging(r.Context(), &c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().
		Int("id", created.ID).
		Int("vehicle_id", id).
		Float64("current_mileage", created.CurrentMileage).
		Msg("charging record created")
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateCharging(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Charging record not found")
		return
	}

	var c models.ChargingRecord
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	updated, err := s.db.UpdateCharging(r.Context(), id, &c)
	if err != nil {
		writeDBError(w, err, "Charging record not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteCharging(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Charging record not found")
		return
	}

	vehicleID, previousMileage, err := s.db.DeleteCharging(r.Context(), id)
	if err != nil {
		writeDBError(w, err, "Charging record not found")
		return
	}

	log.Info().Int("id", id).Int("vehicle_id", vehicleID).Msg("charging record deleted")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Charging record deleted successfully",
		"previous_mileage": previousMileage,
		"vehicle_id":       vehicleID,
	})
}

// --- Charging Statistics ---

func (s *Server) getChargingSummary(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	if _, err := s.db.GetVehicle(r.Context(), id); err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}

	records, err := s.db.ListCharging(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(records))
}

func (s *Server) getChargingTrend(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	if _, err := s.db.GetVehicle(r.Context(), id); err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}

	records, err := s.db.ListCharging(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats.Trend(records, time.Now()))
}

func (s *Server) getChargingLocations(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	if _, err := s.db.GetVehicle(r.Context(), id); err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}

	records, err := s.db.ListCharging(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	groups, total := stats.Locations(records)
	if groups == nil {
		groups = []models.LocationGroup{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": groups,
		"total":     total,
	})
}
