package api

import (
	"encoding/json"
	"net/http"

	"github.com/garagebook/garagebook/internal/models"
)

func (s *Server) listMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	records, err := s.db.ListMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []models.MaintenanceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) createMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var m models.MaintenanceRecord
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if m.ServiceDate == "" || m.ServiceType == "" {
		writeError(w, http.StatusInternalServerError, "service_date and service_type are required")
		return
	}
	m.VehicleID = id

	created, err := s.db.CreateMaintenance(r.Context(), &m)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
