package api

import (
	"fmt"
	"net/http"

	"github.com/garagebook/garagebook/internal/export"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportCharging(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	ctx := r.Context()
	vehicle, err := s.db.GetVehicle(ctx, id)
	if err != nil {
		writeDBError(w, err, "Vehicle not found")
		return
	}
	records, err := s.db.ListCharging(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := export.ChargingWorkbook(vehicle, records)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook: "+err.Error())
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="charging-%s.xlsx"`, vehicle.LicensePlate))
	if err := f.Write(w); err != nil {
		log.Warn().Err(err).Msg("failed to stream charging export")
	}
}

func (s *Server) exportBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.db.ListBills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	f, err := export.BillsWorkbook(bills)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build workbook: "+err.Error())
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="bills.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Warn().Err(err).Msg("failed to stream bills export")
	}
}
