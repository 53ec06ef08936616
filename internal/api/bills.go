package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/garagebook/garagebook/internal/models"
	"github.com/garagebook/garagebook/internal/stats"
)

func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.db.ListBills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) getBill(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Bill not found")
		return
	}

	bill, err := s.db.GetBill(r.Context(), id)
	if err != nil {
		writeDBError(w, err, "Bill not found")
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) createBill(w http.ResponseWriter, r *http.Request) {
	var b models.Bill
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if b.Date == "" {
		writeError(w, http.StatusInternalServerError, "date is required")
		return
	}

	created, err := s.db.CreateBill(r.Context(), &b)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateBill(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Bill not found")
		return
	}

	var b models.Bill
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	updated, err := s.db.UpdateBill(r.Context(), id, &b)
	if err != nil {
		writeDBError(w, err, "Bill not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Bill not found")
		return
	}

	if err := s.db.DeleteBill(r.Context(), id); err != nil {
		writeDBError(w, err, "Bill not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bill deleted successfully"})
}

// getMonthlyBillStats sums the current and previous calendar month and reports
// the month-over-month change.
func (s *Server) getMonthlyBillStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current, previous := stats.MonthWindows(time.Now())

	currentTotals, err := s.db.SumBillsByType(ctx, current.Start, current.End)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	previousTotals, err := s.db.SumBillsByType(ctx, previous.Start, previous.End)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stats.MonthlyBills(currentTotals, previousTotals))
}

func (s *Server) getCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	groups, err := s.db.CategoryBreakdown(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if groups == nil {
		groups = []models.CategoryGroup{}
	}

	var total float64
	for _, g := range groups {
		total += g.Total
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": groups,
		"total":      stats.Round2(total),
	})
}

// --- Categories ---

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.db.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if c.Name == "" || c.Type == "" {
		writeError(w, http.StatusInternalServerError, "name and type are required")
		return
	}

	created, err := s.db.CreateCategory(r.Context(), &c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	updated, err := s.db.UpdateCategory(r.Context(), id, &c)
	if err != nil {
		writeDBError(w, err, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	if err := s.db.DeleteCategory(r.Context(), id); err != nil {
		writeDBError(w, err, "Category not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
