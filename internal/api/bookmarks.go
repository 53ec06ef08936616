package api

import (
	"encoding/json"
	"net/http"

	"github.com/garagebook/garagebook/internal/models"
)

func (s *Server) listBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.db.ListBookmarks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	writeJSON(w, http.StatusOK, bookmarks)
}

func (s *Server) createBookmark(w http.ResponseWriter, r *http.Request) {
	var b models.Bookmark
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if b.URL == "" {
		writeError(w, http.StatusInternalServerError, "url is required")
		return
	}

	created, err := s.db.CreateBookmark(r.Context(), &b)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Bookmark not found")
		return
	}

	var b models.Bookmark
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	updated, err := s.db.UpdateBookmark(r.Context(), id, &b)
	if err != nil {
		writeDBError(w, err, "Bookmark not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Bookmark not found")
		return
	}

	if err := s.db.DeleteBookmark(r.Context(), id); err != nil {
		writeDBError(w, err, "Bookmark not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bookmark deleted successfully"})
}

func (s *Server) reorderBookmarks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bookmarks []struct {
			ID int `json:"id"`
		} `json:"bookmarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	ids := make([]int, 0, len(req.Bookmarks))
	for _, b := range req.Bookmarks {
		ids = append(ids, b.ID)
	}

	if err := s.db.ReorderBookmarks(r.Context(), ids); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Bookmarks reordered successfully"})
}
