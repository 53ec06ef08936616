package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/garagebook/garagebook/internal/models"
)

func TestBookmarkEndpoints(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/bookmarks", map[string]string{
		"url":   "https://example.com/charging-map",
		"notes": "public chargers",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Bookmark
	decodeBody(t, rec, &created)
	if created.ID == 0 || created.URL != "https://example.com/charging-map" {
		t.Errorf("round trip mismatch: %+v", created)
	}

	t.Run("missing url", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/bookmarks", map[string]string{"notes": "x"})
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("reorder", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/bookmarks", map[string]string{"url": "https://example.com/2"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("seeding: status %d", rec.Code)
		}
		var second models.Bookmark
		decodeBody(t, rec, &second)

		rec = doJSON(t, h, http.MethodPost, "/api/bookmarks/reorder", map[string]any{
			"bookmarks": []map[string]int{{"id": second.ID}, {"id": created.ID}},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("update", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/bookmarks/%d", created.ID), map[string]string{
			"url": "https://example.com/charging-map", "notes": "fast chargers only",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got models.Bookmark
		decodeBody(t, rec, &got)
		if got.Notes != "fast chargers only" {
			t.Errorf("notes = %q", got.Notes)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/bookmarks/%d", created.ID), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/bookmarks/%d", created.ID), nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("second delete status = %d, want 404", rec.Code)
		}
	})
}
