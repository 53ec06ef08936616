package database

import (
	"context"
	"errors"
	"testing"

	"github.com/garagebook/garagebook/internal/models"
)

func TestBookmarkCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	b, err := db.CreateBookmark(ctx, &models.Bookmark{
		URL:     "https://example.com/charging-map",
		Notes:   "public chargers",
		Favicon: "https://example.com/favicon.ico",
	})
	if err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}
	if b.ID == 0 {
		t.Fatal("created bookmark has no id")
	}
	if b.URL != "https://example.com/charging-map" || b.Notes != "public chargers" {
		t.Errorf("round trip mismatch: %+v", b)
	}

	t.Run("update", func(t *testing.T) {
		b.Notes = "fast chargers only"
		got, err := db.UpdateBookmark(ctx, b.ID, b)
		if err != nil {
			t.Fatalf("UpdateBookmark: %v", err)
		}
		if got.Notes != "fast chargers only" {
			t.Errorf("notes = %q", got.Notes)
		}
	})

	t.Run("reorder", func(t *testing.T) {
		second, err := db.CreateBookmark(ctx, &models.Bookmark{URL: "https://example.com/2"})
		if err != nil {
			t.Fatalf("CreateBookmark: %v", err)
		}
		if err := db.ReorderBookmarks(ctx, []int{second.ID, b.ID}); err != nil {
			t.Fatalf("ReorderBookmarks: %v", err)
		}
		list, err := db.ListBookmarks(ctx)
		if err != nil {
			t.Fatalf("ListBookmarks: %v", err)
		}
		if len(list) != 2 {
			t.Errorf("got %d bookmarks, want 2", len(list))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := db.DeleteBookmark(ctx, b.ID); err != nil {
			t.Fatalf("DeleteBookmark: %v", err)
		}
		if _, err := db.GetBookmark(ctx, b.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}
