package database

import (
	"context"
	"database/sql"

	"github.com/garagebook/garagebook/internal/models"
)

const bookmarkSelect = `
	SELECT id, url, COALESCE(notes, ''), COALESCE(favicon, ''), created_at, updated_at
	FROM bookmarks`

func scanBookmark(row interface{ Scan(...any) error }) (*models.Bookmark, error) {
	var b models.Bookmark
	err := row.Scan(&b.ID, &b.URL, &b.Notes, &b.Favicon, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	rows, err := db.conn.QueryContext(ctx, bookmarkSelect+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, *b)
	}
	return bookmarks, rows.Err()
}

func (db *DB) GetBookmark(ctx context.Context, id int) (*models.Bookmark, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(bookmarkSelect+" WHERE id = ?"), id)
	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (db *DB) CreateBookmark(ctx context.Context, b *models.Bookmark) (*models.Bookmark, error) {
	query := "INSERT INTO bookmarks (url, notes, favicon) VALUES (?, ?, ?)"
	args := []any{b.URL, b.Notes, b.Favicon}

	var id int
	if db.driver == "postgres" {
		err := db.conn.QueryRowContext(ctx, db.rebind(query)+" RETURNING id", args...).Scan(&id)
		if err != nil {
			return nil, wrapError(err)
		}
	} else {
		res, err := db.conn.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, wrapError(err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		id = int(lastID)
	}

	return db.GetBookmark(ctx, id)
}

func (db *DB) UpdateBookmark(ctx context.Context, id int, b *models.Bookmark) (*models.Bookmark, error) {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE bookmarks SET url = ?, notes = ?, favicon = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"),
		b.URL, b.Notes, b.Favicon, id)
	if err != nil {
		return nil, wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetBookmark(ctx, id)
}

func (db *DB) DeleteBookmark(ctx context.Context, id int) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM bookmarks WHERE id = ?"), id)
	if err != nil {
		return wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderBookmarks touches updated_at for the given ids in order, inside one
// transaction.
func (db *DB) ReorderBookmarks(ctx context.Context, ids []int) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := db.rebind("UPDATE bookmarks SET updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return wrapError(err)
		}
	}

	return tx.Commit()
}
