package database

import (
	"context"
	"database/sql"

	"github.com/garagebook/garagebook/internal/models"
)

const billSelect = `
	SELECT b.id, b.amount, b.category_id, b.date, COALESCE(b.notes, ''), b.created_at,
		COALESCE(c.name, ''), COALESCE(c.type, ''), COALESCE(c.color, '')
	FROM bills b
	LEFT JOIN categories c ON b.category_id = c.id`

func scanBill(row interface{ Scan(...any) error }) (*models.Bill, error) {
	var b models.Bill
	var categoryID sql.NullInt64
	err := row.Scan(&b.ID, &b.Amount, &categoryID, &b.Date, &b.Notes, &b.CreatedAt,
		&b.CategoryName, &b.CategoryType, &b.CategoryColor)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		b.CategoryID = &id
	}
	return &b, nil
}

func (db *DB) ListBills(ctx context.Context) ([]models.Bill, error) {
	rows, err := db.conn.QueryContext(ctx, billSelect+" ORDER BY b.date DESC, b.id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}

func (db *DB) GetBill(ctx context.Context, id int) (*models.Bill, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(billSelect+" WHERE b.id = ?"), id)
	b, err := scanBill(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (db *DB) CreateBill(ctx context.Context, b *models.Bill) (*models.Bill, error) {
	query := "INSERT INTO bills (amount, category_id, date, notes) VALUES (?, ?, ?, ?)"
	args := []any{b.Amount, b.CategoryID, b.Date, b.Notes}

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

	return db.GetBill(ctx, id)
}

func (db *DB) UpdateBill(ctx context.Context, id int, b *models.Bill) (*models.Bill, error) {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE bills SET amount = ?, category_id = ?, date = ?, notes = ? WHERE id = ?"),
		b.Amount, b.CategoryID, b.Date, b.Notes, id)
	if err != nil {
		return nil, wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetBill(ctx, id)
}

func (db *DB) DeleteBill(ctx context.Context, id int) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM bills WHERE id = ?"), id)
	if err != nil {
		return wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SumBillsByType sums bill amounts grouped into income/expense over a date
// window, both bounds inclusive. Dates compare as ISO strings.
func (db *DB) SumBillsByType(ctx context.Context, start, end string) (models.BillTotals, error) {
	var t models.BillTotals
	err := db.conn.QueryRowContext(ctx, db.rebind(`
		SELECT
			COALESCE(SUM(CASE WHEN c.type = 'income' THEN b.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN c.type = 'expense' THEN b.amount ELSE 0 END), 0)
		FROM bills b
		LEFT JOIN categories c ON b.category_id = c.id
		WHERE b.date >= ? AND b.date <= ?`), start, end).Scan(&t.Income, &t.Expense)
	if err != nil {
		return t, err
	}
	t.Net = t.Income - t.Expense
	return t, nil
}

// CategoryBreakdown groups bills by category with summed amounts. Bills whose
// category was deleted land in an "uncategorized" bucket.
func (db *DB) CategoryBreakdown(ctx context.Context) ([]models.CategoryGroup, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT COALESCE(c.name, 'uncategorized'), COALESCE(c.type, ''),
			COALESCE(c.color, '#999999'), COALESCE(SUM(b.amount), 0)
		FROM bills b
		LEFT JOIN categories c ON b.category_id = c.id
		GROUP BY c.id, c.name, c.type, c.color
		ORDER BY SUM(b.amount) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.CategoryGroup
	for rows.Next() {
		var g models.CategoryGroup
		if err := rows.Scan(&g.Name, &g.Type, &g.Color, &g.Total); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// --- Categories ---

func (db *DB) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, name, type, color FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (db *DB) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var c models.Category
	err := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT id, name, type, color FROM categories WHERE id = ?"), id).
		Scan(&c.ID, &c.Name, &c.Type, &c.Color)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	query := "INSERT INTO categories (name, type, color) VALUES (?, ?, ?)"
	args := []any{c.Name, c.Type, c.Color}

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

	return db.GetCategory(ctx, id)
}

func (db *DB) UpdateCategory(ctx context.Context, id int, c *models.Category) (*models.Category, error) {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE categories SET name = ?, type = ?, color = ? WHERE id = ?"),
		c.Name, c.Type, c.Color, id)
	if err != nil {
		return nil, wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetCategory(ctx, id)
}

// DeleteCategory removes the category only; its bills keep their dangling
// category_id and render uncategorized.
func (db *DB) DeleteCategory(ctx context.Context, id int) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM categories WHERE id = ?"), id)
	if err != nil {
		return wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
