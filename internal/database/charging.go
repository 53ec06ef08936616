package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garagebook/garagebook/internal/models"
)

// chargingFieldMap maps wire field names to the legacy storage column names of
// charging_records. Every charging query is built from this map so the remap
// lives in exactly one place.
var chargingFieldMap = map[string]string{
	"charging_date":             "date",
	"charging_location":         "location",
	"previous_mileage":          "previous_mileage",
	"current_mileage":           "current_mileage",
	"driven_mileage":            "distance_driven",
	"meter_charging_kwh":        "meter_kwh",
	"charging_start_percentage": "battery_before",
	"charging_end_percentage":   "battery_after",
	"car_charging_kwh":          "car_kwh",
	"energy_loss_kwh":           "energy_loss",
	"amount":                    "amount",
	"notes":                     "notes",
}

// chargingFields fixes the wire-field order shared by the select, insert and
// update statements and by scanCharging.
var chargingFields = []string{
	"charging_date",
	"charging_location",
	"previous_mileage",
	"current_mileage",
	"driven_mileage",
	"meter_charging_kwh",
	"charging_start_percentage",
	"charging_end_percentage",
	"car_charging_kwh",
	"energy_loss_kwh",
	"amount",
	"notes",
}

// chargingColumn resolves a wire field name to its storage column.
func chargingColumn(wire string) string {
	return chargingFieldMap[wire]
}

// chargingWireField is the reverse lookup, column to wire field.
func chargingWireField(column string) string {
	for wire, col := range chargingFieldMap {
		if col == column {
			return wire
		}
	}
	return ""
}

func chargingSelectList() string {
	cols := make([]string, 0, len(chargingFields)+3)
	cols = append(cols, "id", "vehicle_id")
	for _, f := range chargingFields {
		col := chargingColumn(f)
		if col == "location" || col == "notes" {
			col = "COALESCE(" + col + ", '')"
		}
		cols = append(cols, col)
	}
	cols = append(cols, "created_at")
	return strings.Join(cols, ", ")
}

func chargingInsertQuery() string {
	cols := make([]string, 0, len(chargingFields)+1)
	cols = append(cols, "vehicle_id")
	for _, f := range chargingFields {
		cols = append(cols, chargingColumn(f))
	}
	return "INSERT INTO charging_records (" + strings.Join(cols, ", ") +
		") VALUES (" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
}

func chargingUpdateQuery() string {
	sets := make([]string, 0, len(chargingFields))
	for _, f := range chargingFields {
		sets = append(sets, chargingColumn(f)+" = ?")
	}
	return "UPDATE charging_records SET " + strings.Join(sets, ", ") + " WHERE id = ?"
}

func scanCharging(row interface{ Scan(...any) error }) (*models.ChargingRecord, error) {
	var c models.ChargingRecord
	err := row.Scan(&c.ID, &c.VehicleID,
		&c.ChargingDate, &c.ChargingLocation,
		&c.PreviousMileage, &c.CurrentMileage, &c.DrivenMileage,
		&c.MeterChargingKWH, &c.ChargingStartPercentage, &c.ChargingEndPercentage,
		&c.CarChargingKWH, &c.EnergyLossKWH, &c.Amount,
		&c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func chargingArgs(c *models.ChargingRecord) []any {
	return []any{
		c.ChargingDate, c.ChargingLocation,
		c.PreviousMileage, c.CurrentMileage, c.DrivenMileage,
		c.MeterChargingKWH, c.ChargingStartPercentage, c.ChargingEndPercentage,
		c.CarChargingKWH, c.EnergyLossKWH, c.Amount,
		c.Notes,
	}
}

// ListCharging returns a vehicle's charging sessions newest first. The first
// element is the "latest record" the average formulas subtract.
func (db *DB) ListCharging(ctx context.Context, vehicleID int) ([]models.ChargingRecord, error) {
	query := "SELECT " + chargingSelectList() +
		" FROM charging_records WHERE vehicle_id = ? ORDER BY date DESC, id DESC"
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ChargingRecord
	for rows.Next() {
		c, err := scanCharging(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *c)
	}
	return records, rows.Err()
}

func (db *DB) GetCharging(ctx context.Context, id int) (*models.ChargingRecord, error) {
	query := "SELECT " + chargingSelectList() + " FROM charging_records WHERE id = ?"
	row := db.conn.QueryRowContext(ctx, db.rebind(query), id)
	c, err := scanCharging(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCharging inserts a session and overwrites the vehicle's cached mileage
// with the session's current_mileage. The derived fields arrive client-computed
// and are stored as submitted.
func (db *DB) CreateCharging(ctx context.Context, c *models.ChargingRecord) (*models.ChargingRecord, error) {
	args := append([]any{c.VehicleID}, chargingArgs(c)...)

	var id int
	if db.driver == "postgres" {
		err := db.conn.QueryRowContext(ctx, db.rebind(chargingInsertQuery())+" RETURNING id", args...).Scan(&id)
		if err != nil {
			return nil, wrapError(err)
		}
	} else {
		res, err := db.conn.ExecContext(ctx, chargingInsertQuery(), args...)
		if err != nil {
			return nil, wrapError(err)
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		id = int(lastID)
	}

	if _, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE vehicles SET mileage = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"),
		c.CurrentMileage, c.VehicleID); err != nil {
		return nil, wrapError(err)
	}

	return db.GetCharging(ctx, id)
}

// UpdateCharging is a full-row replace by id.
func (db *DB) UpdateCharging(ctx context.Context, id int, c *models.ChargingRecord) (*models.ChargingRecord, error) {
	args := append(chargingArgs(c), id)
	res, err := db.conn.ExecContext(ctx, db.rebind(chargingUpdateQuery()), args...)
	if err != nil {
		return nil, wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetCharging(ctx, id)
}

// DeleteCharging removes a session and rolls the vehicle's cached mileage back
// to the deleted record's previous_mileage, regardless of later records for
// the same vehicle. The nightly refresh corrects the cache. Returns the
// vehicle id and the restored mileage for the caller to display.
func (db *DB) DeleteCharging(ctx context.Context, id int) (vehicleID int, previousMileage float64, err error) {
	row := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT vehicle_id, previous_mileage FROM charging_records WHERE id = ?"), id)
	if err := row.Scan(&vehicleID, &previousMileage); err != nil {
		if err == sql.ErrNoRows {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}

	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM charging_records WHERE id = ?"), id)
	if err != nil {
		return 0, 0, wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, 0, ErrNotFound
	}

	if _, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE vehicles SET mileage = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"),
		previousMileage, vehicleID); err != nil {
		return 0, 0, wrapError(err)
	}

	return vehicleID, previousMileage, nil
}
