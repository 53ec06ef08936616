package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garagebook/garagebook/internal/models"
)

// vehicleSelect joins each vehicle with its maintenance cost/count sums and
// recomputes mileage from the charging records, overriding the cached column.
const vehicleSelect = `
	SELECT v.id, v.license_plate, v.brand, v.model,
		COALESCE(v.owner, ''), COALESCE(v.year, 0), COALESCE(v.color, ''),
		v.battery_capacity, v.cltc_range,
		COALESCE(v.purchase_date, ''), COALESCE(v.insurance_expiry, ''),
		COALESCE(v.last_service, ''), COALESCE(v.notes, ''),
		COALESCE(v.status_flag, 'unused'), v.created_at, v.updated_at,
		COALESCE(m.total_cost, 0), COALESCE(m.record_count, 0),
		COALESCE(c.total_mileage, 0)
	FROM vehicles v
	LEFT JOIN (
		SELECT vehicle_id, SUM(cost) AS total_cost, COUNT(*) AS record_count
		FROM maintenance_records GROUP BY vehicle_id
	) m ON m.vehicle_id = v.id
	LEFT JOIN (
		SELECT vehicle_id, SUM(distance_driven) AS total_mileage
		FROM charging_records GROUP BY vehicle_id
	) c ON c.vehicle_id = v.id`

func scanVehicle(row interface{ Scan(...any) error }) (*models.Vehicle, error) {
	var v models.Vehicle
	err := row.Scan(&v.ID, &v.LicensePlate, &v.Brand, &v.Model,
		&v.Owner, &v.Year, &v.Color,
		&v.BatteryCapacity, &v.CLTCRange,
		&v.PurchaseDate, &v.InsuranceExpiry,
		&v.LastService, &v.Notes,
		&v.StatusFlag, &v.CreatedAt, &v.UpdatedAt,
		&v.TotalCost, &v.MaintenanceCount,
		&v.Mileage)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (db *DB) queryVehicles(ctx context.Context, query string, args ...any) ([]models.Vehicle, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (db *DB) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return db.queryVehicles(ctx, vehicleSelect+" ORDER BY v.created_at DESC")
}

// SearchVehicles does a substring match on plate, brand and model.
func (db *DB) SearchVehicles(ctx context.Context, q string) ([]models.Vehicle, error) {
	pattern := "%" + q + "%"
	return db.queryVehicles(ctx,
		vehicleSelect+` WHERE v.license_plate LIKE ? OR v.brand LIKE ? OR v.model LIKE ?
		ORDER BY v.created_at DESC`,
		pattern, pattern, pattern)
}

func (db *DB) GetVehicle(ctx context.Context, id int) (*models.Vehicle, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(vehicleSelect+" WHERE v.id = ?"), id)
	v, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVehicle inserts a vehicle and returns the persisted record including
// the generated id and server-assigned timestamps.
func (db *DB) CreateVehicle(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	query := `
		INSERT INTO vehicles (license_plate, brand, model, owner, year, color, mileage,
			battery_capacity, cltc_range, purchase_date, insurance_expiry, last_service,
			notes, status_flag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{v.LicensePlate, v.Brand, v.Model, v.Owner, v.Year, v.Color, v.Mileage,
		v.BatteryCapacity, v.CLTCRange, v.PurchaseDate, v.InsuranceExpiry, v.LastService,
		v.Notes, v.StatusFlag}

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

	return db.GetVehicle(ctx, id)
}

// UpdateVehicle is a full-row replace by id.
func (db *DB) UpdateVehicle(ctx context.Context, id int, v *models.Vehicle) (*models.Vehicle, error) {
	query := `
		UPDATE vehicles
		SET license_plate = ?, brand = ?, model = ?, owner = ?, year = ?, color = ?,
			mileage = ?, battery_capacity = ?, cltc_range = ?, purchase_date = ?,
			insurance_expiry = ?, last_service = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := db.conn.ExecContext(ctx, db.rebind(query),
		v.LicensePlate, v.Brand, v.Model, v.Owner, v.Year, v.Color,
		v.Mileage, v.BatteryCapacity, v.CLTCRange, v.PurchaseDate,
		v.InsuranceExpiry, v.LastService, v.Notes, id)
	if err != nil {
		return nil, wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetVehicle(ctx, id)
}

// DeleteVehicle removes a vehicle and its charging and maintenance records in
// one transaction. Either all three deletes land or none do.
func (db *DB) DeleteVehicle(ctx context.Context, id int) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, db.rebind("DELETE FROM charging_records WHERE vehicle_id = ?"), id); err != nil {
		return wrapError(err)
	}
	if _, err := tx.ExecContext(ctx, db.rebind("DELETE FROM maintenance_records WHERE vehicle_id = ?"), id); err != nil {
		return wrapError(err)
	}

	res, err := tx.ExecContext(ctx, db.rebind("DELETE FROM vehicles WHERE id = ?"), id)
	if err != nil {
		return wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// SetVehicleStatus updates one vehicle's status flag.
func (db *DB) SetVehicleStatus(ctx context.Context, id int, flag string) error {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE vehicles SET status_flag = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"),
		flag, id)
	if err != nil {
		return wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ActivateVehicle marks one vehicle "in use" and every other one "unused" in a
// single transaction, so two concurrent activations cannot leave two active
// vehicles behind.
func (db *DB) ActivateVehicle(ctx context.Context, id int) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		db.rebind("UPDATE vehicles SET status_flag = ?, updated_at = CURRENT_TIMESTAMP WHERE status_flag = ?"),
		models.StatusUnused, models.StatusInUse); err != nil {
		return wrapError(err)
	}

	res, err := tx.ExecContext(ctx,
		db.rebind("UPDATE vehicles SET status_flag = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"),
		models.StatusInUse, id)
	if err != nil {
		return wrapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ClearInUse marks every active vehicle as unused.
func (db *DB) ClearInUse(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE vehicles SET status_flag = ?, updated_at = CURRENT_TIMESTAMP WHERE status_flag = ?"),
		models.StatusUnused, models.StatusInUse)
	return wrapError(err)
}

func (db *DB) CountVehicles(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM vehicles").Scan(&count)
	return count, err
}

// AvgMileage averages the cached mileage column across all vehicles.
func (db *DB) AvgMileage(ctx context.Context) (float64, error) {
	var avg float64
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(AVG(mileage), 0) FROM vehicles").Scan(&avg)
	return avg, err
}

// RefreshMileage rewrites every vehicle's cached mileage column from the sum
// of its charging records. Run nightly by the scheduler.
func (db *DB) RefreshMileage(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE vehicles
		SET mileage = COALESCE(
			(SELECT SUM(distance_driven) FROM charging_records WHERE vehicle_id = vehicles.id), 0)`)
	if err != nil {
		return 0, fmt.Errorf("refreshing mileage cache: %w", err)
	}
	return res.RowsAffected()
}
