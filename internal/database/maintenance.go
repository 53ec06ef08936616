package database

import (
	"context"
	"database/sql"

	"github.com/garagebook/garagebook/internal/models"
)

const maintenanceSelect = `
	SELECT id, vehicle_id, service_date, service_type,
		COALESCE(description, ''), cost, COALESCE(mileage_at_service, 0),
		COALESCE(service_location, ''), COALESCE(next_service_date, ''), created_at
	FROM maintenance_records`

func scanMaintenance(row interface{ Scan(...any) error }) (*models.MaintenanceRecord, error) {
	var m models.MaintenanceRecord
	err := row.Scan(&m.ID, &m.VehicleID, &m.ServiceDate, &m.ServiceType,
		&m.Description, &m.Cost, &m.MileageAtService,
		&m.ServiceLocation, &m.NextServiceDate, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMaintenance returns a vehicle's service history, most recent first.
func (db *DB) ListMaintenance(ctx context.Context, vehicleID int) ([]models.MaintenanceRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		db.rebind(maintenanceSelect+" WHERE vehicle_id = ? ORDER BY service_date DESC, id DESC"),
		vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.MaintenanceRecord
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *m)
	}
	return records, rows.Err()
}

func (db *DB) GetMaintenance(ctx context.Context, id int) (*models.MaintenanceRecord, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(maintenanceSelect+" WHERE id = ?"), id)
	m, err := scanMaintenance(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (db *DB) CreateMaintenance(ctx context.Context, m *models.MaintenanceRecord) (*models.MaintenanceRecord, error) {
	query := `
		INSERT INTO maintenance_records
			(vehicle_id, service_date, service_type, description, cost,
			 mileage_at_service, service_location, next_service_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{m.VehicleID, m.ServiceDate, m.ServiceType, m.Description, m.Cost,
		m.MileageAtService, m.ServiceLocation, m.NextServiceDate}

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

	return db.GetMaintenance(ctx, id)
}

func (db *DB) CountMaintenance(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM maintenance_records").Scan(&count)
	return count, err
}

// SumMaintenanceCost totals service cost across all vehicles.
func (db *DB) SumMaintenanceCost(ctx context.Context) (float64, error) {
	var total float64
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(SUM(cost), 0) FROM maintenance_records").Scan(&total)
	return total, err
}
