package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

func (db *DB) migrate() error {
	log.Info().Msg("running database migrations")

	migrations := []string{
		db.migrationVehicles(),
		db.migrationMaintenanceRecords(),
		db.migrationChargingRecords(),
		db.migrationCategories(),
		db.migrationBills(),
		db.migrationBookmarks(),
	}

	for i, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle_id ON maintenance_records(vehicle_id)",
		"CREATE INDEX IF NOT EXISTS idx_charging_vehicle_id ON charging_records(vehicle_id)",
		"CREATE INDEX IF NOT EXISTS idx_charging_date ON charging_records(date)",
		"CREATE INDEX IF NOT EXISTS idx_bills_date ON bills(date)",
		"CREATE INDEX IF NOT EXISTS idx_bills_category_id ON bills(category_id)",
	}
	for _, idx := range indexes {
		if _, err := db.conn.Exec(idx); err != nil {
			return fmt.Errorf("index creation: %w", err)
		}
	}

	log.Info().Msg("migrations complete")
	return nil
}

func (db *DB) migrationVehicles() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS vehicles (
			id %s,
			license_plate TEXT NOT NULL UNIQUE,
			brand TEXT NOT NULL,
			model TEXT NOT NULL,
			owner TEXT DEFAULT 'unknown owner',
			year INTEGER,
			color TEXT,
			mileage REAL DEFAULT 0,
			battery_capacity REAL DEFAULT 0,
			cltc_range INTEGER DEFAULT 0,
			purchase_date TEXT,
			insurance_expiry TEXT,
			last_service TEXT,
			notes TEXT,
			status_flag TEXT DEFAULT 'unused',
			created_at %s DEFAULT CURRENT_TIMESTAMP,
			updated_at %s DEFAULT CURRENT_TIMESTAMP
		)`, db.autoIncrement(), db.timestampType(), db.timestampType())
}

func (db *DB) migrationMaintenanceRecords() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS maintenance_records (
			id %s,
			vehicle_id INTEGER,
			service_date TEXT NOT NULL,
			service_type TEXT NOT NULL,
			description TEXT,
			cost REAL DEFAULT 0,
			mileage_at_service REAL,
			service_location TEXT,
			next_service_date TEXT,
			created_at %s DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (vehicle_id) REFERENCES vehicles (id) ON DELETE CASCADE
		)`, db.autoIncrement(), db.timestampType())
}

// charging_records keeps its legacy short column names; the wire names are
// mapped in charging.go.
func (db *DB) migrationChargingRecords() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS charging_records (
			id %s,
			vehicle_id INTEGER,
			date TEXT NOT NULL,
			location TEXT,
			previous_mileage REAL NOT NULL,
			current_mileage REAL NOT NULL,
			distance_driven REAL NOT NULL,
			meter_kwh REAL NOT NULL,
			battery_before INTEGER NOT NULL,
			battery_after INTEGER NOT NULL,
			car_kwh REAL NOT NULL,
			energy_loss REAL NOT NULL,
			amount REAL NOT NULL,
			notes TEXT,
			created_at %s DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (vehicle_id) REFERENCES vehicles (id) ON DELETE CASCADE
		)`, db.autoIncrement(), db.timestampType())
}

func (db *DB) migrationCategories() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS categories (
			id %s,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			color TEXT NOT NULL
		)`, db.autoIncrement())
}

// bills.category_id carries no FK constraint: deleting a category leaves its
// bills dangling and the LEFT JOIN tolerates it.
func (db *DB) migrationBills() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS bills (
			id %s,
			amount REAL NOT NULL,
			category_id INTEGER,
			date TEXT NOT NULL,
			notes TEXT,
			created_at %s DEFAULT CURRENT_TIMESTAMP
		)`, db.autoIncrement(), db.timestampType())
}

func (db *DB) migrationBookmarks() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS bookmarks (
			id %s,
			url TEXT NOT NULL,
			notes TEXT,
			favicon TEXT,
			created_at %s DEFAULT CURRENT_TIMESTAMP,
			updated_at %s DEFAULT CURRENT_TIMESTAMP
		)`, db.autoIncrement(), db.timestampType(), db.timestampType())
}
