package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/garagebook/garagebook/internal/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned when the target row of a read/update/delete is absent.
var ErrNotFound = errors.New("not found")

// ConstraintError reports a unique or foreign-key violation. Field names the
// offending column when it can be derived from the driver error.
type ConstraintError struct {
	Field string
	Err   error
}

func (e *ConstraintError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("constraint violation on %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("constraint violation: %v", e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// DB provides the data access layer
type DB struct {
	conn   *sql.DB
	driver string
}

// New creates a new database connection based on config
func New(cfg *config.Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch cfg.DBDriver {
	case "sqlite":
		// Ensure directory exists
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		conn, err = sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		// SQLite tuning
		conn.SetMaxOpenConns(1) // SQLite is single-writer
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DATABASE_URL required for postgres driver")
		}
		conn, err = sql.Open("pgx", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		conn.SetMaxOpenConns(10)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{conn: conn, driver: cfg.DBDriver}

	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info().Str("driver", cfg.DBDriver).Msg("database connected")
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// autoIncrement returns the correct auto-increment syntax
func (db *DB) autoIncrement() string {
	if db.driver == "postgres" {
		return "SERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// timestampType returns the correct timestamp type
func (db *DB) timestampType() string {
	if db.driver == "postgres" {
		return "TIMESTAMPTZ"
	}
	return "DATETIME"
}

// rebind converts ? placeholders to $1, $2, ... when running on PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	result := make([]byte, 0, len(query)+10)
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, []byte(fmt.Sprintf("%d", n))...)
			n++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}

// wrapError maps driver errors onto the package taxonomy: constraint failures
// become *ConstraintError, everything else passes through as a storage fault.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &ConstraintError{Field: constraintField(err.Error()), Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &ConstraintError{Field: pgErr.ColumnName, Err: err}
	}

	return err
}

// constraintField pulls the column out of messages like
// "UNIQUE constraint failed: vehicles.license_plate".
func constraintField(msg string) string {
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 {
		return ""
	}
	ref := strings.TrimSpace(msg[idx+2:])
	if dot := strings.LastIndex(ref, "."); dot >= 0 {
		ref = ref[dot+1:]
	}
	if strings.ContainsAny(ref, " ,") {
		return ""
	}
	return ref
}
