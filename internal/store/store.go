// Package store persists bonds, holidays and index values in Postgres, or in
// SQLite for tests and local use.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var (
	ErrBondNotFound      = errors.New("bond not found")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Dialect holds the few statements that differ between the supported databases.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres":
		return Postgres, nil
	case "sqlite3":
		return SQLite, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
}

func (d Dialect) primaryKey() string {
	if d == SQLite {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return "SERIAL PRIMARY KEY"
}

// BondRepository encapsulates database persistence for bonds and the data used to price them.
type BondRepository struct {
	db      *sql.DB
	dialect Dialect
	log     logrus.FieldLogger
}

// Open connects to the database and checks it answers.
func Open(ctx context.Context, driver, dsn string, log logrus.FieldLogger) (*BondRepository, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dialect == SQLite {
		// every connection to :memory: is a different database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return NewBondRepository(db, dialect, log), nil
}

func NewBondRepository(db *sql.DB, dialect Dialect, log logrus.FieldLogger) *BondRepository {
	return &BondRepository{db: db, dialect: dialect, log: log}
}

func (r *BondRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the tables if they don't exist.
func (r *BondRepository) EnsureSchema(ctx context.Context) error {
	pk := r.dialect.primaryKey()
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS index_types (
			id ` + pk + `,
			code TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS bonds (
			id ` + pk + `,
			ticker TEXT UNIQUE NOT NULL,
			issue_date DATE NOT NULL,
			maturity DATE NOT NULL,
			coupon NUMERIC NOT NULL,
			index_type_id INT REFERENCES index_types(id),
			"offset" INT DEFAULT 0,
			day_count_conv INT DEFAULT 1,
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS bond_cashflows (
			id ` + pk + `,
			bond_id INT REFERENCES bonds(id) ON DELETE CASCADE,
			seq INT NOT NULL,
			date DATE NOT NULL,
			rate NUMERIC NOT NULL,
			amort NUMERIC NOT NULL,
			residual NUMERIC NOT NULL,
			amount NUMERIC NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (bond_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS index_values (
			index_type_id INT NOT NULL REFERENCES index_types(id),
			date DATE NOT NULL,
			value NUMERIC NOT NULL,
			PRIMARY KEY (index_type_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS "calendarioFeriados" (
			date DATE PRIMARY KEY,
			name TEXT
		)`,
	}
	if r.dialect == Postgres {
		// tables created before day count conventions were stored
		stmts = append(stmts, `ALTER TABLE bonds ADD COLUMN IF NOT EXISTS day_count_conv INT DEFAULT 1`)
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO index_types (code, name, description)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (code) DO NOTHING`, "CER", "CER", "Coeficiente de Estabilización de Referencia")
	if err != nil {
		return fmt.Errorf("seed index types: %w", err)
	}
	return nil
}

// indexTypeID returns the id of the index code, creating it when missing.
func indexTypeID(ctx context.Context, tx *sql.Tx, code string) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx,
		`INSERT INTO index_types (code, name)
		 VALUES ($1, $1)
		 ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
		 RETURNING id`, code).Scan(&id)
	return id, err
}
