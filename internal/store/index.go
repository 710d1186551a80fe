package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmtruffa/financial/bond"
)

var ErrBadIndexRow = errors.New("bad index row")

// ImportIndexCSV stores the values of the index code read from r.
// The first row is a header; every other row is date,value.
func (r *BondRepository) ImportIndexCSV(ctx context.Context, code string, in io.Reader) (int, error) {
	reader := csv.NewReader(in)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read %s csv: %w", code, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	id, err := indexTypeID(ctx, tx, strings.ToUpper(code))
	if err != nil {
		return 0, fmt.Errorf("index type %s: %w", code, err)
	}

	n := 0
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) < 2 || strings.TrimSpace(rows[i][1]) == "" {
			// the series is published ahead with empty values
			continue
		}
		date, err := time.Parse(bond.DateFormat, strings.TrimSpace(rows[i][0]))
		if err != nil {
			return 0, fmt.Errorf("%w %d: %v", ErrBadIndexRow, i+1, err)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(rows[i][1]))
		if err != nil {
			return 0, fmt.Errorf("%w %d: %v", ErrBadIndexRow, i+1, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO index_values (index_type_id, date, value) VALUES ($1, $2, $3)
			ON CONFLICT (index_type_id, date) DO UPDATE SET value = EXCLUDED.value`,
			id, date, value); err != nil {
			return 0, err
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	r.log.WithField("index", code).WithField("rows", n).Info("index imported")
	return n, nil
}

// LoadIndex returns the series of the index code ordered by date.
func (r *BondRepository) LoadIndex(ctx context.Context, code string) (bond.IndexSeries, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.date, v.value
		FROM index_values v
		JOIN index_types it ON it.id = v.index_type_id
		WHERE it.code = $1
		ORDER BY v.date`, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("query index %s: %w", code, err)
	}
	defer rows.Close()

	var series bond.IndexSeries
	for rows.Next() {
		var date time.Time
		var value decimal.Decimal
		if err := rows.Scan(&date, &value); err != nil {
			return nil, err
		}
		series = append(series, bond.IndexValue{Date: bond.Fecha(date), Value: value.InexactFloat64()})
	}
	return series, rows.Err()
}
