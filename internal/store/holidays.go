package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmtruffa/financial/internal/calendar"
)

// LoadHolidays returns every holiday in "calendarioFeriados".
func (r *BondRepository) LoadHolidays(ctx context.Context) ([]calendar.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, COALESCE(name, '') FROM "calendarioFeriados" ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query feriados: %w", err)
	}
	defer rows.Close()

	var holidays []calendar.Holiday
	for rows.Next() {
		var h calendar.Holiday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return holidays, nil
}

func (r *BondRepository) AddHoliday(ctx context.Context, h calendar.Holiday) error {
	d := time.Date(h.Date.Year(), h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, time.UTC)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO "calendarioFeriados" (date, name) VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name`, d, h.Name)
	return err
}
