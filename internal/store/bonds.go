package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jmtruffa/financial/bond"
)

const selectBonds = `
	SELECT b.id, b.ticker, b.issue_date, b.maturity, b.coupon,
	       it.code, b."offset", COALESCE(b.day_count_conv, 1)
	FROM bonds b
	LEFT JOIN index_types it ON it.id = b.index_type_id
	WHERE b.active = TRUE`

type bondRow struct {
	id           int
	ticker       string
	issue        time.Time
	maturity     time.Time
	coupon       decimal.Decimal
	indexCode    sql.NullString
	offset       int
	dayCountConv int
}

// LoadAllBonds returns every active bond with its cash flows.
func (r *BondRepository) LoadAllBonds(ctx context.Context) ([]bond.Bond, error) {
	return r.loadBonds(ctx, selectBonds+` ORDER BY b.id`)
}

// FindBond returns the active bond with the given ticker.
func (r *BondRepository) FindBond(ctx context.Context, ticker string) (*bond.Bond, error) {
	bonds, err := r.loadBonds(ctx, selectBonds+` AND b.ticker = $1`, strings.ToUpper(ticker))
	if err != nil {
		return nil, err
	}
	if len(bonds) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBondNotFound, ticker)
	}
	return &bonds[0], nil
}

func (r *BondRepository) loadBonds(ctx context.Context, query string, args ...any) ([]bond.Bond, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bonds: %w", err)
	}
	var bondRows []bondRow
	for rows.Next() {
		var br bondRow
		if err := rows.Scan(&br.id, &br.ticker, &br.issue, &br.maturity, &br.coupon, &br.indexCode, &br.offset, &br.dayCountConv); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan bond: %w", err)
		}
		bondRows = append(bondRows, br)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bondRows) == 0 {
		return nil, nil
	}

	ids := make([]int, len(bondRows))
	for i, br := range bondRows {
		ids[i] = br.id
	}
	flows, err := r.loadCashflows(ctx, ids)
	if err != nil {
		return nil, err
	}

	bonds := make([]bond.Bond, 0, len(bondRows))
	for _, br := range bondRows {
		bonds = append(bonds, bond.Bond{
			ID:           strconv.Itoa(br.id),
			Ticker:       br.ticker,
			IssueDate:    bond.Fecha(br.issue),
			Maturity:     bond.Fecha(br.maturity),
			Coupon:       br.coupon.InexactFloat64(),
			Cashflow:     flows[br.id],
			Index:        br.indexCode.String,
			Offset:       br.offset,
			DayCountConv: bond.DayCount(br.dayCountConv),
		})
	}
	return bonds, nil
}

// loadCashflows brings the flows of every bond in ids in a single query.
func (r *BondRepository) loadCashflows(ctx context.Context, ids []int) (map[int][]bond.Cashflow, error) {
	args := make([]any, len(ids))
	marks := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		marks[i] = "$" + strconv.Itoa(i+1)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT bond_id, date, rate, amort, residual, amount
		FROM bond_cashflows
		WHERE bond_id IN (`+strings.Join(marks, ", ")+`)
		ORDER BY bond_id, seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("query cashflows: %w", err)
	}
	defer rows.Close()

	flows := make(map[int][]bond.Cashflow)
	for rows.Next() {
		var bondID int
		var date time.Time
		var rate, amort, residual, amount decimal.Decimal
		if err := rows.Scan(&bondID, &date, &rate, &amort, &residual, &amount); err != nil {
			return nil, fmt.Errorf("scan cashflow: %w", err)
		}
		flows[bondID] = append(flows[bondID], bond.Cashflow{
			Date:     bond.Fecha(date),
			Rate:     rate.InexactFloat64(),
			Amort:    amort.InexactFloat64(),
			Residual: residual.InexactFloat64(),
			Amount:   amount.InexactFloat64(),
		})
	}
	return flows, rows.Err()
}

// InsertBondWithCashflows upserts b by ticker, replacing its cash flows, and returns its ID.
func (r *BondRepository) InsertBondWithCashflows(ctx context.Context, b *bond.Bond) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var indexID *int
	if b.Index != "" {
		id, err := indexTypeID(ctx, tx, b.Index)
		if err != nil {
			return "", fmt.Errorf("index type %s: %w", b.Index, err)
		}
		indexID = &id
	}

	dayCount := b.DayCountConv
	if dayCount == 0 {
		dayCount = bond.DayCount30_360
	}
	var bondID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bonds (ticker, issue_date, maturity, coupon, index_type_id, "offset", day_count_conv)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker) DO UPDATE SET
			issue_date = EXCLUDED.issue_date,
			maturity = EXCLUDED.maturity,
			coupon = EXCLUDED.coupon,
			index_type_id = EXCLUDED.index_type_id,
			"offset" = EXCLUDED."offset",
			day_count_conv = EXCLUDED.day_count_conv,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		b.Ticker, b.IssueDate.Time(), b.Maturity.Time(), decimal.NewFromFloat(b.Coupon), indexID, b.Offset, int(dayCount)).
		Scan(&bondID)
	if err != nil {
		return "", fmt.Errorf("upsert bond %s: %w", b.Ticker, err)
	}

	// flows are reimported in full
	if _, err := tx.ExecContext(ctx, `DELETE FROM bond_cashflows WHERE bond_id = $1`, bondID); err != nil {
		return "", err
	}
	for i, cf := range b.Cashflow {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bond_cashflows (bond_id, seq, date, rate, amort, residual, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			bondID, i+1, cf.Date.Time(),
			decimal.NewFromFloat(cf.Rate), decimal.NewFromFloat(cf.Amort),
			decimal.NewFromFloat(cf.Residual), decimal.NewFromFloat(cf.Amount)); err != nil {
			return "", fmt.Errorf("insert cashflow %d of %s: %w", i+1, b.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return strconv.Itoa(bondID), nil
}

// SeedFromJSON loads a bonds.json file into the database. Existing bonds are updated by ticker.
func (r *BondRepository) SeedFromJSON(ctx context.Context, path string) (int, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var bonds []bond.Bond
	if err := json.Unmarshal(payload, &bonds); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range bonds {
		// tickers are stored upper case, IDs are generated by the database
		bonds[i].Ticker = strings.ToUpper(bonds[i].Ticker)
		id, err := r.InsertBondWithCashflows(ctx, &bonds[i])
		if err != nil {
			return i, err
		}
		r.log.WithFields(logrus.Fields{"ticker": bonds[i].Ticker, "id": id}).Debug("bond seeded")
	}
	return len(bonds), nil
}
