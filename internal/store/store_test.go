package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtruffa/financial/bond"
	"github.com/jmtruffa/financial/internal/calendar"
)

func newRepository(t *testing.T) *BondRepository {
	t.Helper()
	log, _ := test.NewNullLogger()
	ctx := context.Background()
	r, err := Open(ctx, "sqlite3", ":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	require.NoError(t, r.EnsureSchema(ctx))
	return r
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = DialectFor("mysql")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestEnsureSchemaTwice(t *testing.T) {
	r := newRepository(t)
	require.NoError(t, r.EnsureSchema(context.Background()))
}

func TestInsertAndLoad(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()

	b := &bond.Bond{
		Ticker:    "AL30",
		IssueDate: bond.Fecha(date(2020, 9, 4)),
		Maturity:  bond.Fecha(date(2030, 7, 9)),
		Coupon:    0.00125,
		Cashflow: []bond.Cashflow{
			{Date: bond.Fecha(date(2021, 7, 9)), Rate: 0.00125, Residual: 100, Amount: 0.125},
			{Date: bond.Fecha(date(2022, 1, 9)), Rate: 0.005, Amort: 4, Residual: 100, Amount: 4.25},
		},
	}
	id, err := r.InsertBondWithCashflows(ctx, b)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := r.FindBond(ctx, "al30")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "AL30", got.Ticker)
	assert.Equal(t, "2020-09-04", got.IssueDate.String())
	assert.Equal(t, "2030-07-09", got.Maturity.String())
	assert.InDelta(t, 0.00125, got.Coupon, 1e-12)
	assert.Equal(t, bond.DayCount30_360, got.DayCountConv)
	assert.False(t, got.Indexed())
	require.Len(t, got.Cashflow, 2)
	assert.Equal(t, "2022-01-09", got.Cashflow[1].Date.String())
	assert.InDelta(t, 4.25, got.Cashflow[1].Amount, 1e-12)
	assert.InDelta(t, 4, got.Cashflow[1].Amort, 1e-12)

	// upsert keeps the id and replaces the flows
	b.Cashflow = b.Cashflow[:1]
	b.Index = "CER"
	id2, err := r.InsertBondWithCashflows(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	got, err = r.FindBond(ctx, "AL30")
	require.NoError(t, err)
	assert.Len(t, got.Cashflow, 1)
	assert.Equal(t, "CER", got.Index)
}

func TestFindBondNotFound(t *testing.T) {
	r := newRepository(t)
	_, err := r.FindBond(context.Background(), "XX99")
	assert.ErrorIs(t, err, ErrBondNotFound)
}

func TestSeedFromJSON(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()

	n, err := r.SeedFromJSON(ctx, filepath.Join("testdata", "bonds.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bonds, err := r.LoadAllBonds(ctx)
	require.NoError(t, err)
	require.Len(t, bonds, 2)
	assert.Equal(t, "GD30", bonds[0].Ticker)
	assert.Len(t, bonds[0].Cashflow, 3)
	assert.Equal(t, "TX26", bonds[1].Ticker)
	assert.Equal(t, "CER", bonds[1].Index)
	assert.Equal(t, 10, bonds[1].Offset)
	assert.Len(t, bonds[1].Cashflow, 2)

	_, err = r.SeedFromJSON(ctx, filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)
}

func TestHolidays(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()

	require.NoError(t, r.AddHoliday(ctx, calendar.Holiday{Date: date(2024, 5, 1), Name: "Trabajador"}))
	require.NoError(t, r.AddHoliday(ctx, calendar.Holiday{Date: time.Date(2024, 5, 25, 10, 0, 0, 0, time.UTC), Name: "Revolución"}))
	require.NoError(t, r.AddHoliday(ctx, calendar.Holiday{Date: date(2024, 5, 1), Name: "Día del Trabajador"}))

	holidays, err := r.LoadHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "2024-05-01", holidays[0].Date.Format(bond.DateFormat))
	assert.Equal(t, "Día del Trabajador", holidays[0].Name)
	assert.Equal(t, "2024-05-25", holidays[1].Date.Format(bond.DateFormat))

	c := calendar.New(nil)
	require.NoError(t, c.Load(ctx, r))
	assert.False(t, c.IsWorkday(date(2024, 5, 1)))
}

func TestIndex(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()

	csv := "fecha,cer\n2024-01-02,100.5\n2024-01-01,100\n\"2024-01-03\",101\n2024-01-04,\n"
	n, err := r.ImportIndexCSV(ctx, "cer", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	series, err := r.LoadIndex(ctx, "CER")
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, "2024-01-01", series[0].Date.String())
	assert.Equal(t, 101.0, series[2].Value)

	v, err := series.Coefficient(date(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 101.0, v)

	_, err = r.ImportIndexCSV(ctx, "CER", strings.NewReader("fecha,cer\n01/02/2024,1\n"))
	assert.ErrorIs(t, err, ErrBadIndexRow)

	empty, err := r.LoadIndex(ctx, "UVA")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
