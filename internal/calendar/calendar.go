// Package calendar keeps the business calendar used to settle trades and lag index values.
// Holidays come from the database and are reloaded periodically.
package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/sirupsen/logrus"
)

// Holiday is a single non working day.
type Holiday struct {
	Date time.Time
	Name string
}

// HolidaySource loads the full list of holidays.
type HolidaySource interface {
	LoadHolidays(ctx context.Context) ([]Holiday, error)
}

// Calendar is a business calendar whose holidays can be replaced while in use.
type Calendar struct {
	mu  sync.RWMutex
	cal *cal.BusinessCalendar
	n   int
}

// New returns a calendar with the given holidays and Saturday and Sunday off.
func New(holidays []Holiday) *Calendar {
	c := &Calendar{}
	c.Replace(holidays)
	return c
}

// Replace swaps the holidays of the calendar.
func (c *Calendar) Replace(holidays []Holiday) {
	bc := cal.NewBusinessCalendar()
	for _, h := range holidays {
		y, m, d := h.Date.Date()
		name := h.Name
		if name == "" {
			name = "Feriado"
		}
		bc.AddHoliday(&cal.Holiday{
			Name:      name,
			Type:      cal.ObservancePublic,
			StartYear: y,
			EndYear:   y,
			Month:     m,
			Day:       d,
			Func:      cal.CalcDayOfMonth,
		})
	}

	c.mu.Lock()
	c.cal = bc
	c.n = len(holidays)
	c.mu.Unlock()
}

// Len returns the number of holidays loaded.
func (c *Calendar) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.n
}

func (c *Calendar) IsWorkday(date time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cal.IsWorkday(date)
}

// WorkdaysFrom moves date by offset workdays, backwards when offset is negative.
// A zero offset returns date unchanged even when it is not a workday.
func (c *Calendar) WorkdaysFrom(date time.Time, offset int) time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	step := 1
	if offset < 0 {
		step, offset = -1, -offset
	}
	for offset > 0 {
		date = date.AddDate(0, 0, step)
		if c.cal.IsWorkday(date) {
			offset--
		}
	}
	return date
}

// Settlement returns the settlement date of a trade made on trade with a lag of
// lag workdays. With no lag a trade on a holiday settles on the next workday.
func (c *Calendar) Settlement(trade time.Time, lag int) time.Time {
	trade = time.Date(trade.Year(), trade.Month(), trade.Day(), 0, 0, 0, 0, time.UTC)
	if lag > 0 {
		return c.WorkdaysFrom(trade, lag)
	}
	for !c.IsWorkday(trade) {
		trade = trade.AddDate(0, 0, 1)
	}
	return trade
}

// Load replaces the holidays with the ones in source.
func (c *Calendar) Load(ctx context.Context, source HolidaySource) error {
	holidays, err := source.LoadHolidays(ctx)
	if err != nil {
		return err
	}
	c.Replace(holidays)
	return nil
}

// DefaultReloadInterval is used by Watch when given a non-positive interval.
const DefaultReloadInterval = 24 * time.Hour

// Watch reloads the holidays from source every interval until ctx is done.
// Failed reloads are logged and the previous holidays kept.
func (c *Calendar) Watch(ctx context.Context, source HolidaySource, every time.Duration, log logrus.FieldLogger) {
	if every <= 0 {
		log.WithField("interval", every).Warnf("invalid reload interval, using %s", DefaultReloadInterval)
		every = DefaultReloadInterval
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := c.Load(ctx, source); err != nil {
				log.WithError(err).Warn("holiday reload failed")
				continue
			}
			log.WithField("holidays", c.Len()).Info("holidays reloaded")
		}
	}
}
