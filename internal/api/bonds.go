package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmtruffa/financial/bond"
)

func (s *Server) listBonds(c *gin.Context) {
	bonds, err := s.bonds.LoadAllBonds(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if bonds == nil {
		bonds = []bond.Bond{}
	}
	c.JSON(http.StatusOK, bonds)
}

func (s *Server) getBond(c *gin.Context) {
	b, err := s.bonds.FindBond(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// bondYield answers GET /v1/bonds/:ticker/yield?price=&settlement=
func (s *Server) bondYield(c *gin.Context) {
	price, err := floatQuery(c, "price")
	if err != nil {
		fail(c, err)
		return
	}
	b, settlement, ratio, ok := s.bondAt(c)
	if !ok {
		return
	}
	a, err := s.pricer.Analyze(b, price, settlement, ratio)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticker":     b.Ticker,
		"settlement": bond.Fecha(settlement),
		"price":      price,
		"ratio":      ratio,
		"analytics":  a,
	})
}

// bondPrice answers GET /v1/bonds/:ticker/price?rate=&settlement=
func (s *Server) bondPrice(c *gin.Context) {
	rate, err := floatQuery(c, "rate")
	if err != nil {
		fail(c, err)
		return
	}
	b, settlement, ratio, ok := s.bondAt(c)
	if !ok {
		return
	}
	price, err := s.pricer.Price(b.Cashflow, rate, settlement)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticker":     b.Ticker,
		"settlement": bond.Fecha(settlement),
		"rate":       rate,
		"ratio":      ratio,
		"price":      price * ratio,
	})
}

// bondAt loads the bond of the request, its settlement date and the index ratio
// that applies on it. It answers the request itself when something fails.
func (s *Server) bondAt(c *gin.Context) (*bond.Bond, time.Time, float64, bool) {
	settlement, err := s.settlement(c)
	if err != nil {
		fail(c, err)
		return nil, time.Time{}, 0, false
	}
	ctx := c.Request.Context()
	b, err := s.bonds.FindBond(ctx, c.Param("ticker"))
	if err != nil {
		fail(c, err)
		return nil, time.Time{}, 0, false
	}
	ratio := 1.0
	if b.Indexed() {
		series, err := s.bonds.LoadIndex(ctx, b.Index)
		if err == nil {
			ratio, err = series.Ratio(s.cal, b.IssueDate.Time(), settlement, b.Offset)
		}
		if err != nil {
			fail(c, fmt.Errorf("%s ratio for %s: %w", b.Index, b.Ticker, err))
			return nil, time.Time{}, 0, false
		}
	}
	return b, settlement, ratio, true
}

// settlement reads the settlement query parameter, defaulting to the next
// settlement date of a trade made today.
func (s *Server) settlement(c *gin.Context) (time.Time, error) {
	q := c.Query("settlement")
	if q == "" {
		return s.cal.Settlement(s.now(), s.lag), nil
	}
	t, err := time.Parse(bond.DateFormat, q)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: settlement: %v", errBadRequest, err)
	}
	return t, nil
}

func floatQuery(c *gin.Context, name string) (float64, error) {
	q, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", errBadRequest, name)
	}
	v, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}
	return v, nil
}
