package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmtruffa/financial"
	"github.com/jmtruffa/financial/bond"
)

var errBadRequest = errors.New("bad request")

type result struct {
	Result float64 `json:"result"`
}

type npvRequest struct {
	Rate   float64   `json:"rate"`
	Values []float64 `json:"values" binding:"required"`
}

type irrRequest struct {
	Values []float64 `json:"values" binding:"required"`
	Guess  *float64  `json:"guess"`
}

type xnpvRequest struct {
	Rate   float64      `json:"rate"`
	Values []float64    `json:"values" binding:"required"`
	Dates  []bond.Fecha `json:"dates" binding:"required"`
}

type xirrRequest struct {
	Values []float64    `json:"values" binding:"required"`
	Dates  []bond.Fecha `json:"dates" binding:"required"`
	Guess  *float64     `json:"guess"`
}

type tvmRequest struct {
	Rate float64 `json:"rate"`
	Nper float64 `json:"nper"`
	Pmt  float64 `json:"pmt"`
	PV   float64 `json:"pv"`
	FV   float64 `json:"fv"`
	// When is "end" (default) or "begin".
	When string `json:"when"`
}

func (r tvmRequest) timing() (financial.PaymentTiming, error) {
	switch r.When {
	case "", "end":
		return financial.PayAtEnd, nil
	case "begin":
		return financial.PayAtBeginning, nil
	}
	return 0, fmt.Errorf("%w: when must be end or begin, got %q", errBadRequest, r.When)
}

type mirrRequest struct {
	Values       []float64 `json:"values" binding:"required"`
	FinanceRate  float64   `json:"finance_rate"`
	ReinvestRate float64   `json:"reinvest_rate"`
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func times(dates []bond.Fecha) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = d.Time()
	}
	return out
}

func (s *Server) npv(c *gin.Context) {
	var req npvRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, result{financial.NetPresentValue(req.Rate, req.Values)})
}

func (s *Server) irr(c *gin.Context) {
	var req irrRequest
	if !bind(c, &req) {
		return
	}
	rate, err := s.calc.InternalRateOfReturn(req.Values, req.Guess)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result{rate})
}

func (s *Server) xnpv(c *gin.Context) {
	var req xnpvRequest
	if !bind(c, &req) {
		return
	}
	v, err := financial.ScheduledNetPresentValue(req.Rate, req.Values, times(req.Dates))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result{v})
}

func (s *Server) xirr(c *gin.Context) {
	var req xirrRequest
	if !bind(c, &req) {
		return
	}
	rate, err := s.calc.ScheduledInternalRateOfReturn(req.Values, times(req.Dates), req.Guess)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result{rate})
}

func (s *Server) fv(c *gin.Context) {
	var req tvmRequest
	if !bind(c, &req) {
		return
	}
	when, err := req.timing()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result{financial.FutureValue(req.Rate, req.Nper, req.Pmt, req.PV, when)})
}

func (s *Server) pv(c *gin.Context) {
	var req tvmRequest
	if !bind(c, &req) {
		return
	}
	when, err := req.timing()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result{financial.PresentValue(req.Rate, req.Nper, req.Pmt, req.FV, when)})
}

func (s *Server) mirr(c *gin.Context) {
	var req mirrRequest
	if !bind(c, &req) {
		return
	}
	v := financial.ModifiedInternalRateOfReturn(req.Values, req.FinanceRate, req.ReinvestRate)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		// JSON has no infinity; this happens when nothing is invested
		fail(c, fmt.Errorf("%w: values need a negative amount", financial.ErrInvalidCashflow))
		return
	}
	c.JSON(http.StatusOK, result{v})
}
