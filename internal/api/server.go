// Package api serves the financial functions and the bond analytics over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jmtruffa/financial"
	"github.com/jmtruffa/financial/bond"
	"github.com/jmtruffa/financial/internal/calendar"
	"github.com/jmtruffa/financial/internal/store"
)

// BondStore is the part of the repository the handlers read from.
type BondStore interface {
	LoadAllBonds(ctx context.Context) ([]bond.Bond, error)
	FindBond(ctx context.Context, ticker string) (*bond.Bond, error)
	LoadIndex(ctx context.Context, code string) (bond.IndexSeries, error)
}

type Server struct {
	calc   *financial.Calculator
	pricer *bond.Pricer
	bonds  BondStore
	cal    *calendar.Calendar
	lag    int
	log    logrus.FieldLogger
	now    func() time.Time
}

// New returns a server whose trades settle lag workdays after today.
func New(calc *financial.Calculator, bonds BondStore, cal *calendar.Calendar, lag int, log logrus.FieldLogger) *Server {
	return &Server{
		calc:   calc,
		pricer: bond.NewPricer(calc),
		bonds:  bonds,
		cal:    cal,
		lag:    lag,
		log:    log,
		now:    time.Now,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), Logger(s.log))

	v1 := r.Group("/v1")
	v1.POST("/npv", s.npv)
	v1.POST("/irr", s.irr)
	v1.POST("/xnpv", s.xnpv)
	v1.POST("/xirr", s.xirr)
	v1.POST("/fv", s.fv)
	v1.POST("/pv", s.pv)
	v1.POST("/mirr", s.mirr)

	v1.GET("/bonds", s.listBonds)
	v1.GET("/bonds/:ticker", s.getBond)
	v1.GET("/bonds/:ticker/yield", s.bondYield)
	v1.GET("/bonds/:ticker/price", s.bondPrice)
	return r
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Logger logs every request once it has been served.
func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start),
		})
		if ticker := c.Param("ticker"); ticker != "" {
			entry = entry.WithField("ticker", ticker)
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error(c.Errors.String())
		case len(c.Errors) > 0:
			entry.Warn(c.Errors.String())
		default:
			entry.Info("request served")
		}
	}
}

// fail answers with the status that matches err.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrBondNotFound):
		status = http.StatusNotFound
	case errors.Is(err, financial.ErrNoSolution),
		errors.Is(err, bond.ErrMatured),
		errors.Is(err, bond.ErrIndexNotFound):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, financial.ErrInvalidCashflow),
		errors.Is(err, financial.ErrLengthMismatch),
		errors.Is(err, financial.ErrUnorderedDates),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
