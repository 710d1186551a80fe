// Package config reads the service configuration from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/jmtruffa/financial"
)

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix prefixes the environment variables that override configuration keys,
// e.g. YIELDS_SERVER_ADDR for server.addr.
const EnvPrefix = "YIELDS"

type Config struct {
	Server   ServerConfig             `mapstructure:"server"`
	Database DatabaseConfig           `mapstructure:"database"`
	Calendar CalendarConfig           `mapstructure:"calendar"`
	Solver   financial.SolverSettings `mapstructure:"solver"`
	Log      LogConfig                `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	// DSN wins over the individual Postgres settings below.
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type CalendarConfig struct {
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
	SettlementLag  int           `mapstructure:"settlement_lag"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "postgres")

	v.SetDefault("calendar.reload_interval", 24*time.Hour)
	v.SetDefault("calendar.settlement_lag", 1)

	s := financial.DefaultSolverSettings()
	v.SetDefault("solver.precision", s.Precision)
	v.SetDefault("solver.initial_guess", s.InitialGuess)
	v.SetDefault("solver.newton_max_iterations", s.NewtonMaxIterations)
	v.SetDefault("solver.bracket_max_iterations", s.BracketMaxIterations)
	v.SetDefault("solver.bracket_shift", s.BracketShift)
	v.SetDefault("solver.bracket_factor", s.BracketFactor)
	v.SetDefault("solver.bisection_max_iterations", s.BisectionMaxIterations)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the file at path, if any, and applies the environment on top.
// The database settings also read the POSTGRES_* variables the service has always used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"database.host":     "POSTGRES_HOST",
		"database.port":     "POSTGRES_PORT",
		"database.user":     "POSTGRES_USER",
		"database.password": "POSTGRES_PASSWORD",
		"database.name":     "POSTGRES_DB",
	} {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Calendar.ReloadInterval <= 0 {
		return nil, fmt.Errorf("%w: calendar.reload_interval must be positive, got %s",
			ErrInvalidConfig, cfg.Calendar.ReloadInterval)
	}
	return &cfg, nil
}

// DataSource returns the DSN to open the database with.
func (d DatabaseConfig) DataSource() string {
	if d.DSN != "" || d.Driver != "postgres" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// NewLogger builds the logger described by l.
func (l LogConfig) NewLogger() (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	switch l.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", l.Format)
	}
	return log, nil
}
