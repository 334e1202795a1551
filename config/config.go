package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/bondprice/journal"
	"github.com/rustyeddy/bondprice/market"
	"github.com/rustyeddy/bondprice/valuation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config represents a complete editing session setup
type Config struct {
	InitialPrice string          `json:"initial_price,omitempty" yaml:"initial_price,omitempty"`
	Bond         BondConfig      `json:"bond" yaml:"bond"`
	Curve        CurveConfig     `json:"curve" yaml:"curve"`
	Valuation    ValuationConfig `json:"valuation" yaml:"valuation"`
	Journal      JournalConfig   `json:"journal" yaml:"journal"`
	Logging      LoggingConfig   `json:"logging" yaml:"logging"`
}

// BondConfig contains the static data of the edited bond
type BondConfig struct {
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Currency    string  `json:"currency" yaml:"currency"`
	Coupon      float64 `json:"coupon" yaml:"coupon"`
	Maturity    string  `json:"maturity" yaml:"maturity"` // YYYY-MM-DD
	Face        float64 `json:"face,omitempty" yaml:"face,omitempty"`
}

// CurveConfig contains the zero curve served to the editor
type CurveConfig struct {
	ValuationDate string              `json:"valuation_date" yaml:"valuation_date"` // YYYY-MM-DD
	Points        []market.CurvePoint `json:"points" yaml:"points"`
}

// ValuationConfig tunes the reference engine
type ValuationConfig struct {
	Precision     int32   `json:"precision" yaml:"precision"`
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	Tolerance     float64 `json:"tolerance" yaml:"tolerance"`
}

// JournalConfig contains audit journal parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite", "wal" or "none"
	EditsFile   string `json:"edits_file,omitempty" yaml:"edits_file,omitempty"`
	CommitsFile string `json:"commits_file,omitempty" yaml:"commits_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	Dir         string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// LoggingConfig selects the zap logger
type LoggingConfig struct {
	Level       string `json:"level" yaml:"level"` // debug, info, warn, error
	Development bool   `json:"development" yaml:"development"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Bond.ID == "" {
		return fmt.Errorf("bond.id is required")
	}
	if c.Bond.Currency == "" {
		return fmt.Errorf("bond.currency is required")
	}
	if c.Bond.Coupon < 0 {
		return fmt.Errorf("bond.coupon must not be negative")
	}
	if c.Bond.Face < 0 {
		return fmt.Errorf("bond.face must not be negative")
	}
	maturity, err := time.Parse(dateLayout, c.Bond.Maturity)
	if err != nil {
		return fmt.Errorf("bond.maturity must be YYYY-MM-DD: %w", err)
	}
	valDate, err := time.Parse(dateLayout, c.Curve.ValuationDate)
	if err != nil {
		return fmt.Errorf("curve.valuation_date must be YYYY-MM-DD: %w", err)
	}
	if !maturity.After(valDate) {
		return fmt.Errorf("bond.maturity must be after curve.valuation_date")
	}
	if len(c.Curve.Points) == 0 {
		return fmt.Errorf("curve.points must not be empty")
	}
	if _, err := market.NewCurve(valDate, c.Curve.Points); err != nil {
		return fmt.Errorf("curve.points: %w", err)
	}
	if c.Valuation.Precision < 0 || c.Valuation.Precision > 12 {
		return fmt.Errorf("valuation.precision must be between 0 and 12")
	}
	if c.Valuation.MaxIterations < 0 {
		return fmt.Errorf("valuation.max_iterations must not be negative")
	}
	if c.Valuation.Tolerance < 0 {
		return fmt.Errorf("valuation.tolerance must not be negative")
	}
	switch c.Journal.Type {
	case "none", "":
	case "csv":
		if c.Journal.EditsFile == "" || c.Journal.CommitsFile == "" {
			return fmt.Errorf("journal edits_file and commits_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "wal":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite', 'wal' or 'none'")
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); c.Logging.Level != "" && err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// BondStatic converts the bond section into market static data
func (c *Config) BondStatic() (market.BondStatic, error) {
	maturity, err := time.Parse(dateLayout, c.Bond.Maturity)
	if err != nil {
		return market.BondStatic{}, fmt.Errorf("bond.maturity: %w", err)
	}
	return market.BondStatic{
		ID:          c.Bond.ID,
		Description: c.Bond.Description,
		Currency:    c.Bond.Currency,
		Coupon:      c.Bond.Coupon,
		Maturity:    maturity,
		Face:        c.Bond.Face,
	}, nil
}

// BuildCurve converts the curve section into a market curve
func (c *Config) BuildCurve() (market.Curve, error) {
	valDate, err := time.Parse(dateLayout, c.Curve.ValuationDate)
	if err != nil {
		return market.Curve{}, fmt.Errorf("curve.valuation_date: %w", err)
	}
	return market.NewCurve(valDate, c.Curve.Points)
}

// EngineParams returns the reference engine parameters
func (c *Config) EngineParams() valuation.Params {
	return valuation.Params{
		Precision:     c.Valuation.Precision,
		MaxIterations: c.Valuation.MaxIterations,
		Tolerance:     c.Valuation.Tolerance,
	}
}

// JournalOptions returns the journal backend selection
func (c *Config) JournalOptions() journal.Options {
	return journal.Options{
		Type:        c.Journal.Type,
		EditsFile:   c.Journal.EditsFile,
		CommitsFile: c.Journal.CommitsFile,
		DBPath:      c.Journal.DBPath,
		Dir:         c.Journal.Dir,
	}
}

// Build returns a zap logger for the configured level
func (l LoggingConfig) Build() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if l.Level != "" {
		lvl, err := zap.ParseAtomicLevel(l.Level)
		if err != nil {
			return nil, fmt.Errorf("logging.level: %w", err)
		}
		zc.Level = lvl
	}
	return zc.Build()
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		InitialPrice: "100",
		Bond: BondConfig{
			ID:          "XS0000000001",
			Description: "Sample 4.5% 2029",
			Currency:    "EUR",
			Coupon:      0.045,
			Maturity:    "2029-06-15",
			Face:        100,
		},
		Curve: CurveConfig{
			ValuationDate: "2024-06-14",
			Points: []market.CurvePoint{
				{Tenor: 0.5, Rate: 0.0365},
				{Tenor: 1, Rate: 0.0340},
				{Tenor: 2, Rate: 0.0305},
				{Tenor: 5, Rate: 0.0280},
				{Tenor: 10, Rate: 0.0290},
			},
		},
		Valuation: ValuationConfig{
			Precision:     6,
			MaxIterations: 200,
			Tolerance:     1e-10,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./bondprice.sqlite",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
