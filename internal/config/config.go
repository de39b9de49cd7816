// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prosperity-go/internal/risk"
)

// Strategy kinds an instrument may be traded with.
const (
	KindStable = "stable"
	KindTrend  = "trend"
	KindBand   = "band"
)

var (
	// ErrNoInstruments is returned when the engine has nothing to trade.
	ErrNoInstruments = errors.New("no instruments configured")
	// ErrUnknownKind is returned for an unsupported strategy kind.
	ErrUnknownKind = errors.New("unknown strategy kind")
	// ErrDuplicateSymbol is returned when a symbol is listed twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	// ErrInvalidInstrument wraps every per-instrument validation failure.
	ErrInvalidInstrument = errors.New("invalid instrument")
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Band is an inclusive price range quoted into by band instruments.
type Band struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Instrument configures how one symbol is traded.
type Instrument struct {
	Symbol string `yaml:"symbol"`
	Kind   string `yaml:"kind"`
	// PositionLimit overrides Engine.PositionLimit when positive.
	PositionLimit int `yaml:"position_limit"`
	// StopLoss is the catastrophic bid floor; zero disables the check.
	StopLoss int `yaml:"stop_loss"`
	// StartAt suppresses orders for snapshots earlier than this timestamp.
	StartAt int64 `yaml:"start_at"`

	BuyBelow  int `yaml:"buy_below"`
	SellAbove int `yaml:"sell_above"`

	Capacity    int `yaml:"capacity"`
	ShortWindow int `yaml:"short_window"`
	LongWindow  int `yaml:"long_window"`
	Offset      int `yaml:"offset"`

	BuyBand  Band `yaml:"buy_band"`
	SellBand Band `yaml:"sell_band"`
}

// Engine groups the decision core settings.
type Engine struct {
	PositionLimit int          `yaml:"position_limit"`
	Instruments   []Instrument `yaml:"instruments"`
}

// Feed selects where snapshots come from.
type Feed struct {
	Provider string `yaml:"provider"`
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
}

// Paper captures paper-trading settings used by the replay harness.
type Paper struct {
	StartingCash float64 `yaml:"starting_cash"`
	FillsPath    string  `yaml:"fills_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App    App    `yaml:"app"`
	Engine Engine `yaml:"engine"`
	Feed   Feed   `yaml:"feed"`
	Paper  Paper  `yaml:"paper"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Limit returns the effective position bound for the instrument.
func (e Engine) Limit(inst Instrument) int {
	if inst.PositionLimit > 0 {
		return inst.PositionLimit
	}
	if e.PositionLimit > 0 {
		return e.PositionLimit
	}
	return risk.DefaultPositionLimit
}

// Validate checks the engine invariants the controller relies on.
func (c *Config) Validate() error {
	if len(c.Engine.Instruments) == 0 {
		return ErrNoInstruments
	}
	seen := make(map[string]struct{}, len(c.Engine.Instruments))
	for _, inst := range c.Engine.Instruments {
		if inst.Symbol == "" {
			return fmt.Errorf("%w: empty symbol", ErrInvalidInstrument)
		}
		if _, dup := seen[inst.Symbol]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, inst.Symbol)
		}
		seen[inst.Symbol] = struct{}{}
		if err := inst.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (i Instrument) validate() error {
	switch i.Kind {
	case KindStable:
		if i.BuyBelow > i.SellAbove {
			return fmt.Errorf("%w: %s buy_below %d above sell_above %d", ErrInvalidInstrument, i.Symbol, i.BuyBelow, i.SellAbove)
		}
		if i.StopLoss != 0 && i.StopLoss >= i.BuyBelow {
			return fmt.Errorf("%w: %s stop_loss %d must sit below buy_below %d", ErrInvalidInstrument, i.Symbol, i.StopLoss, i.BuyBelow)
		}
	case KindTrend:
		if i.ShortWindow < 0 || i.LongWindow < 0 || i.Offset < 0 {
			return fmt.Errorf("%w: %s negative window or offset", ErrInvalidInstrument, i.Symbol)
		}
		if (i.ShortWindow == 0) != (i.LongWindow == 0) {
			return fmt.Errorf("%w: %s needs both windows or neither", ErrInvalidInstrument, i.Symbol)
		}
		if i.LongWindow > 0 && i.ShortWindow >= i.LongWindow {
			return fmt.Errorf("%w: %s short_window must be below long_window", ErrInvalidInstrument, i.Symbol)
		}
		if i.Capacity < i.LongWindow {
			return fmt.Errorf("%w: %s capacity %d smaller than long_window %d", ErrInvalidInstrument, i.Symbol, i.Capacity, i.LongWindow)
		}
	case KindBand:
		if i.BuyBand.Low > i.BuyBand.High || i.SellBand.Low > i.SellBand.High {
			return fmt.Errorf("%w: %s inverted band", ErrInvalidInstrument, i.Symbol)
		}
	default:
		return fmt.Errorf("%w: %q for %s", ErrUnknownKind, i.Kind, i.Symbol)
	}
	return nil
}
