// Package config loads simulation settings from defaults, a YAML file and the environment
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/gridbots/engine"
	"github.com/lixenwraith/gridbots/grid"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Environment overrides, applied after the file
const (
	EnvSeed     = "GRIDBOTS_SEED"
	EnvBots     = "GRIDBOTS_BOTS"
	EnvColumns  = "GRIDBOTS_COLUMNS"
	EnvRows     = "GRIDBOTS_ROWS"
	EnvWorkers  = "GRIDBOTS_WORKERS"
	EnvLogLevel = "GRIDBOTS_LOG_LEVEL"
	EnvAudio    = "GRIDBOTS_AUDIO"
)

type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Bots     int            `yaml:"bots"`
	Seed     uint64         `yaml:"seed"`
	Movement MovementConfig `yaml:"movement"`
	View     ViewConfig     `yaml:"view"`
	Log      LogConfig      `yaml:"log"`
}

type GridConfig struct {
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
	CellWidth  float32 `yaml:"cell_width"`
	CellDepth  float32 `yaml:"cell_depth"`
	TrackWidth float32 `yaml:"track_width"`
}

type MovementConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Window       int           `yaml:"window"`
	RateMin      time.Duration `yaml:"rate_min"`
	RateMax      time.Duration `yaml:"rate_max"`
	DelayMin     time.Duration `yaml:"delay_min"`
	DelayMax     time.Duration `yaml:"delay_max"`
	Workers      int           `yaml:"workers"`
}

type ViewConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	Audio         bool          `yaml:"audio"`
	Volume        float64       `yaml:"volume"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the reference setup: 100x100 grid, 500 bots, one-second ticks
func Default() *Config {
	p := engine.DefaultParams()
	return &Config{
		Grid: GridConfig{
			Columns:    100,
			Rows:       100,
			CellWidth:  grid.CellWidth,
			CellDepth:  grid.CellDepth,
			TrackWidth: grid.TrackWidth,
		},
		Bots: 500,
		Seed: p.Seed,
		Movement: MovementConfig{
			TickInterval: p.TickInterval,
			Window:       p.Window,
			RateMin:      p.RateMin,
			RateMax:      p.RateMax,
			DelayMin:     p.DelayMin,
			DelayMax:     p.DelayMax,
			Workers:      p.Workers,
		},
		View: ViewConfig{
			FrameInterval: 33 * time.Millisecond,
			Audio:         false,
			Volume:        0.3,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := cfg.Decode(f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode merges YAML from r into cfg, rejecting unknown keys
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Encode writes cfg as YAML
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ApplyEnv overrides fields from environment variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup(EnvSeed); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		}
	}
	for _, e := range []struct {
		key string
		dst *int
	}{
		{EnvBots, &c.Bots},
		{EnvColumns, &c.Grid.Columns},
		{EnvRows, &c.Grid.Rows},
		{EnvWorkers, &c.Movement.Workers},
	} {
		if v, ok := lookup(e.key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*e.dst = n
			} else {
				errs = append(errs, fmt.Errorf("%s: %w", e.key, err))
			}
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvAudio); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.View.Audio = b
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAudio, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Validate fails fast on anything the per-tick path would otherwise have to guard
func (c *Config) Validate() error {
	var errs []error
	if err := c.GridConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("grid: %w", err))
	}
	if c.Bots < 0 {
		errs = append(errs, fmt.Errorf("bots must be >= 0, got %d", c.Bots))
	}
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("movement: %w", err))
	}
	if c.View.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("view: frame interval must be positive, got %v", c.View.FrameInterval))
	}
	if c.View.Volume < 0 || c.View.Volume > 1 {
		errs = append(errs, fmt.Errorf("view: volume must be within [0,1], got %g", c.View.Volume))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// GridConfig converts to the immutable grid model
func (c *Config) GridConfig() grid.Config {
	g := grid.New(c.Grid.Columns, c.Grid.Rows)
	g.CellWidth = c.Grid.CellWidth
	g.CellDepth = c.Grid.CellDepth
	g.TrackWidth = c.Grid.TrackWidth
	return g
}

// Params converts to scheduler movement parameters
func (c *Config) Params() engine.Params {
	return engine.Params{
		Seed:         c.Seed,
		TickInterval: c.Movement.TickInterval,
		Window:       c.Movement.Window,
		RateMin:      c.Movement.RateMin,
		RateMax:      c.Movement.RateMax,
		DelayMin:     c.Movement.DelayMin,
		DelayMax:     c.Movement.DelayMax,
		Workers:      c.Movement.Workers,
	}
}
