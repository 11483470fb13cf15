// Package settings holds the tunables of the dock: geometry, animation rates,
// timers and the cell-to-pixel mapping of the terminal. Values come from
// defaults, then an optional TOML file, then TERMDOCK_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/olivier-w/termdock/internal/dock"
)

// EnvPrefix is the prefix of environment overrides, e.g. TERMDOCK_MAX_SCALE.
const EnvPrefix = "termdock"

// Settings are the engine and presentation tunables.
type Settings struct {
	CellWidth  float64 `toml:"cell_width" envconfig:"CELL_WIDTH"`
	CellHeight float64 `toml:"cell_height" envconfig:"CELL_HEIGHT"`
	FPS        int     `toml:"fps" envconfig:"FPS"`

	MinBaseSize float64 `toml:"min_base_size" envconfig:"MIN_BASE_SIZE"`
	MaxBaseSize float64 `toml:"max_base_size" envconfig:"MAX_BASE_SIZE"`
	Margin      float64 `toml:"margin" envconfig:"MARGIN"`
	Gap         float64 `toml:"gap" envconfig:"GAP"`

	MaxScale           float64 `toml:"max_scale" envconfig:"MAX_SCALE"`
	InfluenceRadius    float64 `toml:"influence_radius" envconfig:"INFLUENCE_RADIUS"`
	PreRoll            float64 `toml:"pre_roll" envconfig:"PRE_ROLL"`
	LerpRate           float64 `toml:"lerp_rate" envconfig:"LERP_RATE"`
	SpringRate         float64 `toml:"spring_rate" envconfig:"SPRING_RATE"`
	Epsilon            float64 `toml:"epsilon" envconfig:"EPSILON"`
	MagnifiedThreshold float64 `toml:"magnified_threshold" envconfig:"MAGNIFIED_THRESHOLD"`

	AutoHide     bool          `toml:"auto_hide" envconfig:"AUTO_HIDE"`
	HideDelay    time.Duration `toml:"hide_delay" envconfig:"HIDE_DELAY"`
	PollInterval time.Duration `toml:"poll_interval" envconfig:"POLL_INTERVAL"`
}

// Default returns the stock tunables.
func Default() Settings {
	return Settings{
		CellWidth:  8,
		CellHeight: 16,
		FPS:        60,

		MinBaseSize: 32,
		MaxBaseSize: 64,
		Margin:      40,
		Gap:         6,

		MaxScale:           1.65,
		InfluenceRadius:    200,
		PreRoll:            40,
		LerpRate:           0.25,
		SpringRate:         0.12,
		Epsilon:            0.001,
		MagnifiedThreshold: 1.15,

		AutoHide:     true,
		HideDelay:    time.Second,
		PollInterval: 2500 * time.Millisecond,
	}
}

// Load starts from Default, applies the TOML file at path when path is not
// empty, then environment overrides, and validates the result.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read settings: %w", err)
		}
		if _, err := toml.Decode(string(data), &s); err != nil {
			return s, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return s, fmt.Errorf("settings from environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate rejects values the engine cannot work with.
func (s Settings) Validate() error {
	var errs []error
	if s.CellWidth <= 0 || s.CellHeight <= 0 {
		errs = append(errs, errors.New("cell size must be positive"))
	}
	if s.FPS <= 0 {
		errs = append(errs, errors.New("fps must be positive"))
	}
	if s.MinBaseSize <= 0 || s.MaxBaseSize <= 0 {
		errs = append(errs, errors.New("base sizes must be positive"))
	}
	if s.MinBaseSize > s.MaxBaseSize {
		errs = append(errs, fmt.Errorf("min_base_size %v exceeds max_base_size %v", s.MinBaseSize, s.MaxBaseSize))
	}
	if s.Margin < 0 || s.Gap < 0 {
		errs = append(errs, errors.New("margin and gap must not be negative"))
	}
	if s.MaxScale < 1 {
		errs = append(errs, fmt.Errorf("max_scale %v is below 1", s.MaxScale))
	}
	if s.InfluenceRadius <= 0 {
		errs = append(errs, errors.New("influence_radius must be positive"))
	}
	if !validRate(s.LerpRate) || !validRate(s.SpringRate) {
		errs = append(errs, errors.New("lerp_rate and spring_rate must be in (0, 1]"))
	}
	if s.Epsilon <= 0 {
		errs = append(errs, errors.New("epsilon must be positive"))
	}
	if s.HideDelay <= 0 || s.PollInterval <= 0 {
		errs = append(errs, errors.New("hide_delay and poll_interval must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

func validRate(r float64) bool {
	return r > 0 && r <= 1
}

// Engine returns the engine configuration.
func (s Settings) Engine() dock.Config {
	return dock.Config{
		Layout: dock.Layout{
			Margin:  s.Margin,
			Gap:     s.Gap,
			MinBase: s.MinBaseSize,
			MaxBase: s.MaxBaseSize,
		},
		Tuning: dock.Tuning{
			MaxScale:           s.MaxScale,
			InfluenceRadius:    s.InfluenceRadius,
			PreRoll:            s.PreRoll,
			LerpRate:           s.LerpRate,
			SpringRate:         s.SpringRate,
			Epsilon:            s.Epsilon,
			MagnifiedThreshold: s.MagnifiedThreshold,
		},
	}
}

// FrameInterval is the duration of one animation frame.
func (s Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.FPS)
}
