// Package config loads canvasgame settings from YAML
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jrcurtis/canvasgame/render"
)

var (
	ErrInvalidFPS  = errors.New("config: fps must be positive")
	ErrInvalidSize = errors.New("config: width and height must be positive")
	ErrInvalidHold = errors.New("config: hold window must not be negative")
)

// Config holds scene and host settings
type Config struct {
	FPS        float64       `yaml:"fps"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Background string        `yaml:"background"`
	Debug      bool          `yaml:"debug"`
	LogLevel   string        `yaml:"log_level"`
	Images     []string      `yaml:"images"`
	Sounds     []string      `yaml:"sounds"`
	HoldWindow time.Duration `yaml:"hold_window"` // Terminal key release delay
	CellWidth  float64       `yaml:"cell_width"`  // Scene units per terminal column
	CellHeight float64       `yaml:"cell_height"` // Scene units per terminal row
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		FPS:        30,
		Width:      800,
		Height:     600,
		Background: "#000",
		LogLevel:   "debug",
		HoldWindow: 150 * time.Millisecond,
		CellWidth:  10,
		CellHeight: 20,
	}
}

// Load reads the YAML file at path over the defaults
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r over the defaults and validates the result
// Unknown keys are rejected
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.FPS <= 0 || math.IsInf(c.FPS, 0) || math.IsNaN(c.FPS) {
		return fmt.Errorf("%w: %v", ErrInvalidFPS, c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.HoldWindow < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidHold, c.HoldWindow)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("%w: cell %vx%v", ErrInvalidSize, c.CellWidth, c.CellHeight)
	}
	return nil
}

// BackgroundColor parses Background, black when unrecognized
func (c Config) BackgroundColor() render.Color {
	return render.ParseColor(c.Background)
}
