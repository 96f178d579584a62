// Package config describes a grid to build in YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"gridworld/grid"
	"gridworld/populate"
)

// Patterns understood by Build.
const (
	PatternCycle  = "cycle"
	PatternRandom = "random"
	PatternText   = "text"
	PatternEmpty  = "empty"
)

// Common errors
var (
	ErrUnknownPattern = errors.New("unknown pattern")
	ErrInvalidSymbol  = errors.New("symbol must be a single character")
	ErrPictureSize    = errors.New("size does not match picture")
)

// Config holds everything needed to build a grid
type Config struct {
	Width      int               `yaml:"width"`
	Height     int               `yaml:"height"`
	Pattern    string            `yaml:"pattern"`
	Symbols    string            `yaml:"symbols"` // Runes the cycle and random patterns draw from
	Seed       uint64            `yaml:"seed"`
	Picture    []string          `yaml:"picture"` // Rows for the text pattern
	Empty      string            `yaml:"empty"`   // Rune drawn for empty cells
	Placements []PlacementConfig `yaml:"placements"`
}

// PlacementConfig is a symbol written after the grid is populated
type PlacementConfig struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Symbol string `yaml:"symbol"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills in any unset field.
func (c *Config) SetDefaults() {
	if c.Pattern == "" {
		c.Pattern = PatternCycle
	}
	if c.Symbols == "" {
		c.Symbols = ".#"
	}
	if c.Empty == "" {
		c.Empty = " "
	}
	// A text pattern takes its size from the picture
	if c.Pattern == PatternText && c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = populate.TextSize(c.Picture...)
	}
	if c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = 16, 8
	}
}

// Validate checks the configuration for values Build cannot use.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: %dx%d", grid.ErrInvalidSize, c.Width, c.Height)
	}
	switch c.Pattern {
	case PatternCycle, PatternRandom, PatternText, PatternEmpty:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPattern, c.Pattern)
	}
	// The text source lays its runes out for exactly the picture's size
	if c.Pattern == PatternText {
		w, h := populate.TextSize(c.Picture...)
		if c.Width != w || c.Height != h {
			return fmt.Errorf("%w: %dx%d, picture is %dx%d", ErrPictureSize, c.Width, c.Height, w, h)
		}
	}
	if _, err := single(c.Empty); err != nil {
		return fmt.Errorf("empty: %w", err)
	}
	for i, p := range c.Placements {
		if _, err := single(p.Symbol); err != nil {
			return fmt.Errorf("placement %d: %w", i, err)
		}
	}
	return nil
}

// EmptyRune returns the rune configured for empty cells.
func (c *Config) EmptyRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Empty)
	return r
}

// Build populates a grid according to the pattern and then applies the
// extra placements in order.
func (c *Config) Build() (grid.Grid[rune], error) {
	if err := c.Validate(); err != nil {
		return grid.Grid[rune]{}, err
	}

	var p grid.Populator[rune]
	switch c.Pattern {
	case PatternCycle:
		p = populate.Cycle([]rune(c.Symbols)...)
	case PatternRandom:
		p = populate.Random(c.Seed, []rune(c.Symbols)...)
	case PatternText:
		p = populate.Text(c.Picture...)
	}

	g := grid.New[rune](c.Width, c.Height)
	if p != nil {
		var err error
		g, err = grid.PopulatedBy(c.Width, c.Height, p)
		if err != nil {
			return grid.Grid[rune]{}, fmt.Errorf("building %s grid: %w", c.Pattern, err)
		}
	}

	for _, pl := range c.Placements {
		r, _ := single(pl.Symbol)
		g = g.WithSymbolAt(r, pl.X, pl.Y)
	}
	return g, nil
}

func single(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
