package zapper

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of one game session. Distances are in
// normalised device coordinates, rates are per second.
type Config struct {
	Seed uint64 `yaml:"seed"` // 0 derives a seed from the clock

	DiskRadius float64 `yaml:"diskRadius"`
	MinCount   int     `yaml:"minCount"`
	MaxCount   int     `yaml:"maxCount"`

	Palette        []Tint `yaml:"palette"`
	PaletteMinimum int    `yaml:"paletteMinimum"` // shuffle window never shrinks below this

	InitialRadius   float64 `yaml:"initialRadius"`
	MaxRadius       float64 `yaml:"maxRadius"`
	ThresholdRadius float64 `yaml:"thresholdRadius"`
	GrowthSpeed     float64 `yaml:"growthSpeed"`

	LossLimit      int     `yaml:"lossLimit"`
	KillBonus      float64 `yaml:"killBonus"`
	ThresholdBonus float64 `yaml:"thresholdBonus"`
	PassiveRate    float64 `yaml:"passiveRate"`
}

// DefaultPalette returns the ten stock bacteria colors.
func DefaultPalette() []Tint {
	return []Tint{
		{Name: "Red", RGBA: color.RGBA{255, 0, 0, 255}},
		{Name: "Green", RGBA: color.RGBA{0, 255, 0, 255}},
		{Name: "Blue", RGBA: color.RGBA{0, 0, 255, 255}},
		{Name: "Yellow", RGBA: color.RGBA{255, 255, 0, 255}},
		{Name: "Magenta", RGBA: color.RGBA{255, 0, 255, 255}},
		{Name: "Cyan", RGBA: color.RGBA{0, 255, 255, 255}},
		{Name: "Orange", RGBA: color.RGBA{255, 128, 0, 255}},
		{Name: "Dark Green", RGBA: color.RGBA{0, 128, 0, 255}},
		{Name: "Dark Brown", RGBA: color.RGBA{102, 51, 26, 255}},
		{Name: "Gold", RGBA: color.RGBA{255, 204, 51, 255}},
	}
}

// DefaultConfig returns the stock rules.
func DefaultConfig() Config {
	return Config{
		DiskRadius:      0.8,
		MinCount:        1,
		MaxCount:        10,
		Palette:         DefaultPalette(),
		PaletteMinimum:  10,
		InitialRadius:   0.03,
		MaxRadius:       0.12,
		ThresholdRadius: 0.09,
		GrowthSpeed:     0.02,
		LossLimit:       2,
		KillBonus:       10,
		ThresholdBonus:  25,
		PassiveRate:     1,
	}
}

// LoadConfig reads a YAML file and overlays it onto DefaultConfig. Keys
// missing from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig is LoadConfig for YAML already in memory.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every rule violation at once.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.DiskRadius <= 0 {
		fail("diskRadius must be positive, got %g", c.DiskRadius)
	}
	if c.MinCount < 1 {
		fail("minCount must be at least 1, got %d", c.MinCount)
	}
	if c.MinCount > c.MaxCount {
		fail("minCount %d exceeds maxCount %d", c.MinCount, c.MaxCount)
	}
	if len(c.Palette) < c.MaxCount {
		fail("palette has %d colors, need at least maxCount %d", len(c.Palette), c.MaxCount)
	}
	if len(c.Palette) < c.PaletteMinimum {
		fail("palette has %d colors, need at least paletteMinimum %d", len(c.Palette), c.PaletteMinimum)
	}
	seen := make(map[string]bool, len(c.Palette))
	for _, tint := range c.Palette {
		if seen[tint.Name] {
			fail("palette color %q listed twice", tint.Name)
		}
		seen[tint.Name] = true
	}
	if c.InitialRadius <= 0 {
		fail("initialRadius must be positive, got %g", c.InitialRadius)
	}
	if c.MaxRadius < c.InitialRadius {
		fail("maxRadius %g is below initialRadius %g", c.MaxRadius, c.InitialRadius)
	}
	if c.ThresholdRadius <= c.InitialRadius || c.ThresholdRadius > c.MaxRadius {
		fail("thresholdRadius %g must lie in (%g, %g]", c.ThresholdRadius, c.InitialRadius, c.MaxRadius)
	}
	if c.GrowthSpeed <= 0 {
		fail("growthSpeed must be positive, got %g", c.GrowthSpeed)
	}
	if c.LossLimit < 1 {
		fail("lossLimit must be at least 1, got %d", c.LossLimit)
	}
	if c.KillBonus < 0 || c.ThresholdBonus < 0 || c.PassiveRate < 0 {
		fail("score rates cannot be negative")
	}

	return errors.Join(errs...)
}
