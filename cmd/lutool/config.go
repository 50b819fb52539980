package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kovidgoyal/lut/render"
	"github.com/kovidgoyal/lut/types"
)

var _ = fmt.Print

// Config holds defaults read from the optional YAML configuration file.
// Command line flags override them.
type Config struct {
	// Formatter ID used when it cannot be inferred from an output file name
	DefaultFormat string `yaml:"default_format"`
	// Largest lattice used when applying LUTs to images
	MaxRenderSize int `yaml:"max_render_size"`
	// Digits after the decimal point in text formats
	Precision int `yaml:"precision"`
	// Integer output depth for integer formats
	OutputBitDepth int `yaml:"output_bit_depth"`
	// tetrahedral or trilinear
	Interpolation string `yaml:"interpolation"`
	// encoded or linear
	WorkingSpace string `yaml:"working_space"`
}

func default_config() Config {
	return Config{
		DefaultFormat: "cube",
		MaxRenderSize: render.DefaultMaxLatticeSize,
		Precision:     6,
		Interpolation: "tetrahedral",
		WorkingSpace:  "encoded",
	}
}

func default_config_path() string {
	d, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(d, "lutool", "lutool.yaml")
}

// load_config reads path over the defaults. A missing file at the default
// location is not an error, a missing explicitly specified file is.
func load_config(path string) (Config, error) {
	cfg := default_config()
	explicit := path != ""
	if !explicit {
		if path = default_config_path(); path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, ok := types.InterpolationNames[c.Interpolation]; !ok {
		return fmt.Errorf("unknown interpolation: %q", c.Interpolation)
	}
	if _, err := c.working_space(); err != nil {
		return err
	}
	if c.MaxRenderSize < 2 {
		return fmt.Errorf("max_render_size must be at least 2, not: %d", c.MaxRenderSize)
	}
	return nil
}

func (c Config) interpolation() types.Interpolation {
	return types.InterpolationNames[c.Interpolation]
}

func (c Config) working_space() (render.WorkingSpaceType, error) {
	switch c.WorkingSpace {
	case "encoded", "":
		return render.Encoded, nil
	case "linear":
		return render.Linear, nil
	}
	return render.Encoded, fmt.Errorf("unknown working space: %q", c.WorkingSpace)
}
