// Package config loads the YAML configuration shared by the qtree commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kass/go-quadtree/pkg/geo"
)

const (
	DefaultFile  = "config.yaml"
	ExampleFile  = "config.yaml.example"
	defaultSeed  = 1
	defaultWidth = 500
)

// ErrConfigNotFound is returned by Load when no candidate file exists.
var ErrConfigNotFound = errors.New("config file not found")

// Config structure for YAML configuration
type Config struct {
	Tree    TreeConfig    `yaml:"tree"`
	Demo    DemoConfig    `yaml:"demo"`
	Bench   BenchConfig   `yaml:"bench"`
	PostGIS PostGISConfig `yaml:"postgis"`
}

// TreeConfig describes the root node. The root covers [0,Width]x[0,Height].
type TreeConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Capacity int     `yaml:"capacity"`
	MaxDepth int     `yaml:"max_depth"`
}

type DemoConfig struct {
	Points int   `yaml:"points"`
	Seed   int64 `yaml:"seed"`
}

type BenchConfig struct {
	Points    int     `yaml:"points"`
	Queries   int     `yaml:"queries"`
	Workers   int     `yaml:"workers"`
	QuerySize float64 `yaml:"query_size"`
}

type PostGISConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	MaxConnections int    `yaml:"max_connections"`
}

// Default returns the configuration of the original 500x500 sketch.
func Default() Config {
	return Config{
		Tree: TreeConfig{
			Width:    defaultWidth,
			Height:   defaultWidth,
			Capacity: 4,
			MaxDepth: 32,
		},
		Demo: DemoConfig{
			Points: 250,
			Seed:   defaultSeed,
		},
		Bench: BenchConfig{
			Points:    100000,
			Queries:   1000,
			Workers:   0,
			QuerySize: 25,
		},
		PostGIS: PostGISConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "geodb",
			MaxConnections: 25,
		},
	}
}

// Bounds returns the root rectangle described by the tree section
func (c Config) Bounds() geo.Rectangle {
	return geo.NewRectangle(c.Tree.Width/2, c.Tree.Height/2, c.Tree.Width, c.Tree.Height)
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Tree.Width <= 0 || c.Tree.Height <= 0:
		return fmt.Errorf("tree: width and height must be positive, got %vx%v", c.Tree.Width, c.Tree.Height)
	case c.Tree.Capacity < 0:
		return fmt.Errorf("tree: capacity must not be negative, got %d", c.Tree.Capacity)
	case c.Tree.MaxDepth < 0:
		return fmt.Errorf("tree: max_depth must not be negative, got %d", c.Tree.MaxDepth)
	case c.Demo.Points < 0 || c.Bench.Points < 0:
		return fmt.Errorf("point counts must not be negative")
	case c.Bench.Queries < 0:
		return fmt.Errorf("bench: queries must not be negative, got %d", c.Bench.Queries)
	case c.Bench.QuerySize < 0:
		return fmt.Errorf("bench: query_size must not be negative, got %v", c.Bench.QuerySize)
	case c.PostGIS.Port < 0 || c.PostGIS.Port > 65535:
		return fmt.Errorf("postgis: invalid port %d", c.PostGIS.Port)
	}
	return nil
}

// Parse decodes YAML on top of the defaults, so missing keys keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads the first existing file among paths and returns the file it
// used. With no paths it tries DefaultFile then ExampleFile.
func Load(paths ...string) (Config, string, error) {
	if len(paths) == 0 {
		paths = []string{DefaultFile, ExampleFile}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to read %s: %w", path, err)
		}

		cfg, err := Parse(data)
		if err != nil {
			return Config{}, path, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, path, nil
	}

	return Config{}, "", fmt.Errorf("%w (tried %v)", ErrConfigNotFound, paths)
}

// LoadOrDefault behaves like Load but falls back to Default when no file
// exists. Parse errors are still reported.
func LoadOrDefault(paths ...string) (Config, string, error) {
	cfg, path, err := Load(paths...)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), "", nil
	}
	return cfg, path, err
}
