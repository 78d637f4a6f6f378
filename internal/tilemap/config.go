package tilemap

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/tiles"
)

// SizeConfig is a width/height pair as written in layout files.
type SizeConfig struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
}

// TileSizeConfig is a pixel size as written in layout files.
type TileSizeConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// LayerConfig describes one layer of a layout.
type LayerConfig struct {
	Name    string  `yaml:"name"`
	Mode    string  `yaml:"mode"`    // "dense" or "sparse"
	Texture int     `yaml:"texture"` // palette index
	Pattern string  `yaml:"pattern"` // registered pattern name
	Modulus int     `yaml:"modulus,omitempty"`
	Density float64 `yaml:"density,omitempty"`
	Z       float32 `yaml:"z,omitempty"`
	OffsetX float32 `yaml:"offsetX,omitempty"`
	OffsetY float32 `yaml:"offsetY,omitempty"`
}

// LayoutConfig describes a complete multi-layer map.
type LayoutConfig struct {
	Size     SizeConfig     `yaml:"size"`
	TileSize TileSizeConfig `yaml:"tileSize"`
	MapType  string         `yaml:"mapType"`
	Seed     int64          `yaml:"seed,omitempty"`
	Layers   []LayerConfig  `yaml:"layers"`
}

// DefaultLayout returns the five-layer staggered isometric demo map: a dense
// ground layer and four sparse decoration layers, each raised a little.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Size:     SizeConfig{X: 384, Y: 384},
		TileSize: TileSizeConfig{X: 64, Y: 32},
		MapType:  IsometricStaggered.String(),
		Seed:     1337,
		Layers: []LayerConfig{
			{Name: "ground", Mode: "dense", Texture: 0, Pattern: "all"},
			{Name: "rubble", Mode: "sparse", Texture: 1, Pattern: "product-mod", Modulus: 3, Z: 2, OffsetY: 16},
			{Name: "shrubs", Mode: "sparse", Texture: 2, Pattern: "product-mod", Modulus: 7, Z: 4, OffsetY: 32},
			{Name: "ridges", Mode: "sparse", Texture: 3, Pattern: "sum-mod", Modulus: 13, Z: 5, OffsetY: 48},
			{Name: "peaks", Mode: "sparse", Texture: 4, Pattern: "sum-mod", Modulus: 23, Z: 6, OffsetY: 64},
		},
	}
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutConfig{}, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	cfg, err := ParseLayout(data)
	if err != nil {
		return LayoutConfig{}, fmt.Errorf("layout %s: %w", path, err)
	}
	log.Printf("[tilemap] loaded layout %s (%d layers)", path, len(cfg.Layers))
	return cfg, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (LayoutConfig, error) {
	var cfg LayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LayoutConfig{}, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return LayoutConfig{}, err
	}
	return cfg, nil
}

// Validate checks sizes, modes, map type and pattern names.
func (c LayoutConfig) Validate() error {
	if c.Size.X == 0 || c.Size.Y == 0 {
		return fmt.Errorf("map size %dx%d must be non-zero", c.Size.X, c.Size.Y)
	}
	if _, err := ParseMapType(c.MapType); err != nil {
		return err
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("layout has no layers")
	}
	for i, l := range c.Layers {
		if _, err := tiles.ParseStorageMode(l.Mode); err != nil {
			return fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
		}
		if _, ok := core.Patterns()[l.Pattern]; !ok {
			return fmt.Errorf("layer %d (%s): %w %q", i, l.Name, ErrUnknownPattern, l.Pattern)
		}
	}
	return nil
}

// ApplyOverrides updates the layout from flag-style key/value pairs. Known
// keys are w, h, seed and mode; mode forces every layer to the given storage
// mode. Malformed values are ignored.
func (c *LayoutConfig) ApplyOverrides(kv map[string]string) {
	if kv == nil {
		return
	}
	if v, ok := kv["w"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil && parsed > 0 {
			c.Size.X = uint32(parsed)
		}
	}
	if v, ok := kv["h"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 32); err == nil && parsed > 0 {
			c.Size.Y = uint32(parsed)
		}
	}
	if v, ok := kv["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := kv["mode"]; ok {
		if mode, err := tiles.ParseStorageMode(v); err == nil {
			for i := range c.Layers {
				c.Layers[i].Mode = mode.String()
			}
		}
	}
}
