package app

import (
	"flag"
	"strconv"

	"ecs-tilemap/internal/tilemap"
	"ecs-tilemap/internal/tiles"
)

// Config stores command line configurable options for the tilemap viewer.
type Config struct {
	Layout   string
	Sparse   bool
	Width    int
	Height   int
	Seed     int64
	Zoom     float64
	TPS      int
	Snapshot string
	WindowW  int
	WindowH  int
}

// NewConfig returns the default configuration values.
func NewConfig() *Config {
	return &Config{
		Sparse:   true,
		Zoom:     0.5,
		TPS:      60,
		Snapshot: "quicksave",
		WindowW:  1280,
		WindowH:  720,
	}
}

// Bind registers the configuration fields with the provided flag set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Layout, "layout", c.Layout, "path to a YAML layout (default: built-in five layer demo)")
	fs.BoolVar(&c.Sparse, "sparse", c.Sparse, "use the layout's per-layer storage modes; false forces every layer dense")
	fs.IntVar(&c.Width, "w", c.Width, "override map width in tiles")
	fs.IntVar(&c.Height, "h", c.Height, "override map height in tiles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "override the layout seed")
	fs.Float64Var(&c.Zoom, "zoom", c.Zoom, "initial camera zoom")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "snapshot name used by F5/F9")
	fs.IntVar(&c.WindowW, "window-w", c.WindowW, "window width in pixels")
	fs.IntVar(&c.WindowH, "window-h", c.WindowH, "window height in pixels")
}

// LayoutConfig resolves the layout file, or the built-in demo, and applies
// the command line overrides to it.
func (c *Config) LayoutConfig() (tilemap.LayoutConfig, error) {
	layout := tilemap.DefaultLayout()
	if c.Layout != "" {
		var err error
		layout, err = tilemap.LoadLayout(c.Layout)
		if err != nil {
			return tilemap.LayoutConfig{}, err
		}
	}
	kv := map[string]string{}
	if c.Width > 0 {
		kv["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		kv["h"] = strconv.Itoa(c.Height)
	}
	if c.Seed != 0 {
		kv["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if !c.Sparse {
		kv["mode"] = tiles.DenseVec.String()
	}
	layout.ApplyOverrides(kv)
	return layout, nil
}

// BuildMap resolves the layout and builds the map it describes.
func (c *Config) BuildMap() (*tilemap.Map, error) {
	layout, err := c.LayoutConfig()
	if err != nil {
		return nil, err
	}
	return tilemap.Build(layout)
}
