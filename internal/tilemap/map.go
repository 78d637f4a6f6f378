package tilemap

import (
	"strconv"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tiles"
)

// Map is an ordered stack of layers sharing one entity world. Layers are
// drawn in slice order.
type Map struct {
	World  *ecs.World
	Size   core.TilemapSize
	Type   MapType
	Layers []*Layer
}

// Build creates the world, spawns every layer described by cfg and fills it
// from its pattern.
func Build(cfg LayoutConfig) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mt, _ := ParseMapType(cfg.MapType)
	m := &Map{
		World: ecs.NewWorld(),
		Size:  core.TilemapSize{X: cfg.Size.X, Y: cfg.Size.Y},
		Type:  mt,
	}
	for _, lc := range cfg.Layers {
		mode, _ := tiles.ParseStorageMode(lc.Mode)
		pattern, err := NewPattern(lc.Pattern, core.PatternParams{Modulus: lc.Modulus, Seed: cfg.Seed, Density: lc.Density})
		if err != nil {
			return nil, err
		}
		l := m.AddLayer(lc, mode, Vec2{X: cfg.TileSize.X, Y: cfg.TileSize.Y})
		if lc.Pattern == "all" {
			FillTilemap(m.World, l.Texture, l.Size, l.Entity, l.Storage)
			continue
		}
		FillPattern(m.World, l, pattern)
	}
	return m, nil
}

// AddLayer appends an empty layer configured from lc.
func (m *Map) AddLayer(lc LayerConfig, mode tiles.StorageMode, tileSize Vec2) *Layer {
	l := NewLayer(m.World, lc.Name, m.Size, mode)
	l.TileSize = tileSize
	l.Type = m.Type
	l.Texture = lc.Texture
	cx, cy, z := CenteredTransform(m.Size, tileSize, m.Type, lc.Z)
	l.Z = z
	// Positive offsets raise a layer on screen.
	l.Offset = Vec2{X: cx + lc.OffsetX, Y: cy - lc.OffsetY}
	m.Layers = append(m.Layers, l)
	return l
}

// Layer returns the layer with the given name.
func (m *Map) Layer(name string) (*Layer, bool) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// TopmostAt returns the highest layer holding a tile at pos, and that tile.
func (m *Map) TopmostAt(pos core.TilePos) (*Layer, ecs.Entity) {
	if !m.Size.Contains(pos) {
		return nil, ecs.NoEntity
	}
	for i := len(m.Layers) - 1; i >= 0; i-- {
		l := m.Layers[i]
		if e := l.Storage.Get(pos); e != ecs.NoEntity {
			return l, e
		}
	}
	return nil, ecs.NoEntity
}

// Parameters reports per-layer storage statistics for the HUD.
func (m *Map) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{{
		Name: "Map",
		Params: []core.Parameter{
			stringParam("size", "Size", m.Size.String()),
			stringParam("type", "Type", m.Type.String()),
			intParam("entities", "Entities", m.World.Len()),
		},
	}}
	for _, l := range m.Layers {
		s := l.Storage
		occupancy := 0.0
		if n := s.Size().Count(); n > 0 {
			occupancy = float64(s.Len()) / float64(n)
		}
		groups = append(groups, core.ParameterGroup{
			Name: l.Name,
			Params: []core.Parameter{
				stringParam("mode", "Mode", s.Mode().String()),
				intParam("tiles", "Tiles", s.Len()),
				floatParam("occupancy", "Occupancy", occupancy),
				intParam("bytes", "Est. bytes", EstimateBytes(s)),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// EstimateBytes approximates the heap held by a storage: 8 bytes per dense
// slot, or per sparse entry an entity, a position and a map slot.
func EstimateBytes(s *tiles.TileStorage) int {
	const (
		entityBytes = 8
		posBytes    = 8
		// key + value + per-entry bucket overhead
		mapEntryBytes = 8 + 8 + 8
	)
	if s.Mode() == tiles.DenseVec {
		return s.Size().Count() * entityBytes
	}
	return s.Len() * (entityBytes + posBytes + mapEntryBytes)
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', 3, 64)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
