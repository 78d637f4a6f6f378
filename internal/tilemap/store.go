package tilemap

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tiles"
)

var (
	// ErrSnapshotNotFound is returned when loading a name that was never saved.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrNoStore is returned by a Store opened without a backing manager.
	ErrNoStore = errors.New("snapshot store unavailable")
)

const snapshotObject = "tilemaps"

// Snapshot is the persisted form of a Map. Entities are not saved; loading
// spawns fresh ones.
type Snapshot struct {
	Size     SizeConfig      `yaml:"size"`
	TileSize TileSizeConfig  `yaml:"tileSize"`
	MapType  string          `yaml:"mapType"`
	Layers   []LayerSnapshot `yaml:"layers"`
}

// LayerSnapshot stores the occupied cells of one layer as [x, y, texture]
// triples sorted by row then column.
type LayerSnapshot struct {
	Name    string     `yaml:"name"`
	Mode    string     `yaml:"mode"`
	Texture int        `yaml:"texture"`
	Z       float32    `yaml:"z,omitempty"`
	OffsetX float32    `yaml:"offsetX,omitempty"`
	OffsetY float32    `yaml:"offsetY,omitempty"`
	Tiles   [][]uint32 `yaml:"tiles,flow"`
}

// TakeSnapshot captures m.
func TakeSnapshot(m *Map) Snapshot {
	snap := Snapshot{
		Size:    SizeConfig{X: m.Size.X, Y: m.Size.Y},
		MapType: m.Type.String(),
	}
	for _, l := range m.Layers {
		snap.TileSize = TileSizeConfig{X: l.TileSize.X, Y: l.TileSize.Y}
		cx, cy, _ := CenteredTransform(m.Size, l.TileSize, m.Type, l.Z)
		ls := LayerSnapshot{
			Name:    l.Name,
			Mode:    l.Storage.Mode().String(),
			Texture: l.Texture,
			Z:       l.Z,
			OffsetX: l.Offset.X - cx,
			OffsetY: cy - l.Offset.Y,
		}
		for pos, e := range l.Storage.Occupied() {
			texture := l.Texture
			if b, ok := m.World.Tile(e); ok {
				texture = b.Texture
			}
			ls.Tiles = append(ls.Tiles, []uint32{pos.X, pos.Y, uint32(texture)})
		}
		sort.Slice(ls.Tiles, func(i, j int) bool {
			a, b := ls.Tiles[i], ls.Tiles[j]
			if a[1] != b[1] {
				return a[1] < b[1]
			}
			return a[0] < b[0]
		})
		snap.Layers = append(snap.Layers, ls)
	}
	return snap
}

// Restore builds a new Map from the snapshot.
func (s Snapshot) Restore() (*Map, error) {
	if s.Size.X == 0 || s.Size.Y == 0 {
		return nil, fmt.Errorf("snapshot size %dx%d must be non-zero", s.Size.X, s.Size.Y)
	}
	mt, err := ParseMapType(s.MapType)
	if err != nil {
		return nil, err
	}
	m := &Map{
		World: ecs.NewWorld(),
		Size:  core.TilemapSize{X: s.Size.X, Y: s.Size.Y},
		Type:  mt,
	}
	tileSize := Vec2{X: s.TileSize.X, Y: s.TileSize.Y}
	for _, ls := range s.Layers {
		mode, err := tiles.ParseStorageMode(ls.Mode)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", ls.Name, err)
		}
		l := m.AddLayer(LayerConfig{Name: ls.Name, Texture: ls.Texture, Z: ls.Z, OffsetX: ls.OffsetX, OffsetY: ls.OffsetY}, mode, tileSize)
		for _, t := range ls.Tiles {
			if len(t) != 3 {
				return nil, fmt.Errorf("layer %s: malformed tile %v", ls.Name, t)
			}
			pos := core.TilePos{X: t[0], Y: t[1]}
			if !m.Size.Contains(pos) {
				return nil, fmt.Errorf("layer %s: tile %v outside map size %v", ls.Name, pos, m.Size)
			}
			PlaceTile(m.World, l, pos, int(t[2]))
		}
	}
	return m, nil
}

// Store persists snapshots through gdata. A Store with a nil manager keeps
// working but every call reports ErrNoStore.
type Store struct {
	manager *gdata.Manager
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &Store{}, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return &Store{manager: m}, nil
}

// NewStore wraps an existing manager.
func NewStore(m *gdata.Manager) *Store { return &Store{manager: m} }

// Exists reports whether a snapshot with the given name was saved.
func (s *Store) Exists(name string) bool {
	return s.manager != nil && s.manager.ObjectPropExists(snapshotObject, name)
}

// Save writes m under name, replacing any previous snapshot.
func (s *Store) Save(name string, m *Map) error {
	if s.manager == nil {
		return ErrNoStore
	}
	data, err := yaml.Marshal(TakeSnapshot(m))
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.manager.SaveObjectProp(snapshotObject, name, data); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	log.Printf("[tilemap] saved snapshot %q (%d layers, %d bytes)", name, len(m.Layers), len(data))
	return nil
}

// Load reads the snapshot saved under name and rebuilds it.
func (s *Store) Load(name string) (*Map, error) {
	if s.manager == nil {
		return nil, ErrNoStore
	}
	if !s.manager.ObjectPropExists(snapshotObject, name) {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	data, err := s.manager.LoadObjectProp(snapshotObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %q: %w", name, err)
	}
	m, err := snap.Restore()
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}
	log.Printf("[tilemap] loaded snapshot %q (%d layers)", name, len(m.Layers))
	return m, nil
}
