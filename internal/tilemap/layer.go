// Package tilemap assembles tile layers on top of tiles.TileStorage: it spawns
// tile entities, fills layers from patterns, loads layouts and persists
// snapshots.
package tilemap

import (
	"fmt"
	"math"
	"strings"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tiles"
)

// MapType controls how tile positions are projected to world space. It does
// not affect storage: every layer linearizes positions row-major.
type MapType uint8

const (
	Square MapType = iota
	IsometricDiamond
	IsometricStaggered
)

// String returns the config name of the map type.
func (t MapType) String() string {
	switch t {
	case Square:
		return "square"
	case IsometricDiamond:
		return "isometric-diamond"
	case IsometricStaggered:
		return "isometric-staggered"
	default:
		return fmt.Sprintf("MapType(%d)", uint8(t))
	}
}

// ParseMapType is the inverse of MapType.String.
func ParseMapType(s string) (MapType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "square":
		return Square, nil
	case "isometric-diamond", "diamond":
		return IsometricDiamond, nil
	case "isometric-staggered", "staggered":
		return IsometricStaggered, nil
	default:
		return Square, fmt.Errorf("unknown map type %q", s)
	}
}

// Vec2 is a pixel-space offset or size.
type Vec2 struct {
	X, Y float32
}

// Layer is one tilemap: an entity that owns a grid of tile entities.
type Layer struct {
	Name     string
	Entity   ecs.Entity
	Size     core.TilemapSize
	TileSize Vec2
	Type     MapType
	Texture  int
	Z        float32
	Offset   Vec2
	Storage  *tiles.TileStorage
}

// NewLayer spawns the tilemap entity and allocates its storage.
func NewLayer(w *ecs.World, name string, size core.TilemapSize, mode tiles.StorageMode) *Layer {
	return &Layer{
		Name:    name,
		Entity:  w.Spawn(),
		Size:    size,
		Storage: tiles.Empty(size, mode),
	}
}

// FillTilemap spawns a tile with the given texture on every cell, parents it
// to tilemapID and records it in storage.
func FillTilemap(w *ecs.World, texture int, size core.TilemapSize, tilemapID ecs.Entity, storage *tiles.TileStorage) {
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			pos := core.TilePos{X: x, Y: y}
			e := w.SpawnTile(ecs.TileBundle{Position: pos, Tilemap: tilemapID, Texture: texture, Visible: true})
			w.AddChild(tilemapID, e)
			storage.Set(pos, e)
		}
	}
}

// FillPattern spawns a tile on every cell selected by p and returns how many
// were placed. Cells that already hold a tile are replaced.
func FillPattern(w *ecs.World, l *Layer, p core.Pattern) int {
	placed := 0
	for y := uint32(0); y < l.Size.Y; y++ {
		for x := uint32(0); x < l.Size.X; x++ {
			pos := core.TilePos{X: x, Y: y}
			if !p.Selects(pos) {
				continue
			}
			PlaceTile(w, l, pos, l.Texture)
			placed++
		}
	}
	return placed
}

// PlaceTile spawns a tile at pos, despawning whatever was there before.
func PlaceTile(w *ecs.World, l *Layer, pos core.TilePos, texture int) ecs.Entity {
	if old := l.Storage.Get(pos); old != ecs.NoEntity {
		w.Despawn(old)
	}
	e := w.SpawnTile(ecs.TileBundle{Position: pos, Tilemap: l.Entity, Texture: texture, Visible: true})
	w.AddChild(l.Entity, e)
	l.Storage.Set(pos, e)
	return e
}

// DespawnTile removes the tile at pos from the layer and the world. It
// reports whether a tile was present.
func DespawnTile(w *ecs.World, l *Layer, pos core.TilePos) bool {
	e := l.Storage.Get(pos)
	if e == ecs.NoEntity {
		return false
	}
	l.Storage.Remove(pos)
	w.Despawn(e)
	return true
}

// CenteredTransform returns the translation that centres a map of the given
// size around the origin, with z as the draw depth.
func CenteredTransform(size core.TilemapSize, tileSize Vec2, t MapType, z float32) (x, y, depth float32) {
	cols, rows := float32(size.X), float32(size.Y)
	switch t {
	case IsometricDiamond:
		return -(cols - rows) * tileSize.X / 4, -(cols + rows) * tileSize.Y / 4, z
	case IsometricStaggered:
		// Rows interleave, so a row only advances half a tile vertically.
		return -cols * tileSize.X / 2, -rows * tileSize.Y / 4, z
	default:
		return -cols * tileSize.X / 2, -rows * tileSize.Y / 2, z
	}
}

// WorldPos projects a tile position to its pixel-space anchor, including the
// layer offset.
func (l *Layer) WorldPos(pos core.TilePos) Vec2 {
	x, y := float32(pos.X), float32(pos.Y)
	tw, th := l.TileSize.X, l.TileSize.Y
	var out Vec2
	switch l.Type {
	case IsometricDiamond:
		out = Vec2{X: (x - y) * tw / 2, Y: (x + y) * th / 2}
	case IsometricStaggered:
		out = Vec2{X: x*tw + float32(pos.Y%2)*tw/2, Y: y * th / 2}
	default:
		out = Vec2{X: x * tw, Y: y * th}
	}
	out.X += l.Offset.X
	out.Y += l.Offset.Y
	return out
}

// TileAt is the inverse of WorldPos. The result is fractional and may lie
// outside the map.
func (l *Layer) TileAt(p Vec2) (fx, fy float64) {
	x := float64(p.X - l.Offset.X)
	y := float64(p.Y - l.Offset.Y)
	tw, th := float64(l.TileSize.X), float64(l.TileSize.Y)
	if tw == 0 || th == 0 {
		return 0, 0
	}
	switch l.Type {
	case IsometricDiamond:
		u, v := x/(tw/2), y/(th/2)
		return (u + v) / 2, (v - u) / 2
	case IsometricStaggered:
		fy = y / (th / 2)
		row := math.Round(fy)
		if int64(row)%2 != 0 {
			x -= tw / 2
		}
		return x / tw, fy
	default:
		return x / tw, y / th
	}
}

// PickTile returns the cell under the pixel-space point p.
func (l *Layer) PickTile(p Vec2) (core.TilePos, bool) {
	fx, fy := l.TileAt(p)
	x, y := math.Round(fx), math.Round(fy)
	if l.Type == Square {
		x, y = math.Floor(fx), math.Floor(fy)
	}
	if x < 0 || y < 0 || x >= float64(l.Size.X) || y >= float64(l.Size.Y) {
		return core.TilePos{}, false
	}
	return core.TilePos{X: uint32(x), Y: uint32(y)}, true
}

// VisibleRange returns the inclusive cell bounds that can intersect the
// pixel-space rectangle lo..hi. ok is false when nothing is visible.
func (l *Layer) VisibleRange(lo, hi Vec2) (from, to core.TilePos, ok bool) {
	if l.Size.X == 0 || l.Size.Y == 0 {
		return core.TilePos{}, core.TilePos{}, false
	}
	corners := [4]Vec2{lo, {X: hi.X, Y: lo.Y}, {X: lo.X, Y: hi.Y}, hi}
	lox, loy := math.Inf(1), math.Inf(1)
	hix, hiy := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		fx, fy := l.TileAt(c)
		lox, hix = math.Min(lox, fx), math.Max(hix, fx)
		loy, hiy = math.Min(loy, fy), math.Max(hiy, fy)
	}
	// One cell of slack covers tiles that straddle the edge.
	lox, loy = math.Floor(lox)-1, math.Floor(loy)-1
	hix, hiy = math.Ceil(hix)+1, math.Ceil(hiy)+1
	maxX, maxY := float64(l.Size.X-1), float64(l.Size.Y-1)
	if hix < 0 || hiy < 0 || lox > maxX || loy > maxY {
		return core.TilePos{}, core.TilePos{}, false
	}
	from = core.TilePos{X: uint32(math.Max(lox, 0)), Y: uint32(math.Max(loy, 0))}
	to = core.TilePos{X: uint32(math.Min(hix, maxX)), Y: uint32(math.Min(hiy, maxY))}
	return from, to, true
}
