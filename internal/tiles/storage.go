// Package tiles stores the tile entities of a single map layer for fast
// position lookup.
//
// A TileStorage is created for a fixed TilemapSize and keeps one of two
// representations for its whole life. DenseVec allocates a slot per cell and
// suits fully painted layers. SparseHashMap only spends memory on occupied
// cells and suits decoration layers where most cells are empty.
package tiles

import (
	"fmt"
	"iter"
	"strings"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
)

// StorageMode selects the backing representation of a TileStorage.
type StorageMode uint8

const (
	// DenseVec keeps one slot per grid cell. It is the default.
	DenseVec StorageMode = iota
	// SparseHashMap keeps only occupied cells.
	SparseHashMap
)

// SparseToDenseRatio is the assumed ratio of cells to occupied cells in a
// sparse layer. It only sizes the initial allocation.
const SparseToDenseRatio = 4

// String returns the config name of the mode.
func (m StorageMode) String() string {
	switch m {
	case DenseVec:
		return "dense"
	case SparseHashMap:
		return "sparse"
	default:
		return fmt.Sprintf("StorageMode(%d)", uint8(m))
	}
}

// ParseStorageMode accepts "dense" or "sparse" (case-insensitive).
func ParseStorageMode(s string) (StorageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dense", "densevec":
		return DenseVec, nil
	case "sparse", "sparsehashmap":
		return SparseHashMap, nil
	default:
		return DenseVec, fmt.Errorf("tiles: unknown storage mode %q", s)
	}
}

// backend is implemented by the dense and sparse representations.
type backend interface {
	get(idx int, pos core.TilePos) ecs.Entity
	set(idx int, pos core.TilePos, e ecs.Entity)
	remove(idx int, pos core.TilePos)
	len() int
	all(yield func(ecs.Entity) bool)
	allMut(yield func(*ecs.Entity) bool)
	occupied(size core.TilemapSize, yield func(core.TilePos, ecs.Entity) bool)
}

// TileStorage maps tile positions to tile entities. The entities are owned
// elsewhere; the storage only records their handles.
//
// Positions passed to Get, Set and Remove must lie inside Size(); anything
// else panics. TileStorage is not safe for concurrent use.
type TileStorage struct {
	size core.TilemapSize
	mode StorageMode
	b    backend
}

// Empty creates a storage of the given size with every cell empty.
func Empty(size core.TilemapSize, mode StorageMode) *TileStorage {
	s := &TileStorage{size: size, mode: mode}
	switch mode {
	case DenseVec:
		s.b = newDenseTiles(size.Count())
	case SparseHashMap:
		s.b = newSparseTiles(size.Count() / SparseToDenseRatio)
	default:
		panic(fmt.Sprintf("tiles: unknown storage mode %d", mode))
	}
	return s
}

// Size returns the fixed map size.
func (s *TileStorage) Size() core.TilemapSize { return s.size }

// Mode returns the representation chosen at construction.
func (s *TileStorage) Mode() StorageMode { return s.mode }

// Contains reports whether pos is a valid position for this storage.
func (s *TileStorage) Contains(pos core.TilePos) bool { return s.size.Contains(pos) }

// Len returns the number of cells holding an entity.
func (s *TileStorage) Len() int { return s.b.len() }

// Get returns the entity stored at pos, or ecs.NoEntity.
func (s *TileStorage) Get(pos core.TilePos) ecs.Entity {
	return s.b.get(s.index(pos), pos)
}

// Set stores e at pos. Storing ecs.NoEntity empties the cell.
func (s *TileStorage) Set(pos core.TilePos, e ecs.Entity) {
	s.b.set(s.index(pos), pos, e)
}

// Remove empties the cell at pos. Removing an empty cell is a no-op.
func (s *TileStorage) Remove(pos core.TilePos) {
	s.b.remove(s.index(pos), pos)
}

// All yields the stored slots. Dense storage yields every cell in row-major
// order, empty ones included. Sparse storage yields only occupied cells in
// no particular order; the order changes after removals.
func (s *TileStorage) All() iter.Seq[ecs.Entity] {
	return s.b.all
}

// AllMut is like All but yields writable slots. In sparse storage a slot set
// to ecs.NoEntity during the pass is removed once the pass ends.
func (s *TileStorage) AllMut() iter.Seq[*ecs.Entity] {
	return s.b.allMut
}

// Occupied yields every occupied cell together with its position.
func (s *TileStorage) Occupied() iter.Seq2[core.TilePos, ecs.Entity] {
	return func(yield func(core.TilePos, ecs.Entity) bool) {
		s.b.occupied(s.size, yield)
	}
}

func (s *TileStorage) index(pos core.TilePos) int {
	if !s.size.Contains(pos) {
		panic(fmt.Sprintf("tiles: position %v outside map size %v", pos, s.size))
	}
	return core.PosToIndex(pos, s.size)
}
