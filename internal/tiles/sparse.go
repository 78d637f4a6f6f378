package tiles

import (
	"fmt"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
)

// sparseTiles stores only occupied cells. refs and positions are co-indexed:
// refs[i] sits at positions[i], and index maps each position back to i.
// Removal swaps the last element into the hole so all three stay packed.
type sparseTiles struct {
	index     map[core.TilePos]int
	refs      []ecs.Entity
	positions []core.TilePos
}

func newSparseTiles(capacity int) *sparseTiles {
	return &sparseTiles{
		index:     make(map[core.TilePos]int, capacity),
		refs:      make([]ecs.Entity, 0, capacity),
		positions: make([]core.TilePos, 0, capacity),
	}
}

func (s *sparseTiles) get(_ int, pos core.TilePos) ecs.Entity {
	i, ok := s.index[pos]
	if !ok {
		return ecs.NoEntity
	}
	return s.refs[i]
}

func (s *sparseTiles) set(idx int, pos core.TilePos, e ecs.Entity) {
	if e == ecs.NoEntity {
		s.remove(idx, pos)
		return
	}
	if i, ok := s.index[pos]; ok {
		s.refs[i] = e
		return
	}
	s.refs = append(s.refs, e)
	s.positions = append(s.positions, pos)
	s.index[pos] = len(s.refs) - 1
}

func (s *sparseTiles) remove(_ int, pos core.TilePos) {
	i, ok := s.index[pos]
	if !ok {
		return
	}
	delete(s.index, pos)
	s.removeAt(i)
}

// removeAt drops slot i whose key has already been deleted from index.
func (s *sparseTiles) removeAt(i int) {
	if len(s.refs) == 1 {
		s.refs = s.refs[:0]
		s.positions = s.positions[:0]
		return
	}
	last := len(s.refs) - 1
	if i != last {
		moved := s.positions[last]
		s.refs[i] = s.refs[last]
		s.positions[i] = moved
		s.index[moved] = i
	}
	s.refs = s.refs[:last]
	s.positions = s.positions[:last]
}

func (s *sparseTiles) len() int { return len(s.refs) }

func (s *sparseTiles) all(yield func(ecs.Entity) bool) {
	for _, e := range s.refs {
		if !yield(e) {
			return
		}
	}
}

func (s *sparseTiles) allMut(yield func(*ecs.Entity) bool) {
	defer s.compact()
	for i := range s.refs {
		if !yield(&s.refs[i]) {
			return
		}
	}
}

// compact removes slots that were cleared through allMut. Walking backwards
// means a swap only ever pulls in a slot that has already been checked.
func (s *sparseTiles) compact() {
	for i := len(s.refs) - 1; i >= 0; i-- {
		if s.refs[i] != ecs.NoEntity {
			continue
		}
		delete(s.index, s.positions[i])
		s.removeAt(i)
	}
}

func (s *sparseTiles) occupied(_ core.TilemapSize, yield func(core.TilePos, ecs.Entity) bool) {
	for i, e := range s.refs {
		if !yield(s.positions[i], e) {
			return
		}
	}
}

// check verifies the co-indexing invariant. It is used by tests.
func (s *sparseTiles) check() error {
	if len(s.index) != len(s.refs) || len(s.refs) != len(s.positions) {
		return fmt.Errorf("length mismatch: index=%d refs=%d positions=%d", len(s.index), len(s.refs), len(s.positions))
	}
	for pos, i := range s.index {
		if i < 0 || i >= len(s.positions) {
			return fmt.Errorf("index %d for %v out of range", i, pos)
		}
		if s.positions[i] != pos {
			return fmt.Errorf("positions[%d]=%v, want %v", i, s.positions[i], pos)
		}
		if s.refs[i] == ecs.NoEntity {
			return fmt.Errorf("empty ref stored for %v", pos)
		}
	}
	return nil
}
