package tiles

import (
	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
)

// denseTiles keeps one slot per cell, indexed by core.PosToIndex.
type denseTiles struct {
	slots []ecs.Entity
	n     int
}

func newDenseTiles(count int) *denseTiles {
	return &denseTiles{slots: make([]ecs.Entity, count)}
}

func (d *denseTiles) get(idx int, _ core.TilePos) ecs.Entity { return d.slots[idx] }

func (d *denseTiles) set(idx int, _ core.TilePos, e ecs.Entity) {
	old := d.slots[idx]
	switch {
	case old == ecs.NoEntity && e != ecs.NoEntity:
		d.n++
	case old != ecs.NoEntity && e == ecs.NoEntity:
		d.n--
	}
	d.slots[idx] = e
}

func (d *denseTiles) remove(idx int, pos core.TilePos) { d.set(idx, pos, ecs.NoEntity) }

func (d *denseTiles) len() int { return d.n }

func (d *denseTiles) all(yield func(ecs.Entity) bool) {
	for _, e := range d.slots {
		if !yield(e) {
			return
		}
	}
}

func (d *denseTiles) allMut(yield func(*ecs.Entity) bool) {
	// Callers may write through the pointers, so the occupancy count is
	// rebuilt once the pass is over.
	defer d.recount()
	for i := range d.slots {
		if !yield(&d.slots[i]) {
			return
		}
	}
}

func (d *denseTiles) recount() {
	n := 0
	for _, e := range d.slots {
		if e != ecs.NoEntity {
			n++
		}
	}
	d.n = n
}

func (d *denseTiles) occupied(size core.TilemapSize, yield func(core.TilePos, ecs.Entity) bool) {
	for i, e := range d.slots {
		if e == ecs.NoEntity {
			continue
		}
		if !yield(core.IndexToPos(i, size), e) {
			return
		}
	}
}
