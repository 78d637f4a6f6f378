package ecs

import (
	"strconv"
	"sync/atomic"

	"ecs-tilemap/internal/core"
)

// Entity is an opaque handle to an object owned by a World.
type Entity uint64

// NoEntity is the zero handle. It never refers to a live entity and marks an
// empty tile slot.
const NoEntity Entity = 0

var nextEntity uint64

// newEntity hands out process-wide unique handles starting at 1.
func newEntity() Entity {
	return Entity(atomic.AddUint64(&nextEntity, 1))
}

// String formats the handle for logs.
func (e Entity) String() string {
	if e == NoEntity {
		return "none"
	}
	return "e" + strconv.FormatUint(uint64(e), 10)
}

// TileBundle is the component set carried by every tile entity.
type TileBundle struct {
	Position core.TilePos
	Tilemap  Entity
	Texture  int
	Visible  bool
}
