package ecs

// World owns entity lifetimes and the tile components attached to them.
// It is not safe for concurrent use.
type World struct {
	alive    map[Entity]struct{}
	tiles    map[Entity]TileBundle
	children map[Entity][]Entity
	parent   map[Entity]Entity
	// slot is the position of each child in its parent's children slice.
	slot map[Entity]int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		alive:    make(map[Entity]struct{}),
		tiles:    make(map[Entity]TileBundle),
		children: make(map[Entity][]Entity),
		parent:   make(map[Entity]Entity),
		slot:     make(map[Entity]int),
	}
}

// Spawn creates a new entity without components.
func (w *World) Spawn() Entity {
	e := newEntity()
	w.alive[e] = struct{}{}
	return e
}

// SpawnTile creates an entity carrying the given tile bundle.
func (w *World) SpawnTile(b TileBundle) Entity {
	e := w.Spawn()
	w.tiles[e] = b
	return e
}

// Alive reports whether e was spawned by this world and not yet despawned.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// Tile returns the tile bundle attached to e.
func (w *World) Tile(e Entity) (TileBundle, bool) {
	b, ok := w.tiles[e]
	return b, ok
}

// SetTile replaces the tile bundle attached to e. Dead entities are ignored.
func (w *World) SetTile(e Entity, b TileBundle) {
	if !w.Alive(e) {
		return
	}
	w.tiles[e] = b
}

// AddChild links child under parent, detaching it from any previous parent.
func (w *World) AddChild(parent, child Entity) {
	if !w.Alive(parent) || !w.Alive(child) {
		return
	}
	if old, ok := w.parent[child]; ok {
		w.detach(old, child)
	}
	w.parent[child] = parent
	w.slot[child] = len(w.children[parent])
	w.children[parent] = append(w.children[parent], child)
}

// Children returns the direct children of parent.
func (w *World) Children(parent Entity) []Entity {
	return w.children[parent]
}

// Despawn removes e and, recursively, its children.
func (w *World) Despawn(e Entity) {
	if !w.Alive(e) {
		return
	}
	for _, c := range w.children[e] {
		delete(w.parent, c)
		delete(w.slot, c)
		w.Despawn(c)
	}
	if p, ok := w.parent[e]; ok {
		w.detach(p, e)
	}
	delete(w.children, e)
	delete(w.tiles, e)
	delete(w.alive, e)
}

// detach swap-removes child from parent's children in O(1).
func (w *World) detach(parent, child Entity) {
	i, ok := w.slot[child]
	if !ok {
		return
	}
	kids := w.children[parent]
	last := len(kids) - 1
	if i != last {
		moved := kids[last]
		kids[i] = moved
		w.slot[moved] = i
	}
	w.children[parent] = kids[:last]
	delete(w.slot, child)
	delete(w.parent, child)
}
