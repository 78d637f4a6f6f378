package tiles

import (
	"iter"
	"slices"
	"strings"
	"testing"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	pcore "ecs-tilemap/pkg/core"
)

var bothModes = []StorageMode{DenseVec, SparseHashMap}

func pos(x, y uint32) core.TilePos { return core.TilePos{X: x, Y: y} }

func sparseBackend(t *testing.T, s *TileStorage) *sparseTiles {
	t.Helper()
	sp, ok := s.b.(*sparseTiles)
	if !ok {
		t.Fatalf("storage mode %v has backend %T, want *sparseTiles", s.Mode(), s.b)
	}
	return sp
}

func count[V any](seq iter.Seq[V]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

func TestEmptyAllocatesOnlyActiveBackend(t *testing.T) {
	size := core.TilemapSize{X: 16, Y: 8}

	dense := Empty(size, DenseVec)
	d, ok := dense.b.(*denseTiles)
	if !ok {
		t.Fatalf("dense storage backend is %T", dense.b)
	}
	if len(d.slots) != size.Count() {
		t.Fatalf("dense slots = %d, want %d", len(d.slots), size.Count())
	}

	sparse := Empty(size, SparseHashMap)
	sp := sparseBackend(t, sparse)
	want := size.Count() / SparseToDenseRatio
	if cap(sp.refs) != want || cap(sp.positions) != want {
		t.Fatalf("sparse capacity refs=%d positions=%d, want %d", cap(sp.refs), cap(sp.positions), want)
	}
	if sparse.Len() != 0 || dense.Len() != 0 {
		t.Fatalf("new storages must be empty, got dense=%d sparse=%d", dense.Len(), sparse.Len())
	}
}

func TestDefaultModeIsDense(t *testing.T) {
	var m StorageMode
	if m != DenseVec {
		t.Fatalf("zero StorageMode = %v, want dense", m)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	size := core.TilemapSize{X: 5, Y: 3}
	for _, mode := range bothModes {
		s := Empty(size, mode)
		for y := uint32(0); y < size.Y; y++ {
			for x := uint32(0); x < size.X; x++ {
				p := pos(x, y)
				want := ecs.Entity(1 + y*size.X + x)
				s.Set(p, want)
				if got := s.Get(p); got != want {
					t.Fatalf("%v: Get(%v) = %v, want %v", mode, p, got, want)
				}
				s.Set(p, ecs.NoEntity)
				if got := s.Get(p); got != ecs.NoEntity {
					t.Fatalf("%v: Get(%v) after clearing = %v", mode, p, got)
				}
				s.Set(p, want)
			}
		}
		if s.Len() != size.Count() {
			t.Fatalf("%v: Len = %d, want %d", mode, s.Len(), size.Count())
		}
	}
}

func TestSetOverwritesInPlace(t *testing.T) {
	s := Empty(core.TilemapSize{X: 4, Y: 4}, SparseHashMap)
	s.Set(pos(1, 2), 10)
	s.Set(pos(3, 3), 11)
	s.Set(pos(1, 2), 12)

	sp := sparseBackend(t, s)
	if len(sp.refs) != 2 {
		t.Fatalf("overwrite must not append, refs=%v", sp.refs)
	}
	if sp.index[pos(1, 2)] != 0 {
		t.Fatalf("overwrite moved index to %d", sp.index[pos(1, 2)])
	}
	if got := s.Get(pos(1, 2)); got != 12 {
		t.Fatalf("Get = %v, want 12", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	for _, mode := range bothModes {
		s := Empty(core.TilemapSize{X: 3, Y: 3}, mode)
		s.Set(pos(0, 0), 1)
		s.Set(pos(2, 1), 2)

		s.Remove(pos(2, 1))
		once := slices.Collect(s.All())
		s.Remove(pos(2, 1))
		twice := slices.Collect(s.All())

		if !slices.Equal(once, twice) {
			t.Fatalf("%v: second Remove changed contents %v -> %v", mode, once, twice)
		}
		if got := s.Get(pos(2, 1)); got != ecs.NoEntity {
			t.Fatalf("%v: Get after Remove = %v", mode, got)
		}
		if s.Len() != 1 {
			t.Fatalf("%v: Len = %d, want 1", mode, s.Len())
		}
		// Never set at all.
		s.Remove(pos(1, 1))
		if s.Len() != 1 {
			t.Fatalf("%v: removing an empty cell changed Len to %d", mode, s.Len())
		}
	}
}

func TestSparseScenario(t *testing.T) {
	s := Empty(core.TilemapSize{X: 4, Y: 4}, SparseHashMap)
	const e1, e2, e3 ecs.Entity = 101, 102, 103
	s.Set(pos(1, 1), e1)
	s.Set(pos(2, 2), e2)
	s.Set(pos(3, 3), e3)

	if got := s.Get(pos(1, 1)); got != e1 {
		t.Fatalf("Get(1,1) = %v, want %v", got, e1)
	}
	if got := s.Get(pos(0, 0)); got != ecs.NoEntity {
		t.Fatalf("Get(0,0) = %v, want none", got)
	}
	if n := count(s.All()); n != 3 {
		t.Fatalf("All yielded %d items, want 3", n)
	}

	s.Remove(pos(1, 1))

	if got := s.Get(pos(1, 1)); got != ecs.NoEntity {
		t.Fatalf("Get(1,1) after remove = %v", got)
	}
	sp := sparseBackend(t, s)
	if len(sp.index) != 2 || len(sp.refs) != 2 || len(sp.positions) != 2 {
		t.Fatalf("lengths index=%d refs=%d positions=%d, want 2", len(sp.index), len(sp.refs), len(sp.positions))
	}
	// The last element was swapped into the hole left by (1,1).
	if sp.refs[0] != e3 || sp.positions[0] != pos(3, 3) {
		t.Fatalf("slot 0 holds %v at %v, want %v at (3,3)", sp.refs[0], sp.positions[0], e3)
	}
	if got := s.Get(pos(3, 3)); got != e3 {
		t.Fatalf("Get(3,3) = %v, want %v", got, e3)
	}
	if got := s.Get(pos(2, 2)); got != e2 {
		t.Fatalf("Get(2,2) = %v, want %v", got, e2)
	}
	if err := sp.check(); err != nil {
		t.Fatal(err)
	}
}

func TestSparseRemoveLastAndOnly(t *testing.T) {
	s := Empty(core.TilemapSize{X: 4, Y: 4}, SparseHashMap)
	s.Set(pos(0, 1), 1)
	s.Set(pos(0, 2), 2)

	// Removing the tail needs no re-pointing.
	s.Remove(pos(0, 2))
	sp := sparseBackend(t, s)
	if err := sp.check(); err != nil {
		t.Fatal(err)
	}

	s.Remove(pos(0, 1))
	if len(sp.refs) != 0 || len(sp.positions) != 0 || len(sp.index) != 0 {
		t.Fatalf("removing the only element left refs=%v positions=%v", sp.refs, sp.positions)
	}
	s.Set(pos(3, 3), 7)
	if got := s.Get(pos(3, 3)); got != 7 {
		t.Fatalf("reuse after clear: Get = %v", got)
	}
}

func TestDenseEmptyIteration(t *testing.T) {
	s := Empty(core.TilemapSize{X: 2, Y: 2}, DenseVec)
	got := slices.Collect(s.All())
	want := []ecs.Entity{ecs.NoEntity, ecs.NoEntity, ecs.NoEntity, ecs.NoEntity}
	if !slices.Equal(got, want) {
		t.Fatalf("All = %v, want %v", got, want)
	}
}

func TestIterationCoverage(t *testing.T) {
	size := core.TilemapSize{X: 6, Y: 5}
	dense := Empty(size, DenseVec)
	sparse := Empty(size, SparseHashMap)
	for _, s := range []*TileStorage{dense, sparse} {
		s.Set(pos(0, 0), 1)
		s.Set(pos(5, 4), 2)
		s.Set(pos(2, 3), 3)
		s.Remove(pos(0, 0))
	}
	if n := count(dense.All()); n != size.Count() {
		t.Fatalf("dense All yielded %d, want %d", n, size.Count())
	}
	if n := count(sparse.All()); n != 2 {
		t.Fatalf("sparse All yielded %d, want 2", n)
	}
}

func TestIterationIsRestartable(t *testing.T) {
	for _, mode := range bothModes {
		s := Empty(core.TilemapSize{X: 3, Y: 2}, mode)
		s.Set(pos(1, 1), 5)
		s.Set(pos(2, 0), 6)
		seq := s.All()
		first := slices.Collect(seq)
		second := slices.Collect(seq)
		if !slices.Equal(first, second) {
			t.Fatalf("%v: passes differ: %v vs %v", mode, first, second)
		}

		n := 0
		for range seq {
			n++
			break
		}
		if n != 1 {
			t.Fatalf("%v: early break yielded %d", mode, n)
		}
	}
}

func TestAllMutWritesThrough(t *testing.T) {
	for _, mode := range bothModes {
		s := Empty(core.TilemapSize{X: 3, Y: 3}, mode)
		s.Set(pos(0, 0), 1)
		s.Set(pos(1, 1), 2)
		s.Set(pos(2, 2), 3)

		for slot := range s.AllMut() {
			if *slot != ecs.NoEntity {
				*slot += 10
			}
		}
		for p, want := range map[core.TilePos]ecs.Entity{pos(0, 0): 11, pos(1, 1): 12, pos(2, 2): 13} {
			if got := s.Get(p); got != want {
				t.Fatalf("%v: Get(%v) = %v, want %v", mode, p, got, want)
			}
		}
	}
}

func TestAllMutClearingKeepsArenaConsistent(t *testing.T) {
	for _, mode := range bothModes {
		s := Empty(core.TilemapSize{X: 4, Y: 4}, mode)
		for i := uint32(0); i < 8; i++ {
			s.Set(pos(i%4, i/4), ecs.Entity(i+1))
		}
		for slot := range s.AllMut() {
			if *slot%2 == 0 {
				*slot = ecs.NoEntity
			}
		}
		if s.Len() != 4 {
			t.Fatalf("%v: Len after clearing = %d, want 4", mode, s.Len())
		}
		for i := uint32(0); i < 8; i++ {
			want := ecs.Entity(i + 1)
			if want%2 == 0 {
				want = ecs.NoEntity
			}
			if got := s.Get(pos(i%4, i/4)); got != want {
				t.Fatalf("%v: Get(%d,%d) = %v, want %v", mode, i%4, i/4, got, want)
			}
		}
		if mode == SparseHashMap {
			if err := sparseBackend(t, s).check(); err != nil {
				t.Fatal(err)
			}
			if n := count(s.All()); n != 4 {
				t.Fatalf("sparse All yielded %d after clearing, want 4", n)
			}
		}
	}
}

func TestOccupiedPairsPositions(t *testing.T) {
	for _, mode := range bothModes {
		s := Empty(core.TilemapSize{X: 5, Y: 5}, mode)
		want := map[core.TilePos]ecs.Entity{pos(0, 4): 1, pos(4, 0): 2, pos(2, 2): 3}
		for p, e := range want {
			s.Set(p, e)
		}
		got := map[core.TilePos]ecs.Entity{}
		for p, e := range s.Occupied() {
			got[p] = e
		}
		if len(got) != len(want) {
			t.Fatalf("%v: Occupied yielded %v, want %v", mode, got, want)
		}
		for p, e := range want {
			if got[p] != e {
				t.Fatalf("%v: Occupied[%v] = %v, want %v", mode, p, got[p], e)
			}
		}
	}
}

func TestCrossModeEquivalence(t *testing.T) {
	size := core.TilemapSize{X: 7, Y: 6}
	dense := Empty(size, DenseVec)
	sparse := Empty(size, SparseHashMap)
	sp := sparseBackend(t, sparse)
	rng := pcore.NewRNG(42)

	for step := 0; step < 2000; step++ {
		p := pos(rng.Uint32N(size.X), rng.Uint32N(size.Y))
		switch rng.IntN(3) {
		case 0:
			e := ecs.Entity(rng.IntN(50) + 1)
			dense.Set(p, e)
			sparse.Set(p, e)
		case 1:
			dense.Set(p, ecs.NoEntity)
			sparse.Set(p, ecs.NoEntity)
		default:
			dense.Remove(p)
			sparse.Remove(p)
		}

		if err := sp.check(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if dense.Len() != sparse.Len() {
			t.Fatalf("step %d: Len dense=%d sparse=%d", step, dense.Len(), sparse.Len())
		}
		for y := uint32(0); y < size.Y; y++ {
			for x := uint32(0); x < size.X; x++ {
				q := pos(x, y)
				if d, s := dense.Get(q), sparse.Get(q); d != s {
					t.Fatalf("step %d: Get(%v) dense=%v sparse=%v", step, q, d, s)
				}
			}
		}
	}
}

func TestOutOfRangePanics(t *testing.T) {
	ops := []struct {
		name string
		call func(s *TileStorage, p core.TilePos)
	}{
		{"Get", func(s *TileStorage, p core.TilePos) { s.Get(p) }},
		{"Set", func(s *TileStorage, p core.TilePos) { s.Set(p, ecs.Entity(7)) }},
		{"Set(NoEntity)", func(s *TileStorage, p core.TilePos) { s.Set(p, ecs.NoEntity) }},
		{"Remove", func(s *TileStorage, p core.TilePos) { s.Remove(p) }},
	}
	for _, mode := range bothModes {
		s := Empty(core.TilemapSize{X: 2, Y: 3}, mode)
		s.Set(pos(1, 2), ecs.Entity(3))
		for _, op := range ops {
			for _, p := range []core.TilePos{pos(2, 0), pos(0, 3), pos(9, 9)} {
				func() {
					defer func() {
						r := recover()
						if r == nil {
							t.Fatalf("%v: %s(%v) did not panic", mode, op.name, p)
						}
						msg, _ := r.(string)
						if !strings.Contains(msg, "outside map size 2x3") {
							t.Fatalf("%v: %s: unexpected panic %v", mode, op.name, r)
						}
					}()
					op.call(s, p)
				}()
			}
		}
		if s.Len() != 1 || s.Get(pos(1, 2)) != ecs.Entity(3) {
			t.Fatalf("%v: rejected calls changed the storage", mode)
		}
		if s.Contains(pos(2, 0)) || !s.Contains(pos(1, 2)) {
			t.Fatalf("%v: Contains disagrees with size", mode)
		}
	}
}

func TestParseStorageMode(t *testing.T) {
	cases := []struct {
		in      string
		want    StorageMode
		wantErr bool
	}{
		{in: "dense", want: DenseVec},
		{in: "", want: DenseVec},
		{in: "Sparse", want: SparseHashMap},
		{in: " sparsehashmap ", want: SparseHashMap},
		{in: "octree", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseStorageMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseStorageMode(%q) err = %v", tc.in, err)
		}
		if err == nil && got != tc.want {
			t.Fatalf("ParseStorageMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if err == nil && tc.in != "" {
			if back, _ := ParseStorageMode(got.String()); back != got {
				t.Fatalf("String/Parse mismatch for %v", got)
			}
		}
	}
}
