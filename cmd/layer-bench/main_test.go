package main

import (
	"testing"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/tiles"
)

func TestDefaultScenariosCoverBothModes(t *testing.T) {
	sets := defaultScenarios()
	modes := map[tiles.StorageMode]int{}
	for _, s := range sets {
		modes[s.mode]++
	}
	if modes[tiles.DenseVec] == 0 || modes[tiles.DenseVec] != modes[tiles.SparseHashMap] {
		t.Fatalf("unbalanced scenarios: %v", modes)
	}
}

func TestRunScenarioModesAgree(t *testing.T) {
	size := core.TilemapSize{X: 24, Y: 16}
	for _, pattern := range []scenario{
		{pattern: "all"},
		{pattern: "sum-mod", modulus: 5},
		{pattern: "random", density: 0.1},
	} {
		dense, sparse := pattern, pattern
		dense.mode, sparse.mode = tiles.DenseVec, tiles.SparseHashMap
		a := runScenario(dense, size, 500, 0.5, 7)
		b := runScenario(sparse, size, 500, 0.5, 7)
		if a.err != nil || b.err != nil {
			t.Fatalf("%s: errors %v / %v", pattern.pattern, a.err, b.err)
		}
		if a.tiles != b.tiles {
			t.Fatalf("%s: dense has %d tiles, sparse %d", pattern.pattern, a.tiles, b.tiles)
		}
		if a.bytes != size.Count()*8 {
			t.Fatalf("dense bytes = %d", a.bytes)
		}
	}
}

func TestRunScenarioUnknownPattern(t *testing.T) {
	res := runScenario(scenario{pattern: "nope"}, core.TilemapSize{X: 2, Y: 2}, 0, 0.5, 1)
	if res.err == nil {
		t.Fatal("expected error for unknown pattern")
	}
}

func TestRunScenarioDenseChurnReportsOccupiedTiles(t *testing.T) {
	size := core.TilemapSize{X: 8, Y: 8}
	for _, pattern := range []string{"all", "checker"} {
		sc := scenario{pattern: pattern, mode: tiles.DenseVec}
		res := runScenario(sc, size, 50, 0.5, 1)
		if res.err != nil {
			t.Fatalf("%s: %v", pattern, res.err)
		}
		if res.tiles == 0 || res.tiles > size.Count() {
			t.Fatalf("%s: tiles = %d", pattern, res.tiles)
		}
	}

	// Despawn-only churn must still agree with Len after emptying cells.
	res := runScenario(scenario{pattern: "all", mode: tiles.DenseVec}, size, 200, 0, 3)
	if res.err != nil {
		t.Fatalf("despawn-only: %v", res.err)
	}
	if res.tiles >= size.Count() {
		t.Fatalf("despawn-only left %d of %d tiles", res.tiles, size.Count())
	}
}
