// Command layer-bench compares dense and sparse tile storage on single-layer
// maps without opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tilemap"
	"ecs-tilemap/internal/tiles"
	pcore "ecs-tilemap/pkg/core"
)

type scenario struct {
	pattern string
	modulus int
	density float64
	mode    tiles.StorageMode
}

func (s scenario) String() string {
	switch {
	case s.modulus > 0:
		return fmt.Sprintf("%s(%d)/%s", s.pattern, s.modulus, s.mode)
	case s.density > 0:
		return fmt.Sprintf("%s(%.2f)/%s", s.pattern, s.density, s.mode)
	default:
		return fmt.Sprintf("%s/%s", s.pattern, s.mode)
	}
}

type scenarioResult struct {
	scenario scenario
	tiles    int
	bytes    int
	fill     time.Duration
	churn    time.Duration
	scan     time.Duration
	err      error
}

func main() {
	width := flag.Int("w", 384, "map width in tiles")
	height := flag.Int("h", 384, "map height in tiles")
	ops := flag.Int("ops", 100000, "random place/despawn operations per scenario")
	place := flag.Float64("place", 0.5, "probability that a churn operation places rather than despawns a tile")
	seed := flag.Int64("seed", 1337, "seed for the churn phase")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	save := flag.String("save", "", "save the default layout under this snapshot name")
	load := flag.String("load", "", "load the named snapshot and print its statistics")
	flag.Parse()

	if *save != "" || *load != "" {
		if err := runSnapshot(*save, *load, uint32(*width), uint32(*height)); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		return
	}

	size := core.TilemapSize{X: uint32(*width), Y: uint32(*height)}
	sets := defaultScenarios()
	fmt.Printf("Benchmarking %d scenarios on %v (%d workers, %d ops)\n", len(sets), size, *workers, *ops)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, size, *ops, *place, *seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("[bench] %s: %v", res.scenario, res.err)
			continue
		}
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].scenario.String() < all[j].scenario.String() })

	fmt.Printf("\n%-28s %9s %12s %10s %10s %10s\n", "scenario", "tiles", "bytes", "fill", "churn", "scan")
	for _, res := range all {
		fmt.Printf("%-28s %9d %12d %10s %10s %10s\n", res.scenario, res.tiles, res.bytes,
			res.fill.Round(time.Microsecond), res.churn.Round(time.Microsecond), res.scan.Round(time.Microsecond))
	}
	fmt.Printf("\nElapsed %s\n", time.Since(start).Round(time.Millisecond))
}

func defaultScenarios() []scenario {
	shapes := []scenario{
		{pattern: "all"},
		{pattern: "product-mod", modulus: 3},
		{pattern: "product-mod", modulus: 7},
		{pattern: "sum-mod", modulus: 13},
		{pattern: "sum-mod", modulus: 23},
		{pattern: "random", density: 0.01},
	}
	var sets []scenario
	for _, mode := range []tiles.StorageMode{tiles.DenseVec, tiles.SparseHashMap} {
		for _, s := range shapes {
			s.mode = mode
			sets = append(sets, s)
		}
	}
	return sets
}

// runScenario builds a one-layer map, applies ops random edits (a place with
// probability place, otherwise a despawn) and times a full scan.
func runScenario(sc scenario, size core.TilemapSize, ops int, place float64, seed int64) scenarioResult {
	res := scenarioResult{scenario: sc}
	layout := tilemap.LayoutConfig{
		Size:     tilemap.SizeConfig{X: size.X, Y: size.Y},
		TileSize: tilemap.TileSizeConfig{X: 64, Y: 32},
		MapType:  tilemap.IsometricStaggered.String(),
		Seed:     seed,
		Layers: []tilemap.LayerConfig{{
			Name:    sc.String(),
			Mode:    sc.mode.String(),
			Pattern: sc.pattern,
			Modulus: sc.modulus,
			Density: sc.density,
		}},
	}

	start := time.Now()
	m, err := tilemap.Build(layout)
	if err != nil {
		res.err = err
		return res
	}
	res.fill = time.Since(start)
	l := m.Layers[0]

	rng := pcore.NewRNG(seed)
	start = time.Now()
	for i := 0; i < ops; i++ {
		pos := core.TilePos{X: rng.Uint32N(size.X), Y: rng.Uint32N(size.Y)}
		if rng.Chance(place) {
			tilemap.PlaceTile(m.World, l, pos, l.Texture)
		} else {
			tilemap.DespawnTile(m.World, l, pos)
		}
	}
	res.churn = time.Since(start)

	start = time.Now()
	// Dense scans include empty slots; only occupied ones are counted.
	n := 0
	for e := range l.Storage.All() {
		if e != ecs.NoEntity {
			n++
		}
	}
	res.scan = time.Since(start)
	if n != l.Storage.Len() {
		res.err = fmt.Errorf("scan found %d tiles, storage reports %d", n, l.Storage.Len())
		return res
	}
	res.tiles = n
	res.bytes = tilemap.EstimateBytes(l.Storage)
	return res
}

func runSnapshot(save, load string, w, h uint32) error {
	store, err := tilemap.OpenStore("ecs-tilemap")
	if err != nil {
		return err
	}
	if save != "" {
		layout := tilemap.DefaultLayout()
		layout.Size = tilemap.SizeConfig{X: w, Y: h}
		m, err := tilemap.Build(layout)
		if err != nil {
			return err
		}
		if err := store.Save(save, m); err != nil {
			return err
		}
	}
	if load != "" {
		m, err := store.Load(load)
		if err != nil {
			return err
		}
		for _, g := range m.Parameters().Groups {
			fmt.Println(g.Name)
			for _, p := range g.Params {
				fmt.Printf("  %-12s %s\n", p.Label, p.Value)
			}
		}
	}
	return nil
}
