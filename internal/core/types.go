package core

import "sort"

// Pattern selects which cells of a layer receive a tile.
type Pattern interface {
	Name() string
	Selects(pos TilePos) bool
}

// PatternParams carries the optional knobs a pattern factory may read.
type PatternParams struct {
	Modulus int
	Seed    int64
	Density float64
}

// PatternFactory constructs a Pattern from its parameters.
type PatternFactory func(p PatternParams) Pattern

var patterns = map[string]PatternFactory{}

// RegisterPattern adds a pattern factory under the provided name.
func RegisterPattern(name string, f PatternFactory) {
	if name == "" || f == nil {
		return
	}
	patterns[name] = f
}

// Patterns exposes the registry of available pattern factories.
func Patterns() map[string]PatternFactory {
	return patterns
}

// PatternNames lists the registered pattern names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
