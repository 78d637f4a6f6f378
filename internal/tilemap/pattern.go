package tilemap

import (
	"errors"
	"fmt"

	"ecs-tilemap/internal/core"
	pcore "ecs-tilemap/pkg/core"
)

// ErrUnknownPattern is returned when a layer names an unregistered pattern.
var ErrUnknownPattern = errors.New("unknown pattern")

type allPattern struct{}

func (allPattern) Name() string              { return "all" }
func (allPattern) Selects(core.TilePos) bool { return true }

// productMod selects cells where x*y is a multiple of the modulus.
type productMod struct{ m uint32 }

func (p productMod) Name() string { return fmt.Sprintf("product-mod(%d)", p.m) }
func (p productMod) Selects(pos core.TilePos) bool {
	return (pos.X*pos.Y)%p.m == 0
}

// sumMod selects cells where x+y is a multiple of the modulus.
type sumMod struct{ m uint32 }

func (p sumMod) Name() string { return fmt.Sprintf("sum-mod(%d)", p.m) }
func (p sumMod) Selects(pos core.TilePos) bool {
	return (pos.X+pos.Y)%p.m == 0
}

type checker struct{}

func (checker) Name() string { return "checker" }
func (checker) Selects(pos core.TilePos) bool {
	return (pos.X+pos.Y)%2 == 0
}

// random selects each cell independently with probability density. The
// choice is a pure function of seed and position.
type random struct {
	seed    uint32
	density float64
}

func (r random) Name() string { return fmt.Sprintf("random(%.2f)", r.density) }
func (r random) Selects(pos core.TilePos) bool {
	return pcore.Unit(pcore.Hash2(r.seed, pos.X, pos.Y)) < r.density
}

func modulus(p core.PatternParams) uint32 {
	if p.Modulus <= 0 {
		return 1
	}
	return uint32(p.Modulus)
}

// NewPattern looks up a registered pattern and builds it.
func NewPattern(name string, p core.PatternParams) (core.Pattern, error) {
	f, ok := core.Patterns()[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownPattern, name, core.PatternNames())
	}
	return f(p), nil
}

func init() {
	core.RegisterPattern("all", func(core.PatternParams) core.Pattern { return allPattern{} })
	core.RegisterPattern("product-mod", func(p core.PatternParams) core.Pattern { return productMod{m: modulus(p)} })
	core.RegisterPattern("sum-mod", func(p core.PatternParams) core.Pattern { return sumMod{m: modulus(p)} })
	core.RegisterPattern("checker", func(core.PatternParams) core.Pattern { return checker{} })
	core.RegisterPattern("random", func(p core.PatternParams) core.Pattern {
		d := p.Density
		if d <= 0 {
			d = 0.25
		}
		return random{seed: uint32(p.Seed), density: d}
	})
}
