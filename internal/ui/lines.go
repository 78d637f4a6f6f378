package ui

import (
	"fmt"
	"strings"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tilemap"
)

// ParameterLines flattens a snapshot into the text rows shown by the HUD:
// one header per group followed by indented "Label: value" rows.
func ParameterLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range snap.Groups {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", label, p.Value))
		}
	}
	return lines
}

// InspectLines describes the cell under the world point p on every layer,
// topmost first. It returns nil when p is outside the map.
func InspectLines(m *tilemap.Map, p tilemap.Vec2) []string {
	if m == nil || len(m.Layers) == 0 {
		return nil
	}
	// Layers share the grid but not the offset; pick against the base layer.
	pos, ok := m.Layers[0].PickTile(p)
	if !ok {
		return nil
	}
	lines := []string{"tile " + pos.String()}
	top, _ := m.TopmostAt(pos)
	for i := len(m.Layers) - 1; i >= 0; i-- {
		l := m.Layers[i]
		e := l.Storage.Get(pos)
		var b strings.Builder
		if l == top {
			b.WriteString("* ")
		} else {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s: %s", l.Name, e)
		if e != ecs.NoEntity {
			if bundle, ok := m.World.Tile(e); ok {
				fmt.Fprintf(&b, " tex=%d", bundle.Texture)
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
