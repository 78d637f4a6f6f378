package app

import (
	"strconv"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/tilemap"
)

// viewStats feeds the HUD: the map's storage statistics followed by a View
// group describing the last rendered frame.
type viewStats struct {
	m     *tilemap.Map
	drawn int
	zoom  float64
}

// Parameters implements core.ParameterProvider.
func (v *viewStats) Parameters() core.ParameterSnapshot {
	var snap core.ParameterSnapshot
	if v.m != nil {
		snap = v.m.Parameters()
	}
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "View",
		Params: []core.Parameter{
			{Key: "drawn", Label: "Drawn tiles", Type: core.ParamTypeInt, Value: strconv.Itoa(v.drawn)},
			{Key: "zoom", Label: "Zoom", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v.zoom, 'f', 2, 64)},
		},
	})
	return snap
}
