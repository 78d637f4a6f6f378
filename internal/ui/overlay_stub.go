//go:build !ebiten

package ui

import "ecs-tilemap/internal/tilemap"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Toggle is a no-op in headless builds.
func (o *Overlay) Toggle() {}

// SetStatus is a no-op in headless builds.
func (o *Overlay) SetStatus(string) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update(*tilemap.Map, tilemap.Vec2) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
