//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/render"
	"ecs-tilemap/internal/tilemap"
	"ecs-tilemap/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth     = 240
	minimapScale = 0.5
)

// Game adapts a tilemap to the ebiten.Game interface.
type Game struct {
	m       *tilemap.Map
	store   *tilemap.Store
	cfg     *Config
	camera  *CameraController
	clock   *core.FixedStep
	painter *render.TilePainter
	minimap *render.MinimapPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	palette []color.RGBA
	stats   viewStats

	showMinimap bool
}

// New constructs a Game for the provided map. store may be nil, in which
// case saving and loading report an error in the status line.
func New(m *tilemap.Map, store *tilemap.Store, cfg *Config) *Game {
	g := &Game{
		store:       store,
		cfg:         cfg,
		camera:      NewCameraController(cfg.WindowW, cfg.WindowH, cfg.Zoom),
		clock:       core.NewFixedStep(cfg.TPS),
		palette:     render.DefaultPalette,
		hud:         ui.NewHUD(nil, hudWidth),
		overlay:     ui.NewOverlay(),
		showMinimap: true,
	}
	g.painter = render.NewTilePainter(g.palette)
	g.hud.SetSource(&g.stats)
	g.setMap(m)
	return g
}

func (g *Game) setMap(m *tilemap.Map) {
	g.m = m
	g.minimap = render.NewMinimapPainter(m.Size)
	g.stats.m = m
	// Loading can stall a frame; do not turn that into a camera jump.
	g.clock.Reset()
}

// Update handles per-frame input and moves the camera.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.overlay.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.showMinimap = !g.showMinimap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.load()
	}

	in := CameraInput{
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:    ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		ZoomIn:  ebiten.IsKeyPressed(ebiten.KeyZ),
		ZoomOut: ebiten.IsKeyPressed(ebiten.KeyX),
	}
	g.camera.Apply(in, g.clock.Ticks())

	mx, my := ebiten.CursorPosition()
	g.overlay.Update(g.m, g.camera.Camera.WorldPoint(float64(mx), float64(my)))
	g.hud.Update()
	return nil
}

func (g *Game) save() {
	if g.store == nil {
		g.overlay.SetStatus("save failed: " + tilemap.ErrNoStore.Error())
		return
	}
	if err := g.store.Save(g.cfg.Snapshot, g.m); err != nil {
		log.Printf("[tilemap] %v", err)
		g.overlay.SetStatus("save failed: " + err.Error())
		return
	}
	g.overlay.SetStatus(fmt.Sprintf("saved %q", g.cfg.Snapshot))
}

func (g *Game) load() {
	if g.store == nil {
		g.overlay.SetStatus("load failed: " + tilemap.ErrNoStore.Error())
		return
	}
	m, err := g.store.Load(g.cfg.Snapshot)
	if err != nil {
		if !errors.Is(err, tilemap.ErrSnapshotNotFound) {
			log.Printf("[tilemap] %v", err)
		}
		g.overlay.SetStatus("load failed: " + err.Error())
		return
	}
	g.setMap(m)
	g.overlay.SetStatus(fmt.Sprintf("loaded %q", g.cfg.Snapshot))
}

// Draw renders the visible tiles, the minimap and the panels.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})
	g.painter.Draw(screen, g.m, g.camera.Camera)
	g.stats.drawn = g.painter.Drawn()
	g.stats.zoom = g.camera.Camera.Zoom
	if g.showMinimap {
		h := float64(g.m.Size.Y) * minimapScale
		g.minimap.Blit(screen, g.m, g.palette, 4, float64(screen.Bounds().Dy())-h-24, minimapScale)
	}
	g.hud.Draw(screen)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.WindowW, g.cfg.WindowH
}
