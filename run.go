package transform2

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Debug enables Scene debug mode and sync-pass logging.
	Debug bool
	// ShowStats enables the Scene stats overlay.
	ShowStats bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	w, h  int
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(_, _ int) (int, int) { return g.w, g.h }

// Run installs the sync passes on scene, opens a window and runs the game
// loop until the window closes or an update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	scene.SetDebugMode(cfg.Debug)
	scene.ShowStats = cfg.ShowStats
	Plugin{Debug: cfg.Debug}.Build(scene)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene, w: cfg.Width, h: cfg.Height})
}
