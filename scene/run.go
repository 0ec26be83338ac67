package scene

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures Run. Zero fields take the defaults noted below.
type RunConfig struct {
	Title  string // window title, default "prefab"
	Width  int    // logical screen width, default 640
	Height int    // logical screen height, default 480
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "prefab"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	return c
}

// Run opens a window and drives the scene's Update and Draw until the window
// closes or the update callback returns an error.
func Run(s *Scene, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: s, cfg: cfg})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	return g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
