package puffy

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window created by Run.
// It can be read from a TOML file with LoadRunConfig.
type RunConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Resizable lets the user resize the window; systems see the new size
	// through the primary Window on the next tick.
	Resizable bool `toml:"resizable"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `toml:"show_fps"`
	// Debug prints per-tick timing stats to stderr.
	Debug bool `toml:"debug"`
}

// Run spawns the primary window, opens it and runs app until the window is
// closed or app.Quit is called.
func Run(app *App, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	SpawnWindow(app.world, cfg.Title, float64(cfg.Width), float64(cfg.Height))
	app.keys.live = true
	app.SetShowFPS(cfg.ShowFPS)
	app.SetDebugMode(cfg.Debug)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(app)
}
