package puffy

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// System is a function the App runs on a schedule. It reads and writes
// entity state through w and frame-wide state through res.
type System func(w donburi.World, res *Resources)

// Plugin groups systems and setup into a reusable unit.
type Plugin interface {
	Build(app *App)
}

// Resources is the frame-wide state shared by all systems.
type Resources struct {
	Time   *Time
	Input  Input
	Assets *Assets
	// Rand is the random source for gameplay. Replace it with App.SetRand
	// for deterministic runs.
	Rand *rand.Rand
	// ClearColor fills the screen before the world is drawn.
	ClearColor Color
}

// App owns the entity world, the system schedule and the frame resources.
// It implements ebiten.Game.
type App struct {
	world donburi.World
	res   *Resources
	keys  *KeyboardState

	startup []System
	update  []System
	post    []System
	started bool

	debug   bool
	showFPS bool
	fps     *fpsOverlay
	runner  *TestRunner
	quit    bool

	shots   []string
	shotDir string
}

// NewApp creates an App with an empty world. Startup and update systems are
// added with AddStartupSystems, AddSystems and AddPlugin.
func NewApp() *App {
	keys := NewKeyboardState()
	a := &App{
		world: donburi.NewWorld(),
		keys:  keys,
		res: &Resources{
			Time:       &Time{},
			Input:      keys,
			Assets:     NewAssets(nil),
			Rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
			ClearColor: Color{R: 0.169, G: 0.169, B: 0.169, A: 1},
		},
	}
	a.post = []System{updateCameras, updateFades}
	return a
}

// World returns the entity world.
func (a *App) World() donburi.World {
	return a.world
}

// Resources returns the frame resources.
func (a *App) Resources() *Resources {
	return a.res
}

// SetAssets replaces the asset cache.
func (a *App) SetAssets(assets *Assets) {
	a.res.Assets = assets
}

// SetRand replaces the gameplay random source.
func (a *App) SetRand(r *rand.Rand) {
	a.res.Rand = r
}

// AddStartupSystems appends systems that run once, in order, on the first
// tick before any update system.
func (a *App) AddStartupSystems(systems ...System) *App {
	for _, s := range systems {
		if s == nil {
			panic("puffy: cannot add nil system")
		}
	}
	a.startup = append(a.startup, systems...)
	return a
}

// AddSystems appends systems that run every tick, in order.
func (a *App) AddSystems(systems ...System) *App {
	for _, s := range systems {
		if s == nil {
			panic("puffy: cannot add nil system")
		}
	}
	a.update = append(a.update, systems...)
	return a
}

// AddPlugin lets p register its systems.
func (a *App) AddPlugin(p Plugin) *App {
	if p == nil {
		panic("puffy: cannot add nil plugin")
	}
	p.Build(a)
	return a
}

// Quit ends the game loop after the current tick.
func (a *App) Quit() {
	a.quit = true
}

// Step advances the App by one tick of dt seconds: startup systems on the
// first tick, then every update system, queued events, and the built-in
// camera and fade systems.
func (a *App) Step(dt float64) {
	var stats frameStats
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	if a.runner != nil {
		a.runner.step(a)
	}
	a.keys.refresh()
	a.res.Time.advance(dt)

	if !a.started {
		a.started = true
		for _, s := range a.startup {
			s(a.world, a.res)
		}
		if a.debug {
			stats.startupTime = time.Since(t0)
			t0 = time.Now()
		}
	}

	for _, s := range a.update {
		s(a.world, a.res)
	}
	if a.debug {
		stats.updateTime = time.Since(t0)
		t0 = time.Now()
	}

	events.ProcessAllEvents(a.world)
	for _, s := range a.post {
		s(a.world, a.res)
	}

	if a.debug {
		stats.postTime = time.Since(t0)
		stats.frame = a.res.Time.Frame
		stats.entityCount = a.world.Len()
		a.debugLog(stats)
	}
}

// Update implements ebiten.Game. The tick length is derived from the
// configured TPS.
func (a *App) Update() error {
	a.Step(1.0 / float64(ebiten.TPS()))
	if a.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.res.ClearColor.RGBA())
	drawWorld(screen, a.world, a.debug)
	if a.showFPS {
		if a.fps == nil {
			a.fps = newFPSOverlay()
		}
		a.fps.draw(screen, a.res.Time.Delta)
	}
	a.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The primary window follows the outside
// size so systems always see the current dimensions.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	resizeWindow(a.world, outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SetDebugMode enables or disables per-tick timing stats on stderr and
// sprite bounds outlines.
func (a *App) SetDebugMode(enabled bool) {
	a.debug = enabled
}

// SetShowFPS toggles the FPS/TPS overlay.
func (a *App) SetShowFPS(enabled bool) {
	a.showFPS = enabled
}
