package decimator

import (
	"github.com/yohamta/donburi"

	puffy "github.com/Gabriel-Spinola/Puffy-The-Stars-Killer"
)

// Plugin registers the scene: camera, player and enemies at startup, then
// player movement, player confinement, enemy movement, enemy direction
// update and enemy confinement every tick, in that order.
type Plugin struct {
	app *puffy.App
}

// Build implements puffy.Plugin.
func (p *Plugin) Build(app *puffy.App) {
	p.app = app
	app.AddStartupSystems(
		SpawnCamera,
		SpawnPlayer,
		SpawnEnemies,
		p.spawnScore,
	)
	app.AddSystems(
		PlayerMovement,
		ConfinePlayer,
		EnemyMovement,
		UpdateEnemyDirection,
		ConfineEnemies,
	)
}

// spawnScore creates the Score singleton and counts bounces into it.
func (p *Plugin) spawnScore(w donburi.World, _ *puffy.Resources) {
	w.Create(ScoreComponent)
	Bounces.Subscribe(w, p.onBounce)
}

func (p *Plugin) onBounce(w donburi.World, e BounceEvent) {
	if score := CurrentScore(w); score != nil {
		score.Bounces++
	}
	p.app.Debugf("bounce entity=%v axis=%v at (%.1f, %.1f)", e.Entity, e.Axis, e.Position.X, e.Position.Y)
}

// CurrentScore returns the Score singleton, or nil before startup.
func CurrentScore(w donburi.World) *Score {
	entry, ok := ScoreComponent.First(w)
	if !ok {
		return nil
	}
	return ScoreComponent.Get(entry)
}
