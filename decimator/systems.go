package decimator

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	puffy "github.com/Gabriel-Spinola/Puffy-The-Stars-Killer"
)

var enemyQuery = donburi.NewQuery(filter.Contains(EnemyComponent, puffy.TransformComponent))

// playerHalfExtent bounds the player and every enemy alike; enemies do not
// use their own sprite size.
var playerHalfExtent = PlayerSpriteSize / 2

// SpawnCamera centers a camera on the window so world coordinates equal
// window coordinates.
func SpawnCamera(w donburi.World, _ *puffy.Resources) {
	win := puffy.PrimaryWindow(w)
	puffy.SpawnCamera(w, win.Width/2, win.Height/2)
}

// SpawnPlayer creates the player at the window center.
func SpawnPlayer(w donburi.World, res *puffy.Resources) {
	win := puffy.PrimaryWindow(w)
	img := res.Assets.Image(PlayerSpritePath)
	entry := puffy.Spawn(w, puffy.Vec2{X: win.Width / 2, Y: win.Height / 2}, img,
		PlayerComponent, puffy.FadeComponent)
	puffy.TransformComponent.Get(entry).Z = 1
	puffy.FadeIn(entry, fadeInSeconds)
}

// SpawnEnemies creates EnemyCount enemies at uniformly random window
// positions, each heading along a normalized random direction.
func SpawnEnemies(w donburi.World, res *puffy.Resources) {
	win := puffy.PrimaryWindow(w)
	img := res.Assets.Image(EnemySpritePath)
	for range EnemyCount {
		pos := puffy.Vec2{
			X: res.Rand.Float64() * win.Width,
			Y: res.Rand.Float64() * win.Height,
		}
		dir := puffy.Vec2{X: res.Rand.Float64(), Y: res.Rand.Float64()}.Normalize()
		entry := puffy.Spawn(w, pos, img, EnemyComponent, puffy.FadeComponent)
		EnemyComponent.SetValue(entry, Enemy{Direction: dir})
		puffy.FadeIn(entry, fadeInSeconds)
	}
}

// PlayerMovement moves the player along the held direction keys. Without a
// player it does nothing.
func PlayerMovement(w donburi.World, res *puffy.Resources) {
	entry, ok := PlayerComponent.First(w)
	if !ok {
		return
	}
	dir := DirectionFromInput(res.Input)
	tr := puffy.TransformComponent.Get(entry)
	tr.Position = tr.Position.Add(dir.Scale(PlayerSpeed * res.Time.Delta))
}

// ConfinePlayer keeps the player inside the window.
func ConfinePlayer(w donburi.World, _ *puffy.Resources) {
	win := puffy.PrimaryWindow(w)
	entry, ok := PlayerComponent.First(w)
	if !ok {
		return
	}
	tr := puffy.TransformComponent.Get(entry)
	tr.Position = Confine(tr.Position, win, playerHalfExtent)
}

// EnemyMovement advances every enemy along its direction.
func EnemyMovement(w donburi.World, res *puffy.Resources) {
	step := EnemySpeed * res.Time.Delta
	enemyQuery.Each(w, func(entry *donburi.Entry) {
		tr := puffy.TransformComponent.Get(entry)
		tr.Position = tr.Position.Add(EnemyComponent.Get(entry).Direction.Scale(step))
	})
}

// UpdateEnemyDirection reflects enemies that left the window and publishes
// a BounceEvent per flipped axis. Enemies are bounded by the player's half
// extent, not their own.
func UpdateEnemyDirection(w donburi.World, _ *puffy.Resources) {
	win := puffy.PrimaryWindow(w)
	enemyQuery.Each(w, func(entry *donburi.Entry) {
		pos := puffy.TransformComponent.Get(entry).Position
		e := EnemyComponent.Get(entry)
		var flipX, flipY bool
		e.Direction, flipX, flipY = Reflect(pos, e.Direction, win, playerHalfExtent)
		if flipX {
			Bounces.Publish(w, BounceEvent{Entity: entry.Entity(), Axis: AxisX, Position: pos})
		}
		if flipY {
			Bounces.Publish(w, BounceEvent{Entity: entry.Entity(), Axis: AxisY, Position: pos})
		}
	})
}

// ConfineEnemies keeps enemies inside the window. It runs after
// UpdateEnemyDirection so a crossing is reflected before it is clamped away.
func ConfineEnemies(w donburi.World, _ *puffy.Resources) {
	win := puffy.PrimaryWindow(w)
	enemyQuery.Each(w, func(entry *donburi.Entry) {
		tr := puffy.TransformComponent.Get(entry)
		tr.Position = Confine(tr.Position, win, playerHalfExtent)
	})
}
