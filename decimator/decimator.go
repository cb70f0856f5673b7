// Package decimator is the top-down prototype scene: one keyboard-driven
// player and a handful of enemies that bounce around inside the window.
//
// Positions are window coordinates (origin top-left, Y down). Every moving
// entity is confined to the window inset by half its sprite size after it
// moves.
package decimator

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	puffy "github.com/Gabriel-Spinola/Puffy-The-Stars-Killer"
)

const (
	PlayerSpeed      = 500.0
	PlayerSpriteSize = 32.0
	EnemyCount       = 6
	EnemySpeed       = 200.0
	EnemySpriteSize  = 32.0

	PlayerSpritePath = "sprites/PuffyTheStarsKillerPlaceholder.png"
	EnemySpritePath  = "sprites/inimigi.png"

	// fadeInSeconds is how long a freshly spawned sprite takes to appear.
	fadeInSeconds = 0.4
)

// Enemy is a wandering enemy. Direction is a unit vector, sign-flipped per
// axis when the enemy leaves the window.
type Enemy struct {
	Direction puffy.Vec2
}

// Score counts wall bounces. One Score entity exists once the plugin's
// startup systems ran.
type Score struct {
	Bounces int
}

// Axis names the component of a vector.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// BounceEvent is published when an enemy's direction is reflected on one
// axis.
type BounceEvent struct {
	Entity   donburi.Entity
	Axis     Axis
	Position puffy.Vec2
}

var (
	PlayerComponent = donburi.NewTag()
	EnemyComponent  = donburi.NewComponentType[Enemy]()
	ScoreComponent  = donburi.NewComponentType[Score]()

	Bounces = events.NewEventType[BounceEvent]()
)
