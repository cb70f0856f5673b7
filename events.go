package puffy

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Events published through donburi are queued and delivered to subscribers
// after the update systems of the tick that published them.

// LevelSpawnedEvent reports a level placed in the world by the LevelPlugin.
type LevelSpawnedEvent struct {
	// World is the LdtkWorld entity that owns the level.
	World      donburi.Entity
	Identifier string
	Iid        uuid.UUID
	// Entities is the number of entities created for the level.
	Entities int
	// Selected is false for neighbours spawned alongside the selection.
	Selected bool
}

// LevelSpawned is the event type for LevelSpawnedEvent.
var LevelSpawned = events.NewEventType[LevelSpawnedEvent]()
