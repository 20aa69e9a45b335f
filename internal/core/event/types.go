package event

import "github.com/fuddlesworth/pokesharp/internal/core/ecs"

// StepTaken fires when an entity's move was accepted by the movement system.
type StepTaken struct {
	Entity ecs.Entity
	MapID  int32
	X, Y   int32
}

// EncounterStarted fires when a step in tall grass rolled a wild encounter.
type EncounterStarted struct {
	Entity  ecs.Entity
	Species string
	Level   int
}
