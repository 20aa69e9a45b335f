package component

import (
	"time"

	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
)

// Facing directions, tile-grid order.
const (
	FaceDown = iota
	FaceUp
	FaceLeft
	FaceRight
)

// Position is a tile coordinate on a map.
type Position struct {
	MapID  int32
	X, Y   int32
	Facing int
}

// Intent is the movement a controller wants this frame, in tiles. Cleared
// by the movement system after it is applied or rejected.
type Intent struct {
	DX, DY int32
	Moved  bool // set by movement when the step was accepted
}

// Sprite selects the sheet and base cell used to draw an entity.
type Sprite struct {
	SheetID int32
	Cell    int32
}

// Animation advances a sprite through its walk cycle.
type Animation struct {
	Frame      int32
	FrameCount int32
	FrameTime  time.Duration
	Elapsed    time.Duration
}

// Camera marks the entity the viewport tracks and holds the resolved
// viewport origin. One per world in practice.
type Camera struct {
	X, Y         int32
	HalfW, HalfH int32
	Target       ecs.Entity
}

// PlayerTag marks the player-controlled entity.
type PlayerTag struct{}
