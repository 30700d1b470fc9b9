package constants

import "time"

// Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// RevealInterval is the default period between two path marker placements
	RevealInterval = 50 * time.Millisecond

	// MaxFrameDelta caps one frame's measured delta after a stall
	MaxFrameDelta = 250 * time.Millisecond

	// CommandQueueSize buffers commands submitted to a running driver
	CommandQueueSize = 64
)

// Event Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Board Defaults
const (
	// DefaultGridSize is the side length of the square board, border ring included
	DefaultGridSize = 36

	// MinGridSize leaves a single passable cell inside the border
	MinGridSize = 3
)
