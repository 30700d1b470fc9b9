package audio

import "github.com/lixenwraith/gridpath/events"

// Cues is the set of sounds the board reacts with
type Cues interface {
	PlayError()
	PlayStep()
	PlayArrive()
}

// EventHandler routes board events to audio cues
// The router context is unused, so it fits any Router[T]
type EventHandler[T any] struct {
	cues Cues
}

// NewEventHandler creates a handler playing through cues
func NewEventHandler[T any](cues Cues) *EventHandler[T] {
	return &EventHandler[T]{cues: cues}
}

func (h *EventHandler[T]) HandleEvent(_ T, ev events.GameEvent) {
	switch ev.Type {
	case events.EventSearchFailed:
		h.cues.PlayError()
	case events.EventPathMarkerPlaced:
		h.cues.PlayStep()
	case events.EventRevealFinished:
		h.cues.PlayArrive()
	}
}

func (h *EventHandler[T]) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventSearchFailed,
		events.EventPathMarkerPlaced,
		events.EventRevealFinished,
	}
}
