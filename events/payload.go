package events

import (
	"time"

	"github.com/lixenwraith/gridpath/core"
)

// GameEvent represents a single board event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Seq       uint64 // Emission order within a session
	Timestamp time.Time
}

// CellPayload carries the cell an event refers to
type CellPayload struct {
	Cell core.Cell `json:"cell"`
}

// FailureReason discriminates why a search produced no path
type FailureReason uint8

const (
	FailureUnreachable FailureReason = iota
	FailureNoStart
	FailureNoGoal
)

func (r FailureReason) String() string {
	switch r {
	case FailureNoStart:
		return "start unset"
	case FailureNoGoal:
		return "goal unset"
	default:
		return "goal unreachable"
	}
}

// MarshalText encodes the reason by name
func (r FailureReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// SearchFailedPayload describes a failed search
type SearchFailedPayload struct {
	Reason   FailureReason `json:"reason"`
	Expanded int           `json:"expanded"`
}

// SearchCompletedPayload summarises a successful search
type SearchCompletedPayload struct {
	Cost     int `json:"cost"`
	Steps    int `json:"steps"`
	Expanded int `json:"expanded"`
}

// BoardPayload is a full board description
// Start and Goal are nil when unset
type BoardPayload struct {
	Size      int         `json:"size"`
	Obstacles []core.Cell `json:"obstacles"`
	Start     *core.Cell  `json:"start,omitempty"`
	Goal      *core.Cell  `json:"goal,omitempty"`
}
