package engine

import (
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/navigation"
)

// SearchSummary is the last search outcome kept for inspection
type SearchSummary struct {
	Found    bool   `json:"found"`
	Failure  string `json:"failure,omitempty"`
	Cost     int    `json:"cost"`
	Steps    int    `json:"steps"`
	Expanded int    `json:"expanded"`
}

func summarize(res navigation.Result) SearchSummary {
	sum := SearchSummary{
		Found:    res.Found,
		Cost:     res.Cost,
		Steps:    len(res.Path),
		Expanded: res.Expanded,
	}
	if !res.Found {
		sum.Failure = res.Failure.String()
	}
	return sum
}

// Snapshot is a read-only copy of session state
type Snapshot struct {
	Size               int            `json:"size"`
	Obstacles          []core.Cell    `json:"obstacles"`
	Start              *core.Cell     `json:"start,omitempty"`
	Goal               *core.Cell     `json:"goal,omitempty"`
	AllowDiagonal      bool           `json:"allow_diagonal"`
	AllowCornerCutting bool           `json:"allow_corner_cutting"`
	Reveal             string         `json:"reveal"`
	RevealOrder        string         `json:"reveal_order"`
	Markers            []core.Cell    `json:"markers"`
	Pending            int            `json:"pending"`
	LastSearch         *SearchSummary `json:"last_search,omitempty"`
	EventSeq           uint64         `json:"event_seq"`
}

// Snapshot copies the current board, rules and reveal progress
func (s *Session) Snapshot() Snapshot {
	l := s.grid.Layout()
	snap := Snapshot{
		Size:               l.Size,
		Obstacles:          l.Obstacles,
		Start:              l.Start,
		Goal:               l.Goal,
		AllowDiagonal:      s.rules.AllowDiagonal,
		AllowCornerCutting: s.rules.AllowCornerCutting,
		Reveal:             s.reveal.State().String(),
		RevealOrder:        s.reveal.Order().String(),
		Markers:            s.reveal.Markers(),
		Pending:            s.reveal.Pending(),
		EventSeq:           s.seq,
	}
	if s.lastSearch != nil {
		sum := *s.lastSearch
		snap.LastSearch = &sum
	}
	return snap
}
