package input

import "github.com/lixenwraith/gridpath/core"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // Esc, Ctrl+C
	IntentResize // Terminal resize event

	// Cursor
	IntentMove // h,j,k,l, arrows

	// Board editing, at the cursor or at the mouse cell
	IntentPlace       // Space, left mouse
	IntentRemove      // x, Backspace, right mouse
	IntentToggleStart // s
	IntentToggleGoal  // q

	// Search
	IntentSearch              // Enter, f
	IntentToggleDiagonal      // d
	IntentToggleCornerCutting // c

	// Layouts
	IntentGenerate // g
	IntentSave     // w
	IntentLoad     // l
	IntentReset    // r
)

var intentNames = [...]string{
	IntentNone:                "none",
	IntentQuit:                "quit",
	IntentResize:              "resize",
	IntentMove:                "move",
	IntentPlace:               "place",
	IntentRemove:              "remove",
	IntentToggleStart:         "toggle_start",
	IntentToggleGoal:          "toggle_goal",
	IntentSearch:              "search",
	IntentToggleDiagonal:      "toggle_diagonal",
	IntentToggleCornerCutting: "toggle_corner_cutting",
	IntentGenerate:            "generate",
	IntentSave:                "save",
	IntentLoad:                "load",
	IntentReset:               "reset",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is one parsed user action
type Intent struct {
	Type IntentType

	// Cursor delta for IntentMove, in screen direction
	DX, DY int

	// Cell targeted by a mouse intent; keyboard intents act on the cursor
	Cell   core.Cell
	AtCell bool
}
