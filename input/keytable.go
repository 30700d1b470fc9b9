package input

import "github.com/gdamore/tcell/v2"

// KeyEntry describes a key's action without function pointers
type KeyEntry struct {
	Intent IntentType
	DX, DY int
}

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Backspace)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:      {Intent: IntentQuit},
			tcell.KeyEscape:     {Intent: IntentQuit},
			tcell.KeyUp:         {Intent: IntentMove, DY: -1},
			tcell.KeyDown:       {Intent: IntentMove, DY: 1},
			tcell.KeyLeft:       {Intent: IntentMove, DX: -1},
			tcell.KeyRight:      {Intent: IntentMove, DX: 1},
			tcell.KeyEnter:      {Intent: IntentSearch},
			tcell.KeyBackspace:  {Intent: IntentRemove},
			tcell.KeyBackspace2: {Intent: IntentRemove},
			tcell.KeyDelete:     {Intent: IntentRemove},
		},

		Runes: map[rune]KeyEntry{
			// Cursor
			'h': {Intent: IntentMove, DX: -1},
			'j': {Intent: IntentMove, DY: 1},
			'k': {Intent: IntentMove, DY: -1},
			'l': {Intent: IntentMove, DX: 1},

			// Editing
			' ': {Intent: IntentPlace},
			'x': {Intent: IntentRemove},
			's': {Intent: IntentToggleStart},
			'q': {Intent: IntentToggleGoal},

			// Search
			'f': {Intent: IntentSearch},
			'd': {Intent: IntentToggleDiagonal},
			'c': {Intent: IntentToggleCornerCutting},

			// Layouts
			'g': {Intent: IntentGenerate},
			'w': {Intent: IntentSave},
			'L': {Intent: IntentLoad},
			'r': {Intent: IntentReset},
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry, len(kt.SpecialKeys)),
		Runes:       make(map[rune]KeyEntry, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	return out
}
