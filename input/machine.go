package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridpath/core"
)

// CellMapper converts a screen position to the board cell under it
type CellMapper func(x, y int) (core.Cell, bool)

// Machine parses tcell events into semantic Intents
// Holding a mouse button while dragging paints: one place or remove per newly entered cell
type Machine struct {
	keyTable *KeyTable
	toCell   CellMapper

	// Paint state
	held     tcell.ButtonMask
	lastCell core.Cell
	hasLast  bool
}

// NewMachine creates a new input machine
// A nil table uses DefaultKeyTable
func NewMachine(keys *KeyTable, toCell CellMapper) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Machine{
		keyTable: keys,
		toCell:   toCell,
	}
}

// SetMapper replaces the screen to cell mapping, called after a resize
func (m *Machine) SetMapper(toCell CellMapper) {
	m.toCell = toCell
	m.Reset()
}

// Reset drops paint state
func (m *Machine) Reset() {
	m.held = 0
	m.hasLast = false
}

// Process parses a tcell event and returns an Intent
// Returns nil for events with no action
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.Key(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return m.Mouse(x, y, ev.Buttons())
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

// Key resolves a key press through the key table
func (m *Machine) Key(k tcell.Key, r rune) *Intent {
	var (
		entry KeyEntry
		ok    bool
	)
	if k == tcell.KeyRune {
		entry, ok = m.keyTable.Runes[r]
	} else {
		entry, ok = m.keyTable.SpecialKeys[k]
	}
	if !ok || entry.Intent == IntentNone {
		return nil
	}
	return &Intent{Type: entry.Intent, DX: entry.DX, DY: entry.DY}
}

// Mouse resolves a mouse report
// Left button places, right button removes; releasing ends the stroke
func (m *Machine) Mouse(x, y int, buttons tcell.ButtonMask) *Intent {
	btn := buttons & (tcell.Button1 | tcell.Button2)
	if btn == 0 {
		m.Reset()
		return nil
	}

	// Changing buttons starts a new stroke
	if btn != m.held {
		m.held = btn
		m.hasLast = false
	}

	if m.toCell == nil {
		return nil
	}
	c, ok := m.toCell(x, y)
	if !ok {
		return nil
	}
	if m.hasLast && c == m.lastCell {
		return nil
	}
	m.lastCell, m.hasLast = c, true

	it := IntentRemove
	if btn&tcell.Button1 != 0 {
		it = IntentPlace
	}
	return &Intent{Type: it, Cell: c, AtCell: true}
}
