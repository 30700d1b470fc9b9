package input

// actionRegistry maps canonical action names to KeyEntry structs
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	"quit": {Intent: IntentQuit},

	"move_left":  {Intent: IntentMove, DX: -1},
	"move_right": {Intent: IntentMove, DX: 1},
	"move_up":    {Intent: IntentMove, DY: -1},
	"move_down":  {Intent: IntentMove, DY: 1},

	"place_obstacle":  {Intent: IntentPlace},
	"remove_obstacle": {Intent: IntentRemove},
	"toggle_start":    {Intent: IntentToggleStart},
	"toggle_goal":     {Intent: IntentToggleGoal},

	"search":                {Intent: IntentSearch},
	"toggle_diagonal":       {Intent: IntentToggleDiagonal},
	"toggle_corner_cutting": {Intent: IntentToggleCornerCutting},

	"generate": {Intent: IntentGenerate},
	"save":     {Intent: IntentSave},
	"load":     {Intent: IntentLoad},
	"reset":    {Intent: IntentReset},
}

// ActionEntry returns the binding for a canonical action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}

// ActionNames returns all registered action names
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
