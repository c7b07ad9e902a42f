package input

import "strings"

// Action is a named gameplay action that raw codes bind to
type Action uint8

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionBoost
	ActionFire

	ActionCount
)

// actionNames holds canonical names, also used as persisted table keys
var actionNames = [ActionCount]string{
	"move_up",
	"move_down",
	"move_left",
	"move_right",
	"boost",
	"fire",
}

var actionLabels = [ActionCount]string{
	"Move Up",
	"Move Down",
	"Move Left",
	"Move Right",
	"Boost / Accelerate",
	"Fire",
}

// actionAliases maps legacy stored names to actions
var actionAliases = map[string]Action{
	"shoot": ActionFire,
}

// Actions lists every action in declaration order
func Actions() []Action {
	out := make([]Action, ActionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// String returns the canonical snake_case name
func (a Action) String() string {
	if a < ActionCount {
		return actionNames[a]
	}
	return "unknown"
}

// Label returns the human-readable name
func (a Action) Label() string {
	if a < ActionCount {
		return actionLabels[a]
	}
	return "Unknown"
}

// Valid reports whether a is a declared action
func (a Action) Valid() bool {
	return a < ActionCount
}

// ParseAction resolves a canonical name or legacy alias, case-insensitive
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	if a, ok := actionAliases[name]; ok {
		return a, true
	}
	return 0, false
}

// ActionSet is a bit set of held actions
type ActionSet uint8

// Has reports whether a is in the set
func (s ActionSet) Has(a Action) bool {
	return a < ActionCount && s&(1<<a) != 0
}

// With returns the set with a added
func (s ActionSet) With(a Action) ActionSet {
	if a >= ActionCount {
		return s
	}
	return s | 1<<a
}
