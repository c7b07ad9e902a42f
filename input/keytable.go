package input

import "slices"

// Table maps each action to an ordered list of raw codes
// The first code is the primary binding shown in hints
type Table map[Action][]Code

// DefaultTable returns the documented default bindings
func DefaultTable() Table {
	return Table{
		ActionMoveUp:    {CodeKeyW, CodeArrowUp},
		ActionMoveDown:  {CodeKeyS, CodeArrowDown},
		ActionMoveLeft:  {CodeKeyA, CodeArrowLeft},
		ActionMoveRight: {CodeKeyD, CodeArrowRight},
		ActionBoost:     {CodeShiftLeft, CodeShiftRight},
		ActionFire:      {CodeMouse0, CodeSpace},
	}
}

// Clone returns a deep copy
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for a, codes := range t {
		out[a] = slices.Clone(codes)
	}
	return out
}

// Primary returns the first code bound to a, or "" when unbound
func (t Table) Primary(a Action) Code {
	if codes := t[a]; len(codes) > 0 {
		return codes[0]
	}
	return ""
}

// Hint renders the controls line from the primary bindings
func (t Table) Hint() string {
	move := Label(t.Primary(ActionMoveUp)) + "/" +
		Label(t.Primary(ActionMoveLeft)) + "/" +
		Label(t.Primary(ActionMoveDown)) + "/" +
		Label(t.Primary(ActionMoveRight))
	return move + " to Fly • " +
		Label(t.Primary(ActionFire)) + " to Shoot • " +
		Label(t.Primary(ActionBoost)) + " to Boost"
}

// Owner returns the first action (in declaration order) other than except that binds code
func (t Table) Owner(code Code, except Action) (Action, bool) {
	for _, a := range Actions() {
		if a == except {
			continue
		}
		if slices.Contains(t[a], code) {
			return a, true
		}
	}
	return 0, false
}

// Equal reports whether both tables bind the same codes in the same order
func (t Table) Equal(o Table) bool {
	for _, a := range Actions() {
		if !slices.Equal(t[a], o[a]) {
			return false
		}
	}
	return true
}

// inverse builds the code → action lookup
// Duplicate codes resolve to the first action in declaration order
func (t Table) inverse() map[Code]Action {
	inv := make(map[Code]Action, len(t)*2)
	for _, a := range Actions() {
		for _, c := range t[a] {
			if _, taken := inv[c]; !taken {
				inv[c] = a
			}
		}
	}
	return inv
}
