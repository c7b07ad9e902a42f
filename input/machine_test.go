package input

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestResolver(t *testing.T, seed map[string][]string) (*Resolver, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(seed)
	return NewResolver(store, zerolog.Nop()), store
}

func TestResolverDefaultsWhenStoreEmpty(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	if !r.Table().Equal(DefaultTable()) {
		t.Errorf("Expected default table, got %v", r.Table())
	}
}

func TestResolverPressRelease(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	r.Press(CodeKeyW)
	r.Press(CodeSpace)
	set := r.Actions()
	if !set.Has(ActionMoveUp) || !set.Has(ActionFire) {
		t.Errorf("Expected move_up and fire held, got %08b", set)
	}
	if set.Has(ActionBoost) {
		t.Error("Boost should not be held")
	}

	// Both codes of an action: releasing one keeps the action held
	r.Press(CodeArrowUp)
	r.Release(CodeKeyW)
	if !r.Held(ActionMoveUp) {
		t.Error("move_up should stay held while ArrowUp is down")
	}
	r.Release(CodeArrowUp)
	if r.Held(ActionMoveUp) {
		t.Error("move_up should be released")
	}

	r.ReleaseAll()
	if r.Actions() != 0 {
		t.Errorf("Expected empty set after ReleaseAll, got %08b", r.Actions())
	}
}

func TestResolverUnboundCodeIgnored(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	r.Press("KeyZ")
	if r.Actions() != 0 {
		t.Errorf("Unbound code resolved to %08b", r.Actions())
	}
	if _, ok := r.Lookup("KeyZ"); ok {
		t.Error("Unbound code should have no action")
	}
}

func TestRebindConflictLeavesTableUnchanged(t *testing.T) {
	r, store := newTestResolver(t, map[string][]string{
		"boost": {"KeyF"},
	})
	before := r.Table()

	err := r.Rebind(ActionFire, "KeyF")

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if conflict.Existing != ActionBoost || conflict.Action != ActionFire {
		t.Errorf("Conflict should name boost, got %v (action %v)", conflict.Existing, conflict.Action)
	}
	if !r.Table().Equal(before) {
		t.Errorf("Table mutated on conflict: %v", r.Table())
	}
	if a, ok := r.Lookup("KeyF"); !ok || a != ActionBoost {
		t.Errorf("KeyF should stay bound to boost, got %v", a)
	}
	if store.Saves() != 0 {
		t.Errorf("Conflict must not persist, saw %d saves", store.Saves())
	}

	// Idempotent failure
	if err2 := r.Rebind(ActionFire, "KeyF"); err2 == nil {
		t.Error("Second attempt should fail the same way")
	}
	if !r.Table().Equal(before) {
		t.Error("Table mutated on repeated conflict")
	}
}

func TestRebindCollapsesToSingleCode(t *testing.T) {
	r, store := newTestResolver(t, nil)

	if err := r.Rebind(ActionFire, "KeyJ"); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}

	tbl := r.Table()
	if len(tbl[ActionFire]) != 1 || tbl[ActionFire][0] != "KeyJ" {
		t.Errorf("Expected fire=[KeyJ], got %v", tbl[ActionFire])
	}
	if _, ok := r.Lookup(CodeSpace); ok {
		t.Error("Old Space binding should be dropped")
	}
	if store.Saves() != 1 {
		t.Errorf("Expected one save, got %d", store.Saves())
	}

	raw, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := raw["fire"]; len(got) != 1 || got[0] != "KeyJ" {
		t.Errorf("Persisted fire = %v", got)
	}
}

func TestRebindSameActionOwnCode(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	// Space already belongs to fire: no conflict, collapses to [Space]
	if err := r.Rebind(ActionFire, CodeSpace); err != nil {
		t.Fatalf("Rebinding own code should succeed: %v", err)
	}
	if got := r.Table()[ActionFire]; len(got) != 1 || got[0] != CodeSpace {
		t.Errorf("Expected [Space], got %v", got)
	}
}

func TestRebindUpdatesHeldResolution(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	r.Press("KeyJ")
	if r.Held(ActionFire) {
		t.Fatal("KeyJ unbound before rebind")
	}
	if err := r.Rebind(ActionFire, "KeyJ"); err != nil {
		t.Fatal(err)
	}
	if !r.Held(ActionFire) {
		t.Error("Held KeyJ should resolve to fire after rebind")
	}
}

func TestResetRestoresAndPersistsDefaults(t *testing.T) {
	r, store := newTestResolver(t, map[string][]string{"move_up": {"KeyI"}})

	r.Reset()

	if !r.Table().Equal(DefaultTable()) {
		t.Errorf("Expected defaults after reset, got %v", r.Table())
	}
	raw, _ := store.Load()
	if !MergeStored(raw).Equal(DefaultTable()) {
		t.Errorf("Persisted table is not the default: %v", raw)
	}
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	r, store := newTestResolver(t, nil)
	store.FailWith(errors.New("disk full"))

	if err := r.Rebind(ActionBoost, "KeyB"); err != nil {
		t.Fatalf("Persistence failure must not surface: %v", err)
	}
	if r.Table().Primary(ActionBoost) != "KeyB" {
		t.Error("In-memory table should still update")
	}
	r.Reset()
}

func TestStaleDuplicatesResolveDeterministically(t *testing.T) {
	// Imported data binds KeyF to both boost and fire
	r, _ := newTestResolver(t, map[string][]string{
		"boost": {"KeyF"},
		"fire":  {"KeyF"},
	})

	a, ok := r.Lookup("KeyF")
	if !ok || a != ActionBoost {
		t.Errorf("Expected first action in order (boost), got %v", a)
	}
}

func TestNilStoreKeepsMemoryOnly(t *testing.T) {
	r := NewResolver(nil, zerolog.Nop())
	if err := r.Rebind(ActionMoveLeft, "KeyH"); err != nil {
		t.Fatal(err)
	}
	if r.Table().Primary(ActionMoveLeft) != "KeyH" {
		t.Error("Rebind should apply without a store")
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{Code: "KeyF", Action: ActionFire, Existing: ActionBoost}
	want := "key 'F' is already bound to Boost / Accelerate"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
		ok   bool
	}{
		{"move_up", ActionMoveUp, true},
		{"FIRE", ActionFire, true},
		{" shoot ", ActionFire, true},
		{"boost", ActionBoost, true},
		{"jump", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseAction(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := map[Code]string{
		"KeyF":       "F",
		"Digit7":     "7",
		"ArrowLeft":  "Left",
		"Mouse0":     "Left Click",
		"Mouse2":     "Right Click",
		"ShiftRight": "Shift",
		"Space":      "Space",
		"":           "---",
	}
	for code, want := range tests {
		if got := Label(code); got != want {
			t.Errorf("Label(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestHintFollowsPrimaryBindings(t *testing.T) {
	r, _ := newTestResolver(t, nil)

	want := "W/A/S/D to Fly • Left Click to Shoot • Shift to Boost"
	if got := r.Table().Hint(); got != want {
		t.Errorf("Default hint = %q, want %q", got, want)
	}

	if err := r.Rebind(ActionFire, "KeyJ"); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}
	if err := r.Rebind(ActionMoveUp, CodeArrowUp); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}
	want = "Up/A/S/D to Fly • J to Shoot • Shift to Boost"
	if got := r.Table().Hint(); got != want {
		t.Errorf("Rebound hint = %q, want %q", got, want)
	}

	if got := (Table{}).Hint(); !strings.Contains(got, "--- to Shoot") {
		t.Errorf("Unbound actions should render as ---, got %q", got)
	}
}
