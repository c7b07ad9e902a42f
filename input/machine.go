package input

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ConflictError rejects a rebind whose code already belongs to another action
type ConflictError struct {
	Code     Code
	Action   Action // Action being rebound
	Existing Action // Action currently owning Code
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("key '%s' is already bound to %s", Label(e.Code), e.Existing.Label())
}

// Resolver tracks held raw codes and resolves them to actions through the binding table
//
// Press/Release are fed by an injected event source (terminal bridge, network peer, tests);
// the resolver never attaches to a device itself. Not safe for concurrent use: hosts
// post input onto the simulation goroutine
type Resolver struct {
	table   Table
	inverse map[Code]Action
	held    map[Code]struct{}

	store  Store
	logger zerolog.Logger
}

// NewResolver loads the table from store, falling back to defaults on missing or corrupt data
// A nil store keeps bindings in memory only
func NewResolver(store Store, logger zerolog.Logger) *Resolver {
	r := &Resolver{
		held:   make(map[Code]struct{}),
		store:  store,
		logger: logger,
	}
	r.setTable(r.load())
	return r
}

func (r *Resolver) load() Table {
	if r.store == nil {
		return DefaultTable()
	}
	raw, err := r.store.Load()
	if err != nil {
		if isMissing(err) {
			r.logger.Debug().Msg("no stored bindings, using defaults")
		} else {
			r.logger.Warn().Err(err).Msg("stored bindings unreadable, using defaults")
		}
		return DefaultTable()
	}
	return MergeStored(raw)
}

func (r *Resolver) setTable(t Table) {
	r.table = t
	r.inverse = t.inverse()
}

func (r *Resolver) persist() {
	if r.store == nil {
		return
	}
	if err := r.store.Save(encodeTable(r.table)); err != nil {
		r.logger.Warn().Err(err).Msg("failed to persist bindings")
	}
}

// Press marks code as held
func (r *Resolver) Press(code Code) {
	r.held[code] = struct{}{}
}

// Release marks code as no longer held
func (r *Resolver) Release(code Code) {
	delete(r.held, code)
}

// ReleaseAll clears every held code, used when the input source loses focus
func (r *Resolver) ReleaseAll() {
	clear(r.held)
}

// Lookup returns the action bound to code
func (r *Resolver) Lookup(code Code) (Action, bool) {
	a, ok := r.inverse[code]
	return a, ok
}

// Actions returns the set of actions with at least one held code
func (r *Resolver) Actions() ActionSet {
	var set ActionSet
	for code := range r.held {
		if a, ok := r.inverse[code]; ok {
			set = set.With(a)
		}
	}
	return set
}

// Held reports whether any code bound to a is held
func (r *Resolver) Held(a Action) bool {
	return r.Actions().Has(a)
}

// Table returns a copy of the current bindings
func (r *Resolver) Table() Table {
	return r.table.Clone()
}

// Rebind replaces the bindings of action with the single code
// Returns *ConflictError without mutating anything when code belongs to a different action
func (r *Resolver) Rebind(action Action, code Code) error {
	if !action.Valid() {
		return fmt.Errorf("unknown action %d", action)
	}
	if code == "" {
		return fmt.Errorf("empty code for %s", action)
	}
	if owner, ok := r.table.Owner(code, action); ok {
		return &ConflictError{Code: code, Action: action, Existing: owner}
	}

	next := r.table.Clone()
	next[action] = []Code{code}
	r.setTable(next)
	r.persist()

	r.logger.Info().Str("action", action.String()).Str("code", string(code)).Msg("rebound")
	return nil
}

// Reset restores and persists the default table
func (r *Resolver) Reset() {
	r.setTable(DefaultTable())
	r.persist()
	r.logger.Info().Msg("bindings reset to defaults")
}
