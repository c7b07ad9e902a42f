package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/event"
	"github.com/elgoog577215-beep/skyfall/input"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/status"
	"github.com/elgoog577215-beep/skyfall/system"
)

// Config assembles a Simulation, zero value is usable
type Config struct {
	// Seed for gameplay randomness, 0 seeds from the clock
	Seed uint64

	// Archetypes overrides the obstacle table, nil uses the defaults
	Archetypes []component.Archetype

	// Bindings persists the binding table, nil keeps it in memory
	Bindings input.Store

	// Registry receives live metrics, nil creates a private one
	Registry *status.Registry

	Clock Clock

	// Logger defaults to the zero logger, which discards
	Logger zerolog.Logger
}

// runStats accumulates the current run until the terminal state
type runStats struct {
	id         uuid.UUID
	elapsed    time.Duration
	destroyed  [component.KindCount]int
	collisions int
	ended      bool
}

func (r *runStats) totalDestroyed() int {
	n := 0
	for _, c := range r.destroyed {
		n += c
	}
	return n
}

// Simulation is the director: it owns every system and advances them in a fixed order
// Not safe for concurrent use; all calls must come from one goroutine (see Loop)
type Simulation struct {
	bus         *event.Bus
	resolver    *input.Resolver
	player      *system.PlayerController
	projectiles *system.ProjectileSystem
	obstacles   *system.ObstacleField
	effects     *system.EffectSystem

	score int64
	run   runStats
	ticks uint64

	// Controls line, rebuilt when bindings change
	controls string

	// Final-score record, survives restarts
	last *event.RunSummary
	best int64

	seed     uint64
	clock    Clock
	registry *status.Registry
	metrics  simMetrics
	logger   zerolog.Logger
}

// NewSimulation builds the systems, loads bindings and places the initial obstacle layout
func NewSimulation(cfg Config) *Simulation {
	s := &Simulation{
		bus:      event.NewBus(),
		clock:    cfg.Clock,
		registry: cfg.Registry,
		seed:     cfg.Seed,
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.registry == nil {
		s.registry = status.NewRegistry()
	}
	s.logger = cfg.Logger.With().Str("component", "simulation").Logger()
	if s.seed == 0 {
		s.seed = uint64(s.clock.Now().UnixNano())
	}
	archetypes := cfg.Archetypes
	if archetypes == nil {
		archetypes = component.DefaultArchetypes()
	}

	// Separate streams: cosmetic draws never shift gameplay layouts
	gameRNG := rand.New(rand.NewPCG(s.seed, 0x5eed))
	fxRNG := rand.New(rand.NewPCG(s.seed, 0xb0057))

	s.resolver = input.NewResolver(cfg.Bindings, s.logger)
	s.controls = s.resolver.Table().Hint()
	s.obstacles = system.NewObstacleField(archetypes, s.bus, gameRNG)
	s.projectiles = system.NewProjectileSystem(parameter.ProjectilePoolSize, s.obstacles, s.bus)
	s.effects = system.NewEffectSystem(parameter.BurstPoolSize, fxRNG)
	s.player = system.NewPlayerController(s.resolver, s.projectiles)

	s.bus.Subscribe(s.effects)
	s.bus.On(event.EventObstacleDestroyed, s.onObstacleDestroyed)
	s.bus.On(event.EventPlayerDamaged, s.onPlayerDamaged)

	s.metrics = newSimMetrics(s.registry)
	s.run = runStats{id: uuid.New()}
	s.publishMetrics()

	s.logger.Debug().
		Uint64("seed", s.seed).
		Int("obstacles", s.obstacles.Len()).
		Str("run", s.run.id.String()).
		Msg("simulation ready")
	return s
}

func (s *Simulation) onObstacleDestroyed(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.ObstacleDestroyedPayload)
	if !ok {
		return
	}
	s.score += p.Score
	if p.Kind < component.KindCount {
		s.run.destroyed[p.Kind]++
	}
}

func (s *Simulation) onPlayerDamaged(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PlayerDamagedPayload)
	if !ok {
		return
	}
	s.run.collisions++
	s.player.Damage(p.Damage)
}

// Tick advances the simulation by dt
// No-op once the player is destroyed; dt is capped at MaxTickDelta
func (s *Simulation) Tick(dt time.Duration) {
	if s.player.State() == system.StateDestroyed || dt <= 0 {
		return
	}
	dt = min(dt, parameter.MaxTickDelta)
	sec := dt.Seconds()

	s.ticks++
	s.run.elapsed += dt

	s.player.Update(sec)
	p := s.player.Player()

	s.projectiles.Advance(sec)

	s.obstacles.Advance(sec, p.Position, p.Speed)
	s.obstacles.TestPlayerCollision(p.Position, parameter.PlayerRadius)

	s.effects.Advance(sec)

	if s.player.State() == system.StateDestroyed && !s.run.ended {
		s.finishRun()
	}
	s.publishMetrics()
}

func (s *Simulation) finishRun() {
	s.run.ended = true
	summary := event.RunSummary{
		ID:         s.run.id,
		Score:      s.score,
		Destroyed:  s.run.destroyed,
		Collisions: s.run.collisions,
		ShotsFired: int(s.projectiles.Fired()),
		Duration:   s.run.elapsed,
		EndedAt:    s.clock.Now(),
	}
	s.last = &summary
	s.best = max(s.best, summary.Score)

	s.logger.Info().
		Str("run", summary.ID.String()).
		Int64("score", summary.Score).
		Int("destroyed", summary.TotalDestroyed()).
		Int("shots", summary.ShotsFired).
		Dur("duration", summary.Duration).
		Msg("run ended")

	s.bus.Publish(event.GameEvent{
		Type:    event.EventPlayerDestroyed,
		Payload: &event.PlayerDestroyedPayload{Summary: summary},
	})
}

// Restart begins a new run: player reset, score zeroed, initial layout restored,
// shots and bursts cleared. The final-score record is kept
func (s *Simulation) Restart() {
	s.player.Reset()
	s.score = 0
	s.obstacles.Restore()
	s.projectiles.Reset()
	s.effects.Reset()
	s.run = runStats{id: uuid.New()}

	s.logger.Info().Str("run", s.run.id.String()).Msg("run restarted")
	s.bus.Publish(event.GameEvent{
		Type:    event.EventRunRestarted,
		Payload: &event.RunRestartedPayload{ID: s.run.id},
	})
	s.publishMetrics()
}

// Input boundary

func (s *Simulation) Press(code input.Code)   { s.resolver.Press(code) }
func (s *Simulation) Release(code input.Code) { s.resolver.Release(code) }
func (s *Simulation) ReleaseAll()             { s.resolver.ReleaseAll() }

// SetPointer aims at normalized device coordinates
func (s *Simulation) SetPointer(x, y float64) { s.player.SetPointer(x, y) }
func (s *Simulation) ClearPointer()           { s.player.ClearPointer() }

// SetAspect sets the viewport width/height used for aiming
func (s *Simulation) SetAspect(aspect float64) { s.player.SetAspect(aspect) }

// Rebind binds action to the single code, see input.Resolver.Rebind
func (s *Simulation) Rebind(action input.Action, code input.Code) error {
	if err := s.resolver.Rebind(action, code); err != nil {
		return fmt.Errorf("rebind %s: %w", action, err)
	}
	s.controls = s.resolver.Table().Hint()
	return nil
}

// ResetBindings restores the default binding table
func (s *Simulation) ResetBindings() {
	s.resolver.Reset()
	s.controls = s.resolver.Table().Hint()
}

// Bindings returns a copy of the binding table
func (s *Simulation) Bindings() input.Table { return s.resolver.Table() }

// Actions returns the currently held actions
func (s *Simulation) Actions() input.ActionSet { return s.resolver.Actions() }

// Read side

func (s *Simulation) Bus() *event.Bus            { return s.bus }
func (s *Simulation) Registry() *status.Registry { return s.registry }
func (s *Simulation) State() system.PlayerState  { return s.player.State() }
func (s *Simulation) Player() component.Player   { return s.player.Player() }
func (s *Simulation) Score() int64               { return s.score }
func (s *Simulation) BestScore() int64           { return s.best }
func (s *Simulation) Ticks() uint64              { return s.ticks }
func (s *Simulation) RunID() uuid.UUID           { return s.run.id }
func (s *Simulation) Seed() uint64               { return s.seed }

// ObstacleCounts returns active obstacles per archetype
func (s *Simulation) ObstacleCounts() [component.KindCount]int { return s.obstacles.Counts() }

// LastRun returns the summary of the most recently ended run
func (s *Simulation) LastRun() (event.RunSummary, bool) {
	if s.last == nil {
		return event.RunSummary{}, false
	}
	return *s.last, true
}

// SetBestScore seeds the best score, typically from the record ledger at startup
func (s *Simulation) SetBestScore(score int64) {
	s.best = max(s.best, score)
	s.metrics.best.Store(s.best)
}
