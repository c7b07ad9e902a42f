package engine

import (
	"sync/atomic"

	"github.com/elgoog577215-beep/skyfall/status"
)

// Registry keys written after every tick
const (
	MetricTicks            = "sim.ticks"
	MetricScore            = "sim.score"
	MetricBestScore        = "sim.best"
	MetricHealth           = "player.health"
	MetricBoost            = "player.boost"
	MetricAlive            = "player.alive"
	MetricProjectiles      = "pool.projectile.active"
	MetricProjectileDrops  = "pool.projectile.dropped"
	MetricProjectileHits   = "projectile.hits"
	MetricFireAttempts     = "player.fire_attempts"
	MetricBursts           = "pool.burst.active"
	MetricBurstDrops       = "pool.burst.dropped"
	MetricObstacles        = "obstacle.active"
	MetricObstacleRecycles = "obstacle.recycled"
	MetricRunID            = "run.id"
	MetricRunDestroyed     = "run.destroyed"
)

// simMetrics caches registry pointers so the tick writes without map lookups
type simMetrics struct {
	ticks            *atomic.Int64
	score            *atomic.Int64
	best             *atomic.Int64
	health           *status.Float
	boost            *status.Float
	alive            *atomic.Bool
	projectiles      *atomic.Int64
	projectileDrops  *atomic.Int64
	projectileHits   *atomic.Int64
	fireAttempts     *atomic.Int64
	bursts           *atomic.Int64
	burstDrops       *atomic.Int64
	obstacles        *atomic.Int64
	obstacleRecycles *atomic.Int64
	runID            *status.Text
	runDestroyed     *atomic.Int64
}

func newSimMetrics(reg *status.Registry) simMetrics {
	return simMetrics{
		ticks:            reg.Ints.Get(MetricTicks),
		score:            reg.Ints.Get(MetricScore),
		best:             reg.Ints.Get(MetricBestScore),
		health:           reg.Floats.Get(MetricHealth),
		boost:            reg.Floats.Get(MetricBoost),
		alive:            reg.Bools.Get(MetricAlive),
		projectiles:      reg.Ints.Get(MetricProjectiles),
		projectileDrops:  reg.Ints.Get(MetricProjectileDrops),
		projectileHits:   reg.Ints.Get(MetricProjectileHits),
		fireAttempts:     reg.Ints.Get(MetricFireAttempts),
		bursts:           reg.Ints.Get(MetricBursts),
		burstDrops:       reg.Ints.Get(MetricBurstDrops),
		obstacles:        reg.Ints.Get(MetricObstacles),
		obstacleRecycles: reg.Ints.Get(MetricObstacleRecycles),
		runID:            reg.Texts.Get(MetricRunID),
		runDestroyed:     reg.Ints.Get(MetricRunDestroyed),
	}
}

func (s *Simulation) publishMetrics() {
	m := &s.metrics
	p := s.player.Player()

	m.ticks.Store(int64(s.ticks))
	m.score.Store(s.score)
	m.best.Store(s.best)
	m.health.Set(p.Health)
	m.boost.Set(p.Boost)
	m.alive.Store(p.Alive)
	m.projectiles.Store(int64(s.projectiles.Len()))
	m.projectileDrops.Store(int64(s.projectiles.Dropped()))
	m.projectileHits.Store(int64(s.projectiles.Hits()))
	m.fireAttempts.Store(int64(s.player.Attempts()))
	m.bursts.Store(int64(s.effects.Len()))
	m.burstDrops.Store(int64(s.effects.Dropped()))
	m.obstacles.Store(int64(s.obstacles.Len()))
	m.obstacleRecycles.Store(int64(s.obstacles.Recycled()))
	m.runID.Set(s.run.id.String())
	m.runDestroyed.Store(int64(s.run.totalDestroyed()))
}
