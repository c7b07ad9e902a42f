package engine

import (
	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/system"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// PlayerView is the player as a renderer places it
type PlayerView struct {
	Position vmath.Vec3 `json:"pos"`
	Bank     float64    `json:"bank"`
	Pitch    float64    `json:"pitch"`
	Boosting bool       `json:"boosting"`
}

// ObstacleView is one active obstacle instance
type ObstacleView struct {
	Kind     component.Kind `json:"kind"`
	Position vmath.Vec3     `json:"pos"`
	Rotation vmath.Vec3     `json:"rot"`
	Scale    float64        `json:"scale"`
	HP       int            `json:"hp"`
}

// ProjectileView is one active shot, Heading is the unit direction of travel
type ProjectileView struct {
	Position vmath.Vec3 `json:"pos"`
	Heading  vmath.Vec3 `json:"heading"`
}

// BurstView is one active particle, Scale shrinks with remaining life
type BurstView struct {
	Position vmath.Vec3 `json:"pos"`
	Scale    float64    `json:"scale"`
	Spin     float64    `json:"spin"`
}

// Snapshot is the render boundary: active slots per pool as of the end of a tick
type Snapshot struct {
	Tick        uint64             `json:"tick"`
	State       system.PlayerState `json:"state"`
	Player      PlayerView         `json:"player"`
	Obstacles   []ObstacleView     `json:"obstacles"`
	Projectiles []ProjectileView   `json:"projectiles"`
	Bursts      []BurstView        `json:"bursts"`
	HUD         HUD                `json:"hud"`
}

// Snapshot fills dst, reusing its slices
func (s *Simulation) Snapshot(dst *Snapshot) {
	p := s.player.Player()

	dst.Tick = s.ticks
	dst.State = s.player.State()
	dst.Player = PlayerView{
		Position: p.Position,
		Bank:     p.Bank,
		Pitch:    p.Pitch,
		Boosting: p.Boosting,
	}
	dst.HUD = s.HUD()

	dst.Obstacles = dst.Obstacles[:0]
	s.obstacles.Each(func(o *component.Obstacle) {
		dst.Obstacles = append(dst.Obstacles, ObstacleView{
			Kind:     o.Archetype.Kind,
			Position: o.Position,
			Rotation: o.Rotation,
			Scale:    o.Archetype.Scale,
			HP:       o.HP,
		})
	})

	dst.Projectiles = dst.Projectiles[:0]
	s.projectiles.Each(func(pr *component.Projectile) {
		dst.Projectiles = append(dst.Projectiles, ProjectileView{
			Position: pr.Position,
			Heading:  vmath.Normalize(pr.Velocity),
		})
	})

	dst.Bursts = dst.Bursts[:0]
	s.effects.Each(func(b *component.Burst) {
		dst.Bursts = append(dst.Bursts, BurstView{
			Position: b.Position,
			Scale:    b.Life,
			Spin:     b.Spin,
		})
	})
}
