package system

import (
	"fmt"

	"github.com/elgoog577215-beep/skyfall/component"
	"github.com/elgoog577215-beep/skyfall/input"
	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/physics"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// PlayerState is the controller state machine
type PlayerState uint8

const (
	StateFlying PlayerState = iota
	StateDestroyed
)

func (s PlayerState) String() string {
	switch s {
	case StateFlying:
		return "flying"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// MarshalText encodes the state by name
func (s PlayerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PlayerState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "flying":
		*s = StateFlying
	case "destroyed":
		*s = StateDestroyed
	default:
		return fmt.Errorf("unknown player state %q", b)
	}
	return nil
}

// ActionSource supplies the held action set, satisfied by *input.Resolver
type ActionSource interface {
	Actions() input.ActionSet
}

// Shooter spawns shots, satisfied by *ProjectileSystem
type Shooter interface {
	Fire(origin vmath.Vec3, aim *vmath.Vec3) bool
}

// PlayerController flies the player from held actions
// Flying → Destroyed when health reaches 0; only Reset returns to Flying
type PlayerController struct {
	player component.Player
	state  PlayerState

	actions ActionSource
	gun     Shooter

	camera     vmath.Camera
	pointerX   float64
	pointerY   float64
	hasPointer bool

	// Seconds until the next shot is allowed, never negative
	cooldown float64
	attempts uint64
}

// NewPlayerController creates a flying player reading actions and firing through gun
func NewPlayerController(actions ActionSource, gun Shooter) *PlayerController {
	return &PlayerController{
		player:  component.NewPlayer(),
		state:   StateFlying,
		actions: actions,
		gun:     gun,
		camera:  vmath.NewCamera(parameter.CameraZ, parameter.CameraFOV, parameter.ViewAspect),
	}
}

func (c *PlayerController) Name() string { return "player" }

// Update advances boost, motion, orientation and firing by dt seconds
// No-op while destroyed
func (c *PlayerController) Update(dt float64) {
	if c.state != StateFlying {
		return
	}
	p := &c.player
	held := c.actions.Actions()

	// Boost needs energy left at the start of the tick
	p.Boosting = held.Has(input.ActionBoost) && p.Boost > 0
	moveSpeed := parameter.MoveSpeed
	if p.Boosting {
		p.Boost = max(0, p.Boost-parameter.BoostDrainRate*dt)
		p.Speed = parameter.ForwardSpeedBoost
		moveSpeed = parameter.MoveSpeedBoost
	} else {
		p.Boost = min(parameter.BoostMax, p.Boost+parameter.BoostRechargeRate*dt)
		p.Speed = parameter.ForwardSpeedBase
	}

	targetX := axis(held, input.ActionMoveLeft, input.ActionMoveRight) * moveSpeed
	targetY := axis(held, input.ActionMoveDown, input.ActionMoveUp) * moveSpeed
	p.Velocity[0] = physics.Damp(p.Velocity[0], targetX, parameter.SmoothingRate, dt)
	p.Velocity[1] = physics.Damp(p.Velocity[1], targetY, parameter.SmoothingRate, dt)
	p.Velocity[2] = 0

	p.Position = physics.Integrate(p.Position, p.Velocity, dt)
	physics.ClampEnvelope(&p.Position, parameter.BoundsX, parameter.BoundsY)

	bank := vmath.Clamp(p.Velocity[0]*parameter.BankFactor, -parameter.BankLimit, parameter.BankLimit)
	p.Bank = physics.Damp(p.Bank, bank, parameter.SmoothingRate, dt)
	p.Pitch = physics.Damp(p.Pitch, p.Velocity[1]*parameter.PitchFactor, parameter.SmoothingRate, dt)

	c.updateFire(held.Has(input.ActionFire), dt)
}

// fireEpsilon absorbs float drift so a cooldown summed from tick lengths still expires on time
const fireEpsilon = 1e-9

// updateFire gates shots with a cooldown that restarts at every shot
// No remainder is carried, so two shots are never closer than FireInterval
func (c *PlayerController) updateFire(firing bool, dt float64) {
	c.cooldown = max(0, c.cooldown-dt)
	if !firing || c.cooldown > fireEpsilon {
		return
	}
	c.attempts++
	if c.gun != nil {
		c.gun.Fire(c.player.Position, c.AimTarget())
	}
	c.cooldown = parameter.FireInterval
}

func axis(held input.ActionSet, neg, pos input.Action) float64 {
	v := 0.0
	if held.Has(neg) {
		v--
	}
	if held.Has(pos) {
		v++
	}
	return v
}

// SetPointer sets the aim pointer in normalized device coordinates, clamped to [-1, 1]
func (c *PlayerController) SetPointer(x, y float64) {
	c.pointerX = vmath.Clamp(x, -1, 1)
	c.pointerY = vmath.Clamp(y, -1, 1)
	c.hasPointer = true
}

// ClearPointer reverts aiming to straight ahead
func (c *PlayerController) ClearPointer() {
	c.hasPointer = false
}

// SetAspect updates the viewport aspect used for aim projection
func (c *PlayerController) SetAspect(aspect float64) {
	c.camera = vmath.NewCamera(parameter.CameraZ, parameter.CameraFOV, aspect)
}

// AimTarget returns the pointer projected onto the aim plane, or nil without a pointer
func (c *PlayerController) AimTarget() *vmath.Vec3 {
	if !c.hasPointer {
		return nil
	}
	t := c.camera.Unproject(c.pointerX, c.pointerY, parameter.AimPlaneZ)
	return &t
}

// Damage subtracts amount from health
// Returns true when this call moved the player to Destroyed
func (c *PlayerController) Damage(amount float64) bool {
	if c.state != StateFlying || amount <= 0 {
		return false
	}
	c.player.Health = max(0, c.player.Health-amount)
	if c.player.Health <= 0 {
		c.state = StateDestroyed
		c.player.Alive = false
		c.player.Boosting = false
		return true
	}
	return false
}

// Reset returns to Flying at the origin with full health and boost
// The pointer is kept, it belongs to the input device
func (c *PlayerController) Reset() {
	c.player = component.NewPlayer()
	c.state = StateFlying
	c.cooldown = 0
	c.attempts = 0
}

// Player returns a copy of the player state
func (c *PlayerController) Player() component.Player { return c.player }

func (c *PlayerController) State() PlayerState { return c.state }

// Attempts returns shots requested since the last reset, including those dropped by a full pool
func (c *PlayerController) Attempts() uint64 { return c.attempts }
