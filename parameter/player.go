package parameter

// Flight envelope, the player is clamped inside it every tick
const (
	BoundsX = 14.0
	BoundsY = 8.0

	// PlayerRadius is the player's collision radius against obstacles
	PlayerRadius = 1.0
)

// Forward speed along the approach axis (units/sec)
const (
	ForwardSpeedBase  = 15.0
	ForwardSpeedBoost = 40.0
)

// Lateral/vertical handling
const (
	// MoveSpeed is the target lateral speed while a direction is held
	MoveSpeed = 15.0
	// MoveSpeedBoost is the target lateral speed while boosting
	MoveSpeedBoost = 25.0

	// SmoothingRate is the per-second interpolation rate of velocity and orientation toward target
	SmoothingRate = 5.0

	// BankFactor converts lateral velocity into roll, BankLimit clamps it (radians)
	BankFactor = -0.05
	BankLimit  = 0.8

	// PitchFactor converts vertical velocity into pitch
	PitchFactor = 0.03
)

// Boost resource
const (
	BoostMax = 100.0

	// BoostDrainRate is energy spent per second while boosting
	BoostDrainRate = 40.0

	// BoostRechargeRate is energy regained per second while not boosting
	BoostRechargeRate = 15.0
)

// Health
const (
	HealthMax = 100.0

	// CollisionDamage is the health lost per obstacle contact
	CollisionDamage = 10.0
)

// Weapon
const (
	// MaxFireRate is the maximum number of shots per second while fire is held
	MaxFireRate = 12.0

	// FireInterval is the cooldown between two shots, in seconds
	FireInterval = 1.0 / MaxFireRate
)
