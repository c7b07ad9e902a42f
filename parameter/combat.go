package parameter

// Projectile
const (
	ProjectileSpeed = 60.0

	// ProjectileSpawnOffset places new shots ahead of the origin along the forward axis
	ProjectileSpawnOffset = 1.5

	// ProjectileRadius is added to an obstacle's radius for hit tests
	ProjectileRadius = 0.5

	// Play volume, a projectile beyond any of these is retired
	ProjectileMaxDepth   = -100.0
	ProjectileMaxLateral = 50.0
)

// Obstacle depth bands along Z (player sits at z=0, obstacles approach from -Z)
const (
	// HitBandFar/HitBandNear bound where projectiles can register hits
	HitBandFar  = -80.0
	HitBandNear = 10.0

	// PlayerBandHalf is the half depth of the player contact band
	PlayerBandHalf = 2.0

	// TrackingBandFar/TrackingBandNear bound where homing obstacles steer toward the player
	TrackingBandFar  = -60.0
	TrackingBandNear = 0.0

	// TrackingRate is the per-second interpolation rate of homing obstacles
	TrackingRate = 1.5

	// RecycleDepth is the boundary past which an obstacle is repositioned far away
	RecycleDepth = 10.0
)

// Obstacle spawn boxes
const (
	SpawnHalfX    = 25.0
	SpawnHalfY    = 15.0
	SpawnNearZ    = -50.0
	SpawnFarZ     = -250.0
	RecycleHalfX  = 30.0
	RecycleHalfY  = 20.0
	RecycleNearZ  = -150.0
	RecycleFarZ   = -250.0
	MaxSpinRadSec = 1.0
)

// Archetype defaults: hit points, collision radius, score, render scale, population
const (
	LightHP         = 3
	LightRadius     = 1.5
	LightScore      = 100
	LightScale      = 0.8
	LightPopulation = 20

	MediumHP         = 5
	MediumRadius     = 2.0
	MediumScore      = 200
	MediumScale      = 1.2
	MediumPopulation = 10

	HeavyHP         = 8
	HeavyRadius     = 3.0
	HeavyScore      = 300
	HeavyScale      = 2.0
	HeavyPopulation = 5

	HazardHP         = 5
	HazardRadius     = 1.5
	HazardScore      = 500
	HazardScale      = 1.0
	HazardPopulation = 3
)
