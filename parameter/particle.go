package parameter

// Burst particles
const (
	// BurstSpread is the full range of each random velocity component (±BurstSpread/2)
	BurstSpread = 15.0

	// BurstFadeRate is normalized lifetime lost per second
	BurstFadeRate = 2.0

	// BurstSpinRate is the cosmetic tumble rate in rad/sec
	BurstSpinRate = 5.0

	// Particles per event
	BurstDestroy = 15
	BurstHit     = 3
	BurstImpact  = 20
)
