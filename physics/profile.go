package physics

import (
	"github.com/elgoog577215-beep/skyfall/parameter"
)

// Profiles and bands - pre-defined for zero allocation in hot path

// HazardHoming steers hazard obstacles toward the player on final approach
var HazardHoming = HomingProfile{
	Rate: parameter.TrackingRate,
	Far:  parameter.TrackingBandFar,
	Near: parameter.TrackingBandNear,
}

// HitBand is where projectiles can register hits on obstacles
var HitBand = DepthBand{Far: parameter.HitBandFar, Near: parameter.HitBandNear}

// PlayerBand is where obstacles can contact the player
var PlayerBand = DepthBand{Far: -parameter.PlayerBandHalf, Near: parameter.PlayerBandHalf}
