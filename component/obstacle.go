package component

import (
	"fmt"

	"github.com/elgoog577215-beep/skyfall/parameter"
	"github.com/elgoog577215-beep/skyfall/vmath"
)

// Kind identifies an obstacle archetype
type Kind uint8

const (
	KindLight Kind = iota
	KindMedium
	KindHeavy
	KindHazard

	KindCount
)

var kindNames = [KindCount]string{"light", "medium", "heavy", "hazard"}

// String returns the archetype name
func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name for snapshots and logs
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name, used by snapshot consumers
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown obstacle kind %q", b)
}

// Archetype holds the fixed parameters of an obstacle category
type Archetype struct {
	Kind       Kind
	HP         int
	Radius     float64
	Score      int64
	Scale      float64 // Render scale only
	Population int
	Homing     bool // Steers toward the player inside the tracking band
}

// DefaultArchetypes returns the standard obstacle table
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{KindLight, parameter.LightHP, parameter.LightRadius, parameter.LightScore, parameter.LightScale, parameter.LightPopulation, false},
		{KindMedium, parameter.MediumHP, parameter.MediumRadius, parameter.MediumScore, parameter.MediumScale, parameter.MediumPopulation, false},
		{KindHeavy, parameter.HeavyHP, parameter.HeavyRadius, parameter.HeavyScore, parameter.HeavyScale, parameter.HeavyPopulation, false},
		{KindHazard, parameter.HazardHP, parameter.HazardRadius, parameter.HazardScore, parameter.HazardScale, parameter.HazardPopulation, true},
	}
}

// Obstacle is a pooled, recycled obstacle instance
type Obstacle struct {
	Archetype *Archetype
	Position  vmath.Vec3
	Rotation  vmath.Vec3 // Euler angles, cosmetic
	Spin      vmath.Vec3 // Rotation rate per axis
	HP        int        // Remaining hit points, restored to Archetype.HP on recycle
}
