package parameter

// HUD formatting
const (
	// ScoreDigits is the zero-padded width of the score readout
	ScoreDigits = 6

	// SpeedDisplayFactor converts forward speed to the km/h readout
	SpeedDisplayFactor = 30.0

	// BarWidth is the cell width of the boost and shield bars
	BarWidth = 20
)
