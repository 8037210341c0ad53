// Package units provides shared constants and conversion helpers for
// distances produced by the kinematics pipeline.
package units

// Unit constants
const (
	M  = "m"
	CM = "cm"
	MM = "mm"
	PX = "px"
)

// ValidUnits contains all valid distance unit values
var ValidUnits = []string{M, CM, MM, PX}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "m, cm, mm, px"
}

// ScaleFactor computes the pixel-to-metre conversion constant for one run:
// pixel_scale_factor × dish_diameter_m / pixel_diameter. The configuration is
// assumed pre-validated, so pixel_diameter is non-zero.
func ScaleFactor(pixelScaleFactor, dishDiameterM, pixelDiameter float64) float64 {
	return pixelScaleFactor * dishDiameterM / pixelDiameter
}

// ConvertDistance converts a distance from metres to the target units.
// The pipeline computes distances in metres; PX requires the run's scale
// factor and is handled by the caller, so it falls through unchanged here.
func ConvertDistance(distM float64, targetUnits string) float64 {
	switch targetUnits {
	case M:
		return distM
	case CM:
		return distM * 100
	case MM:
		return distM * 1000
	default:
		return distM
	}
}

// ConvertToMeters converts a distance in the given units back to metres.
func ConvertToMeters(dist float64, fromUnit string) float64 {
	switch fromUnit {
	case M:
		return dist
	case CM:
		return dist / 100
	case MM:
		return dist / 1000
	default:
		return dist
	}
}
