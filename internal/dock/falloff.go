package dock

import "math"

// sigmaDivisor relates the influence radius to the Gaussian's standard
// deviation: sigma = radius / 2.5.
const sigmaDivisor = 2.5

// Falloff returns the magnification weight for a pointer d pixels away from
// an item center. The weight is 1 at d=0 and decays as a Gaussian; it never
// reaches zero, so neighbors ease in rather than snapping.
func Falloff(d, radius float64) float64 {
	sigma := radius / sigmaDivisor
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// Magnification maps a distance to a scale factor in [1, maxScale].
func Magnification(d, radius, maxScale float64) float64 {
	return 1 + (maxScale-1)*Falloff(d, radius)
}
