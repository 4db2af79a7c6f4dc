package lighting

import (
	"math"

	"chosenoffset.com/gridlight/grid"
)

// Default source parameters, applied when a Source leaves them zero
const (
	DefaultInit  = 8.0 // base strength at the source tile
	DefaultScale = 1.0 // per-source multiplier
)

// DefaultMax is the default per-tile illumination ceiling
const DefaultMax = 1.0

// Source is a point light: a world location plus its strength parameters.
// Zero-valued Init or Scale fall back to the package defaults.
type Source struct {
	Origin grid.Point
	Init   float64
	Scale  float64
}

// Intensity returns the effective strength at the source tile itself,
// used both as the peak contribution and for skip-if-dark aggregation.
func (s Source) Intensity() float64 {
	return s.scale() * s.init()
}

// DepthLimit derives the expansion bound from the cutoff: past this ring
// the inverse-square falloff cannot reach limit anymore. Callers must keep
// limit positive; the derivation has no finite answer otherwise.
func (s Source) DepthLimit(limit float64) float64 {
	return math.Sqrt(s.init() / limit)
}

func (s Source) init() float64 {
	if s.Init == 0 {
		return DefaultInit
	}
	return s.Init
}

func (s Source) scale() float64 {
	if s.Scale == 0 {
		return DefaultScale
	}
	return s.Scale
}
