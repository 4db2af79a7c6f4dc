// Package plane orchestrates lighting and visibility across independent
// domains ("planes") sharing one coordinate space. Each frame, every
// active plane is filtered, cleared, and either skipped while dark or
// re-accumulated: ambient levels first, then fixed emitters, then each
// viewpoint source's light and visibility fields.
package plane

import (
	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
)

// World is the grid abstraction the composer consumes, supplied by the
// surrounding tile system: an unfiltered location query plus enumeration
// of the payload objects it owns.
type World[O lighting.Attributed] interface {
	Query(p grid.Point) field.Attributes[[]O]
	Objects(keep func(O) bool) []O
}

// Positioned is implemented by world objects anchored to a grid location.
// Objects carrying an emit attribute must also be Positioned to act as
// light fixtures; others are skipped.
type Positioned interface {
	Position() grid.Point
}

// Plane is one disjoint visibility/lighting domain. Member partitions the
// world's objects; a nil Member takes everything. Sources are the active
// viewpoints whose light and visibility are recomputed each frame.
type Plane[O lighting.Attributed] struct {
	Name    string
	Member  func(O) bool
	Sources []lighting.Source
}

// Aggregate returns the summed intensity of the plane's sources
func (pl *Plane[O]) Aggregate() float64 {
	var total float64
	for _, src := range pl.Sources {
		total += src.Intensity()
	}
	return total
}
