// Package vision marks which world objects are currently observable from
// a viewpoint. It layers a mask and a reveal step on top of the field
// traversal: the mask decides which objects at a point count as seeable
// (by default, only objects that already carry light) and the reveal step
// records the exposure, by default as a minimum-depth merge so the closest
// sighting wins when several sources or sweeps touch the same tile.
package vision

import (
	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
)

// Revealer reveals the visibility field of a viewpoint over one domain.
// Query must already be filtered to that domain. Nil Mask or Reveal fall
// back to the defaults described in the package comment; Limit feeds the
// default mask's light threshold.
type Revealer[O lighting.Attributed] struct {
	Query  field.Query[[]O]
	Limit  float64
	Mask   func(objs []O) []O
	Reveal func(objs []O, p grid.Point, depth int)
}

// Sweep runs one reveal pass from origin. Repeating a sweep, or sweeping
// from additional viewpoints, only ever lowers recorded depths: revealing
// an already-revealed object at an equal or greater depth is a no-op.
func (r *Revealer[O]) Sweep(origin grid.Point, depthLimit float64) {
	mask := r.Mask
	if mask == nil {
		mask = r.litOnly
	}
	reveal := r.Reveal
	if reveal == nil {
		reveal = markDepth[O]
	}

	field.Cast(origin, r.Query, depthLimit, func(p grid.Point, depth int, objs []O) {
		kept := mask(objs)
		if len(kept) == 0 {
			return
		}
		reveal(kept, p, depth)
	})
}

// litOnly keeps the objects whose current light value exceeds the cutoff:
// seeing something requires it to be illuminated first.
func (r *Revealer[O]) litOnly(objs []O) []O {
	var kept []O
	for _, o := range objs {
		if v, ok := o.Attribute(lighting.AttrLight); ok && v > r.Limit {
			kept = append(kept, o)
		}
	}
	return kept
}

// markDepth records the minimum depth at which each object has been
// revealed during the current pass.
func markDepth[O lighting.Attributed](objs []O, _ grid.Point, depth int) {
	for _, o := range objs {
		if prior, ok := o.Attribute(lighting.AttrVisibleDepth); ok && prior <= float64(depth) {
			continue
		}
		o.SetAttribute(lighting.AttrVisibleDepth, float64(depth))
	}
}
