package lighting

import (
	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
)

// Accumulator adds illumination into the objects of one visibility domain.
// Query must already be filtered to that domain; Max is the per-tile
// ceiling and Limit the global cutoff below which contributions are
// dropped entirely rather than stored as near-zero values.
//
// Within one accumulate cycle light only grows; it is reset exclusively by
// an explicit Clear.
type Accumulator[O Attributed] struct {
	Query field.Query[[]O]
	Max   float64
	Limit float64
}

// Shine casts the light field of src through the query and adds its
// inverse-square contribution to every object it reaches. Occluded regions
// never appear because the field traversal stops past blockers.
func (a *Accumulator[O]) Shine(src Source) {
	field.Cast(src.Origin, a.Query, src.DepthLimit(a.Limit), func(p grid.Point, depth int, objs []O) {
		d2 := grid.SquaredDistance(p, src.Origin)
		if d2 < 1 {
			d2 = 1 // the source tile itself receives full strength
		}
		light := src.Intensity() / float64(d2)
		if light < a.Limit {
			return
		}
		for _, o := range objs {
			a.add(o, light)
		}
	})
}

// Ambient adds a flat, distance-independent level to every object. The
// same cutoff and ceiling apply as for source light.
func (a *Accumulator[O]) Ambient(objs []O, level float64) {
	if level < a.Limit {
		return
	}
	for _, o := range objs {
		a.add(o, level)
	}
}

// Clear removes the accumulated light and reveal depth from every object.
// It must run before re-accumulating a domain, otherwise stale values
// survive across frames. Clearing twice is the same as clearing once.
func (a *Accumulator[O]) Clear(objs []O) {
	for _, o := range objs {
		o.ClearAttribute(AttrLight)
		o.ClearAttribute(AttrVisibleDepth)
	}
}

// add clamps on every write; the stored value never exceeds Max even
// transiently.
func (a *Accumulator[O]) add(o O, light float64) {
	prior, _ := o.Attribute(AttrLight)
	v := prior + light
	if v > a.Max {
		v = a.Max
	}
	o.SetAttribute(AttrLight, v)
}
