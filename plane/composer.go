package plane

import (
	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
	"chosenoffset.com/gridlight/vision"
)

// Composer recomputes lighting and visibility for a set of planes over one
// world. Max and Limit are the global ceiling and cutoff shared by every
// plane; a zero Max falls back to the package default, while Limit must be
// positive (depth limits are derived from it). Composer keeps no
// state between frames beyond the attribute values it writes into the
// world's objects.
type Composer[O lighting.Attributed] struct {
	World  World[O]
	Planes []*Plane[O]
	Max    float64
	Limit  float64
}

// Compose runs one full pass over every plane. Each plane is cleared and
// recomputed from scratch; nothing is updated incrementally.
func (c *Composer[O]) Compose() {
	for _, pl := range c.Planes {
		c.compose(pl)
	}
}

// ComposePlane recomputes a single plane, for callers that know only one
// domain changed this tick.
func (c *Composer[O]) ComposePlane(pl *Plane[O]) {
	c.compose(pl)
}

func (c *Composer[O]) compose(pl *Plane[O]) {
	query := c.filtered(pl)
	acc := &lighting.Accumulator[O]{Query: query, Max: c.max(), Limit: c.Limit}
	members := c.World.Objects(pl.Member)

	acc.Clear(members)

	// A plane whose sources have faded below the cutoff stays dark rather
	// than stale-lit: the clear above already ran, and nothing is added.
	if pl.Aggregate() < c.Limit {
		return
	}

	// Flat ambient levels carried by the tiles themselves.
	for _, o := range members {
		if level, ok := o.Attribute(lighting.AttrAmbient); ok {
			acc.Ambient([]O{o}, level)
		}
	}

	// Fixed emitters: objects that shed light without being viewpoints.
	for _, o := range members {
		strength, ok := o.Attribute(lighting.AttrEmit)
		if !ok {
			continue
		}
		pos, ok := any(o).(Positioned)
		if !ok {
			continue
		}
		scale, _ := o.Attribute(lighting.AttrEmitScale)
		acc.Shine(lighting.Source{Origin: pos.Position(), Init: strength, Scale: scale})
	}

	// Viewpoint sources stack additively; their visibility sweeps merge by
	// minimum depth.
	rev := &vision.Revealer[O]{Query: query, Limit: c.Limit}
	for _, src := range pl.Sources {
		acc.Shine(src)
		rev.Sweep(src.Origin, src.DepthLimit(c.Limit))
	}
}

// filtered installs the plane's membership predicate on the world query,
// so every downstream accumulate and reveal sees only this plane's
// objects.
func (c *Composer[O]) filtered(pl *Plane[O]) field.Query[[]O] {
	return func(p grid.Point) field.Attributes[[]O] {
		at := c.World.Query(p)
		if pl.Member == nil {
			return at
		}
		var kept []O
		for _, o := range at.Payload {
			if pl.Member(o) {
				kept = append(kept, o)
			}
		}
		at.Payload = kept
		return at
	}
}

func (c *Composer[O]) max() float64 {
	if c.Max == 0 {
		return lighting.DefaultMax
	}
	return c.Max
}
