package vision

import (
	"testing"

	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
	"chosenoffset.com/gridlight/lighting"
)

// seenObj is a minimal attribute carrier for tests
type seenObj struct {
	name  string
	attrs map[string]float64
}

func newSeenObj(name string) *seenObj {
	return &seenObj{name: name, attrs: make(map[string]float64)}
}

func (o *seenObj) Attribute(name string) (float64, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

func (o *seenObj) SetAttribute(name string, value float64) {
	o.attrs[name] = value
}

func (o *seenObj) ClearAttribute(name string) {
	delete(o.attrs, name)
}

func worldOf(objs map[grid.Point]*seenObj) field.Query[[]*seenObj] {
	return func(p grid.Point) field.Attributes[[]*seenObj] {
		at := field.Attributes[[]*seenObj]{Supported: true}
		if o, ok := objs[p]; ok {
			at.Payload = []*seenObj{o}
		}
		return at
	}
}

func depthOf(o *seenObj) (float64, bool) {
	return o.Attribute(lighting.AttrVisibleDepth)
}

func TestDefaultMaskRequiresLight(t *testing.T) {
	lit := newSeenObj("lit")
	lit.SetAttribute(lighting.AttrLight, 0.5)
	dark := newSeenObj("dark")

	objs := map[grid.Point]*seenObj{
		{X: 1, Y: 0}: lit,
		{X: 2, Y: 0}: dark,
	}

	r := &Revealer[*seenObj]{Query: worldOf(objs), Limit: 0.01}
	r.Sweep(grid.Point{}, 5)

	if d, ok := depthOf(lit); !ok || d != 1 {
		t.Errorf("Lit object: depth=%g set=%v, want revealed at depth 1", d, ok)
	}
	if d, ok := depthOf(dark); ok {
		t.Errorf("Dark object revealed at depth %g, want not revealed", d)
	}
}

func TestLightAtThresholdIsNotEnough(t *testing.T) {
	o := newSeenObj("edge")
	o.SetAttribute(lighting.AttrLight, 0.01)

	objs := map[grid.Point]*seenObj{{X: 1, Y: 0}: o}
	r := &Revealer[*seenObj]{Query: worldOf(objs), Limit: 0.01}
	r.Sweep(grid.Point{}, 5)

	// The mask keeps objects strictly above the cutoff
	if d, ok := depthOf(o); ok {
		t.Errorf("Object lit exactly at the cutoff revealed at depth %g", d)
	}
}

func TestMinDepthMerge(t *testing.T) {
	o := newSeenObj("shared")
	o.SetAttribute(lighting.AttrLight, 0.5)
	objs := map[grid.Point]*seenObj{{X: 3, Y: 0}: o}

	r := &Revealer[*seenObj]{Query: worldOf(objs), Limit: 0.01}

	// A distant viewpoint reveals the object at depth 5
	r.Sweep(grid.Point{X: 8, Y: 0}, 10)
	if d, _ := depthOf(o); d != 5 {
		t.Fatalf("First sweep recorded depth %g, want 5", d)
	}

	// A closer viewpoint lowers the recorded depth
	r.Sweep(grid.Point{X: 1, Y: 0}, 10)
	if d, _ := depthOf(o); d != 2 {
		t.Errorf("Closer sweep recorded depth %g, want 2", d)
	}

	// A farther viewpoint afterwards is a no-op
	r.Sweep(grid.Point{X: 3, Y: 7}, 10)
	if d, _ := depthOf(o); d != 2 {
		t.Errorf("Farther sweep overwrote depth to %g, want 2 retained", d)
	}

	// Repeating the closest sweep leaves the value unchanged
	r.Sweep(grid.Point{X: 1, Y: 0}, 10)
	if d, _ := depthOf(o); d != 2 {
		t.Errorf("Repeated sweep changed depth to %g, want 2", d)
	}
}

func TestCustomMask(t *testing.T) {
	a := newSeenObj("keep")
	b := newSeenObj("drop")

	objs := map[grid.Point]*seenObj{{X: 1, Y: 1}: a, {X: 2, Y: 2}: b}
	query := func(p grid.Point) field.Attributes[[]*seenObj] {
		at := field.Attributes[[]*seenObj]{Supported: true}
		if o, ok := objs[p]; ok {
			at.Payload = []*seenObj{o}
		}
		return at
	}

	r := &Revealer[*seenObj]{
		Query: query,
		Mask: func(objs []*seenObj) []*seenObj {
			var kept []*seenObj
			for _, o := range objs {
				if o.name == "keep" {
					kept = append(kept, o)
				}
			}
			return kept
		},
	}
	r.Sweep(grid.Point{}, 5)

	if _, ok := depthOf(a); !ok {
		t.Error("Masked-in object was not revealed")
	}
	if d, ok := depthOf(b); ok {
		t.Errorf("Masked-out object revealed at depth %g", d)
	}
}

func TestCustomReveal(t *testing.T) {
	o := newSeenObj("target")
	o.SetAttribute(lighting.AttrLight, 1)
	objs := map[grid.Point]*seenObj{{X: 0, Y: 2}: o}

	var got []grid.DepthPoint
	r := &Revealer[*seenObj]{
		Query: worldOf(objs),
		Limit: 0.01,
		Reveal: func(objs []*seenObj, p grid.Point, depth int) {
			got = append(got, grid.DepthPoint{Point: p, Depth: depth})
		},
	}
	r.Sweep(grid.Point{}, 5)

	if len(got) != 1 {
		t.Fatalf("Custom reveal called %d times, want 1", len(got))
	}
	if got[0].Point != (grid.Point{X: 0, Y: 2}) || got[0].Depth != 2 {
		t.Errorf("Custom reveal received %v depth %d, want (0, 2) depth 2", got[0].Point, got[0].Depth)
	}
}
