package lighting

import (
	"math"
	"testing"

	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
)

// litObj is a minimal attribute carrier for tests
type litObj struct {
	attrs map[string]float64
}

func newLitObj() *litObj {
	return &litObj{attrs: make(map[string]float64)}
}

func (o *litObj) Attribute(name string) (float64, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

func (o *litObj) SetAttribute(name string, value float64) {
	o.attrs[name] = value
}

func (o *litObj) ClearAttribute(name string) {
	delete(o.attrs, name)
}

// openWorld supports every location; only the tracked points carry objects
func openWorld(objs map[grid.Point]*litObj) field.Query[[]*litObj] {
	return func(p grid.Point) field.Attributes[[]*litObj] {
		at := field.Attributes[[]*litObj]{Supported: true}
		if o, ok := objs[p]; ok {
			at.Payload = []*litObj{o}
		}
		return at
	}
}

func lightOf(t *testing.T, o *litObj) float64 {
	t.Helper()
	v, _ := o.Attribute(AttrLight)
	return v
}

func TestInverseSquareDecay(t *testing.T) {
	objs := map[grid.Point]*litObj{
		{X: 1, Y: 0}:  newLitObj(),
		{X: 2, Y: 0}:  newLitObj(),
		{X: 0, Y: 5}:  newLitObj(),
		{X: 3, Y: 4}:  newLitObj(),
		{X: 10, Y: 0}: newLitObj(),
	}

	acc := &Accumulator[*litObj]{Query: openWorld(objs), Max: 100, Limit: 0.0001}
	acc.Shine(Source{Origin: grid.Point{}, Init: 8, Scale: 1})

	cases := []struct {
		p    grid.Point
		want float64
	}{
		{grid.Point{X: 1, Y: 0}, 8},
		{grid.Point{X: 2, Y: 0}, 2},
		{grid.Point{X: 0, Y: 5}, 8.0 / 25},
		{grid.Point{X: 3, Y: 4}, 8.0 / 25},
		{grid.Point{X: 10, Y: 0}, 0.08},
	}

	for _, c := range cases {
		got := lightOf(t, objs[c.p])
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Light at %v = %g, want %g", c.p, got, c.want)
		}
	}
}

func TestSourceTileReceivesFullStrength(t *testing.T) {
	origin := grid.Point{X: 2, Y: 2}
	objs := map[grid.Point]*litObj{origin: newLitObj()}

	acc := &Accumulator[*litObj]{Query: openWorld(objs), Max: 100, Limit: 0.01}
	acc.Shine(Source{Origin: origin, Init: 8, Scale: 1})

	if got := lightOf(t, objs[origin]); got != 8 {
		t.Errorf("Light at the source tile = %g, want 8 (squared distance floored at 1)", got)
	}
}

func TestCutoffDropsFaintContributions(t *testing.T) {
	// With Init 8 and Limit 0.0001, the reach ends at squared distance
	// 80000: contributions past it are dropped, not stored as near-zero
	inside := grid.Point{X: 282, Y: 0}  // d^2 = 79524, 8/d^2 just above the cutoff
	outside := grid.Point{X: 283, Y: 0} // d^2 = 80089, just below

	objs := map[grid.Point]*litObj{inside: newLitObj(), outside: newLitObj()}

	acc := &Accumulator[*litObj]{Query: openWorld(objs), Max: 100, Limit: 0.0001}
	acc.Shine(Source{Origin: grid.Point{}, Init: 8, Scale: 1})

	if _, ok := objs[inside].Attribute(AttrLight); !ok {
		t.Errorf("Point %v inside the cutoff received no light", inside)
	}
	if v, ok := objs[outside].Attribute(AttrLight); ok {
		t.Errorf("Point %v beyond the cutoff stored %g, want nothing", outside, v)
	}
}

func TestOcclusionBlocksLight(t *testing.T) {
	wall := grid.Point{X: 1, Y: 0}
	behind := grid.Point{X: 2, Y: 0}
	objs := map[grid.Point]*litObj{wall: newLitObj(), behind: newLitObj()}

	query := func(p grid.Point) field.Attributes[[]*litObj] {
		at := field.Attributes[[]*litObj]{Supported: true, Blocked: p == wall}
		if o, ok := objs[p]; ok {
			at.Payload = []*litObj{o}
		}
		return at
	}

	acc := &Accumulator[*litObj]{Query: query, Max: 100, Limit: 0.01}
	acc.Shine(Source{Origin: grid.Point{}, Init: 8, Scale: 1})

	// The wall itself is lit; the tile it hides stays dark
	if got := lightOf(t, objs[wall]); got != 8 {
		t.Errorf("Light on the wall = %g, want 8", got)
	}
	if v, ok := objs[behind].Attribute(AttrLight); ok {
		t.Errorf("Tile behind the wall stored %g, want nothing", v)
	}
}

func TestAdditivityAndClamp(t *testing.T) {
	p := grid.Point{X: 0, Y: 3}
	objs := map[grid.Point]*litObj{p: newLitObj()}

	acc := &Accumulator[*litObj]{Query: openWorld(objs), Max: 1.0, Limit: 0.0001}

	// Two moderate sources stack additively below the ceiling
	acc.Shine(Source{Origin: grid.Point{X: 0, Y: 8}, Init: 2, Scale: 1})  // d^2 = 25 -> 0.08
	acc.Shine(Source{Origin: grid.Point{X: 0, Y: -2}, Init: 2, Scale: 1}) // d^2 = 25 -> 0.08

	if got := lightOf(t, objs[p]); math.Abs(got-0.16) > 1e-9 {
		t.Errorf("Stacked light = %g, want 0.16", got)
	}

	// A single overwhelming source clamps to exactly Max
	acc.Shine(Source{Origin: grid.Point{X: 0, Y: 2}, Init: 8, Scale: 1}) // d^2 = 1 -> 8
	if got := lightOf(t, objs[p]); got != 1.0 {
		t.Errorf("Clamped light = %g, want exactly 1.0", got)
	}
}

func TestScaleMultipliesContribution(t *testing.T) {
	p := grid.Point{X: 2, Y: 0}
	objs := map[grid.Point]*litObj{p: newLitObj()}

	acc := &Accumulator[*litObj]{Query: openWorld(objs), Max: 100, Limit: 0.0001}
	acc.Shine(Source{Origin: grid.Point{}, Init: 8, Scale: 0.5})

	if got := lightOf(t, objs[p]); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Scaled light = %g, want 1.0", got)
	}
}

func TestAmbient(t *testing.T) {
	a, b := newLitObj(), newLitObj()
	acc := &Accumulator[*litObj]{Max: 1.0, Limit: 0.01}

	acc.Ambient([]*litObj{a, b}, 0.3)
	if got := lightOf(t, a); got != 0.3 {
		t.Errorf("Ambient light = %g, want 0.3", got)
	}

	// Ambient stacks and clamps like source light
	acc.Ambient([]*litObj{a}, 0.8)
	if got := lightOf(t, a); got != 1.0 {
		t.Errorf("Stacked ambient = %g, want clamp at 1.0", got)
	}

	// Sub-cutoff ambient is dropped entirely
	c := newLitObj()
	acc.Ambient([]*litObj{c}, 0.001)
	if v, ok := c.Attribute(AttrLight); ok {
		t.Errorf("Sub-cutoff ambient stored %g, want nothing", v)
	}
}

func TestClearIdempotent(t *testing.T) {
	o := newLitObj()
	o.SetAttribute(AttrLight, 0.7)
	o.SetAttribute(AttrVisibleDepth, 2)
	o.SetAttribute(AttrAmbient, 0.1)

	acc := &Accumulator[*litObj]{Max: 1.0, Limit: 0.01}
	acc.Clear([]*litObj{o})

	if v, ok := o.Attribute(AttrLight); ok {
		t.Errorf("Light survived clear: %g", v)
	}
	if v, ok := o.Attribute(AttrVisibleDepth); ok {
		t.Errorf("Visible depth survived clear: %g", v)
	}
	if _, ok := o.Attribute(AttrAmbient); !ok {
		t.Error("Clear removed the ambient configuration attribute")
	}

	// Clearing twice is the same as clearing once
	acc.Clear([]*litObj{o})
	if v, ok := o.Attribute(AttrLight); ok {
		t.Errorf("Light appeared after second clear: %g", v)
	}
}

func TestSourceDefaults(t *testing.T) {
	s := Source{}
	if got := s.Intensity(); got != DefaultInit*DefaultScale {
		t.Errorf("Zero-valued source intensity = %g, want %g", got, DefaultInit*DefaultScale)
	}

	want := math.Sqrt(8.0 / 0.0001)
	if got := s.DepthLimit(0.0001); math.Abs(got-want) > 1e-9 {
		t.Errorf("Derived depth limit = %g, want %g", got, want)
	}
}
