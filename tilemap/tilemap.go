// Package tilemap provides an in-memory tile world implementing the grid
// abstraction the engine consumes: per-location support/occlusion queries,
// payload objects with named numeric attributes, and plane partitioning.
// Maps load from JSON files that pair a rune legend with rows of tiles.
package tilemap

import (
	"fmt"
	"sort"

	"chosenoffset.com/gridlight/field"
	"chosenoffset.com/gridlight/grid"
)

// Prop is a payload object occupying a tile: the tile surface itself, a
// fixture such as a torch, or anything else the game places in the world.
// Its numeric attributes carry the engine's light and visibility state.
type Prop struct {
	Name  string
	Plane string

	pos   grid.Point
	attrs map[string]float64
}

// NewProp creates a prop anchored at pos
func NewProp(name, plane string, pos grid.Point) *Prop {
	return &Prop{
		Name:  name,
		Plane: plane,
		pos:   pos,
		attrs: make(map[string]float64),
	}
}

// Attribute returns the named value and whether it has been set
func (p *Prop) Attribute(name string) (float64, bool) {
	v, ok := p.attrs[name]
	return v, ok
}

// SetAttribute stores the named value
func (p *Prop) SetAttribute(name string, value float64) {
	p.attrs[name] = value
}

// ClearAttribute removes the named value; reading it afterwards reports it
// as unset
func (p *Prop) ClearAttribute(name string) {
	delete(p.attrs, name)
}

// Position returns the tile the prop is anchored to
func (p *Prop) Position() grid.Point {
	return p.pos
}

// tile is one supported world location
type tile struct {
	blocked bool
	props   []*Prop
}

// World is a loaded map: a finite set of supported tiles, each holding the
// props placed on it. Locations outside the map, and legend entries marked
// void, are unsupported.
type World struct {
	name          string
	width, height int
	spawn         grid.Point
	tiles         map[grid.Point]*tile
	props         []*Prop // enumeration order: row-major placement order
}

// Name returns the map name
func (w *World) Name() string { return w.name }

// Width returns the map width in tiles
func (w *World) Width() int { return w.width }

// Height returns the map height in tiles
func (w *World) Height() int { return w.height }

// Spawn returns the map's designated viewer start position
func (w *World) Spawn() grid.Point { return w.spawn }

// Query reports whether a location exists, whether it occludes sight, and
// the props currently on it. It satisfies the engine's query contract.
func (w *World) Query(p grid.Point) field.Attributes[[]*Prop] {
	t, ok := w.tiles[p]
	if !ok {
		return field.Attributes[[]*Prop]{}
	}
	return field.Attributes[[]*Prop]{
		Supported: true,
		Blocked:   t.blocked,
		Payload:   t.props,
	}
}

// Objects enumerates every prop in the world, filtered by keep. A nil keep
// returns all props. Order is stable across calls.
func (w *World) Objects(keep func(*Prop) bool) []*Prop {
	var out []*Prop
	for _, p := range w.props {
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// PropsAt returns the props on a location, or nil if it is unsupported
func (w *World) PropsAt(p grid.Point) []*Prop {
	t, ok := w.tiles[p]
	if !ok {
		return nil
	}
	return t.props
}

// Place adds a prop to the tile it is anchored to. Placing onto an
// unsupported location is an error.
func (w *World) Place(prop *Prop) error {
	t, ok := w.tiles[prop.pos]
	if !ok {
		return fmt.Errorf("cannot place %q at unsupported location (%d, %d)", prop.Name, prop.pos.X, prop.pos.Y)
	}
	t.props = append(t.props, prop)
	w.props = append(w.props, prop)
	return nil
}

// Planes returns the distinct plane names used by the world's props,
// sorted for deterministic iteration.
func (w *World) Planes() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range w.props {
		if !seen[p.Plane] {
			seen[p.Plane] = true
			names = append(names, p.Plane)
		}
	}
	sort.Strings(names)
	return names
}
