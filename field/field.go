// Package field implements symmetric shadowcasting over an arbitrary
// point-based grid. Cast walks outward from an origin, asking a caller
// query which locations exist and which occlude, and visits every location
// with an unobstructed line of sight to the origin exactly once.
//
// The payload type is opaque to the traversal: the iterator only carries
// whatever the query attaches to a location through to the visitor.
package field

import (
	"math"

	"chosenoffset.com/gridlight/grid"
)

// Attributes describes a single queried location
type Attributes[At any] struct {
	Supported bool // is this location part of the world at all?
	Blocked   bool // does it occlude sight past itself?
	Payload   At   // caller data carried through to the visitor
}

// Query reports the attributes of a location. Overlapping quadrant scans
// may query the same location more than once per Cast; only visits are
// deduplicated. Queries must be cheap and side-effect free.
type Query[At any] func(p grid.Point) Attributes[At]

// Visit receives each visible location together with the ring depth at
// which it was reached and the payload the query attached to it.
type Visit[At any] func(p grid.Point, depth int, payload At)

// row is an active scan frontier: the slope interval still open at a
// given depth within one quadrant.
type row struct {
	depth      int
	startSlope float64
	endSlope   float64
}

// quadrant maps (depth, col) scan coordinates into world offsets. The four
// instances decompose the full sweep into 90-degree sectors.
type quadrant struct {
	dx, dy int // depth axis direction
	cx, cy int // column axis direction
}

var quadrants = [4]quadrant{
	{0, -1, 1, 0}, // north
	{1, 0, 0, 1},  // east
	{0, 1, 1, 0},  // south
	{-1, 0, 0, 1}, // west
}

func (q quadrant) transform(origin grid.Point, depth, col int) grid.Point {
	return grid.Point{
		X: origin.X + depth*q.dx + col*q.cx,
		Y: origin.Y + depth*q.dy + col*q.cy,
	}
}

// Cast traverses the field visible from origin, visiting each reachable
// location at most once. Expansion stops past occluding locations, when a
// row's slope interval closes, or once depth exceeds depthLimit.
//
// Blocked locations are themselves visited (walls can be seen and lit) but
// nothing behind them in the same angular sector is. Unsupported locations
// are never visited and halt expansion along their path. An unsupported
// origin produces no visits at all.
func Cast[At any](origin grid.Point, query Query[At], depthLimit float64, visit Visit[At]) {
	at := query(origin)
	if !at.Supported {
		return
	}

	// The quadrants overlap along their shared diagonals and axes; the
	// visited-set keyed by packed coordinates suppresses the redundant
	// deliveries so every point is reported at most once per call.
	seen := map[uint64]struct{}{grid.Key(origin): {}}
	visit(origin, 0, at.Payload)

	for _, q := range quadrants {
		castQuadrant(origin, q, query, depthLimit, seen, visit)
	}
}

func castQuadrant[At any](origin grid.Point, q quadrant, query Query[At], depthLimit float64, seen map[uint64]struct{}, visit Visit[At]) {
	rows := []row{{depth: 1, startSlope: -1, endSlope: 1}}

	for len(rows) > 0 {
		r := rows[len(rows)-1]
		rows = rows[:len(rows)-1]

		if float64(r.depth) > depthLimit {
			continue
		}

		// Round half toward the interval interior so a tile is scanned
		// only when its center falls inside the slope bounds.
		minCol := int(math.Floor(float64(r.depth)*r.startSlope + 0.5))
		maxCol := int(math.Ceil(float64(r.depth)*r.endSlope - 0.5))
		if minCol > maxCol {
			continue
		}

		restartSlope := r.startSlope
		prev := scanNone

		for col := minCol; col <= maxCol; col++ {
			p := q.transform(origin, r.depth, col)
			at := query(p)
			tileSlope := (2*float64(col) - 1) / (2 * float64(r.depth))

			if at.Blocked || !at.Supported {
				if at.Supported {
					emit(seen, visit, p, r.depth, at.Payload)
				}
				if prev == scanOpen {
					// Close off the arc in front of the obstruction and
					// continue it on the next ring.
					rows = append(rows, row{depth: r.depth + 1, startSlope: restartSlope, endSlope: tileSlope})
				}
				prev = scanBlocked
				continue
			}

			// Symmetric visibility: the tile center must lie within the
			// currently open slope interval at this depth.
			c := float64(col)
			d := float64(r.depth)
			if c >= d*restartSlope && c <= d*r.endSlope {
				emit(seen, visit, p, r.depth, at.Payload)
			}
			if prev == scanBlocked {
				// Reopen visibility just past the obstruction.
				restartSlope = tileSlope
			}
			prev = scanOpen
		}

		if prev == scanOpen {
			rows = append(rows, row{depth: r.depth + 1, startSlope: restartSlope, endSlope: r.endSlope})
		}
	}
}

// scan states for the previous column in a row
const (
	scanNone = iota
	scanOpen
	scanBlocked
)

func emit[At any](seen map[uint64]struct{}, visit Visit[At], p grid.Point, depth int, payload At) {
	k := grid.Key(p)
	if _, dup := seen[k]; dup {
		return
	}
	seen[k] = struct{}{}
	visit(p, depth, payload)
}
