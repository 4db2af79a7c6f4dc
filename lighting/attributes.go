// Package lighting accumulates illumination over a point-based grid. Light
// values live as named numeric attributes on the caller's world objects;
// the package adds inverse-square contributions from point sources, flat
// ambient contributions, and clears previous results between passes.
package lighting

// Attribute names under which the engine stores its per-object state.
// The surrounding tile system owns the objects; the engine only reads and
// writes these entries through the Attributed interface.
const (
	AttrLight        = "light"         // accumulated illumination, [0, Max]
	AttrVisibleDepth = "visible_depth" // minimum reveal depth this pass
	AttrAmbient      = "ambient"       // flat self-illumination level
	AttrEmit         = "emit"          // base strength of an emitting fixture
	AttrEmitScale    = "emit_scale"    // optional multiplier for AttrEmit
)

// Attributed is implemented by world objects that carry named numeric
// values. An attribute that was never set (or was cleared) reads back as
// absent, which the engine treats as zero.
type Attributed interface {
	Attribute(name string) (float64, bool)
	SetAttribute(name string, value float64)
	ClearAttribute(name string)
}
