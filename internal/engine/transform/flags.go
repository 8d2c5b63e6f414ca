package transform

import "strings"

// Flags is a bitmask of derived values whose cached copy is stale.
type Flags uint8

// Single dirty bits, one per derived value.
const (
	LocalEuler Flags = 1 << iota
	LocalQuat
	WorldPosition
	WorldEuler
	WorldQuat
	WorldScale
	LocalMatrix
	WorldMatrix
)

// Named unions used by the propagator. Wm = world matrix, Wp = world
// position, We/Wq = world Euler/quaternion, Ws = world scale.
const (
	WmWp       = WorldMatrix | WorldPosition
	WmWeWq     = WorldMatrix | WorldEuler | WorldQuat
	WmWpWeWq   = WmWp | WmWeWq
	WmWs       = WorldMatrix | WorldScale
	WmWpWs     = WmWp | WorldScale
	WmWpWeWqWs = WmWpWeWq | WorldScale
)

// Test reports whether every bit in mask is set.
func (f Flags) Test(mask Flags) bool {
	return f&mask == mask
}

// TestAny reports whether at least one bit in mask is set.
func (f Flags) TestAny(mask Flags) bool {
	return f&mask != 0
}

// Set marks the bits in mask.
func (f *Flags) Set(mask Flags) {
	*f |= mask
}

// Clear unmarks the bits in mask.
func (f *Flags) Clear(mask Flags) {
	*f &^= mask
}

var flagNames = [...]string{
	"LocalEuler",
	"LocalQuat",
	"WorldPosition",
	"WorldEuler",
	"WorldQuat",
	"WorldScale",
	"LocalMatrix",
	"WorldMatrix",
}

func (f Flags) String() string {
	if f == 0 {
		return "clean"
	}
	var parts []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
