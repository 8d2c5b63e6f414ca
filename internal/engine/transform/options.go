package transform

// DefaultDecomposeEpsilon is the default threshold below which a matrix
// determinant or axis length is treated as degenerate.
const DefaultDecomposeEpsilon = 1e-6

var decomposeEpsilon = DefaultDecomposeEpsilon

// SetDecomposeEpsilon changes the degeneracy threshold used by
// SetLocalMatrix and SetWorldMatrix. Non-positive values restore the
// default.
func SetDecomposeEpsilon(eps float64) {
	if eps <= 0 {
		eps = DefaultDecomposeEpsilon
	}
	decomposeEpsilon = eps
}

// DecomposeEpsilon returns the current degeneracy threshold.
func DecomposeEpsilon() float64 {
	return decomposeEpsilon
}
