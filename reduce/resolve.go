package reduce

// DefaultComponents is the component count used when a target
// dimensionality is not configured.
const DefaultComponents = 10

// Resolve returns the effective component count for one modality with
// n samples and f features. requested <= 0 means "not configured".
//
// An explicitly requested k is capped at min(n, f); an unconfigured
// modality gets DefaultComponents, lowered to min(n, f)-1 when the
// default exceeds it. clamped reports whether the requested (or
// default) count was lowered, which callers surface as a warning.
//
// ErrInsufficientRank is returned when min(n, f) <= 1: such a modality
// (single sample, or single feature) has nothing to reduce.
func Resolve(requested, n, f int) (k int, clamped bool, err error) {
	r := n
	if f < r {
		r = f
	}
	if r <= 1 {
		return 0, false, &ErrInsufficientRank{Samples: n, Features: f}
	}

	if requested > 0 {
		if requested > r {
			return r, true, nil
		}
		return requested, false, nil
	}

	ceiling := r - 1
	if DefaultComponents > ceiling {
		return ceiling, true, nil
	}
	return DefaultComponents, false, nil
}

// ResolveJoint returns the effective component count for the joint
// reduction over n retained samples and a concatenated width w.
//
// Both configured and default counts are clamped to min(n, w)-1.
// ErrInsufficientRank is returned when that ceiling is below 1
// (a single retained sample).
func ResolveJoint(requested, n, w int) (k int, clamped bool, err error) {
	ceiling := n
	if w < ceiling {
		ceiling = w
	}
	ceiling--
	if ceiling < 1 {
		return 0, false, &ErrInsufficientRank{Samples: n, Features: w}
	}

	target := requested
	if target <= 0 {
		target = DefaultComponents
	}
	if target > ceiling {
		return ceiling, true, nil
	}
	return target, false, nil
}
