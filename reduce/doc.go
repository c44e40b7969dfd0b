// Package reduce implements dimensionality reduction for the
// integration pipeline.
//
// The Reducer interface abstracts the reduction step so alternative
// methods can be substituted without touching sample alignment or
// concatenation. PCA is the built-in implementation: column-centered
// (optionally variance-scaled) thin SVD with a deterministic component
// orientation, so repeated runs on identical input are bit-for-bit
// reproducible.
//
// Resolve and ResolveJoint implement the component-count policy:
// defaults, mathematical ceilings, and clamping.
package reduce
