// Package testutil provides deterministic synthetic data for tests,
// benchmarks and examples: a seeded thread-safe RNG and generators for
// random measurement matrices and sample identifier lists.
package testutil
