package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Explicit(t *testing.T) {
	k, clamped, err := Resolve(2, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, k)
	assert.False(t, clamped)

	// Explicit k equal to min(n, f) is accepted unclamped.
	k, clamped, err = Resolve(3, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, k)
	assert.False(t, clamped)

	// Above the ceiling: clamp and report it.
	k, clamped, err = Resolve(7, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, k)
	assert.True(t, clamped)
}

func TestResolve_Default(t *testing.T) {
	// Plenty of room: the fixed default applies.
	k, clamped, err := Resolve(0, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, DefaultComponents, k)
	assert.False(t, clamped)

	// Default exceeds min(n, f)-1: lowered, recorded as a clamp.
	k, clamped, err = Resolve(0, 5, 50)
	require.NoError(t, err)
	assert.Equal(t, 4, k)
	assert.True(t, clamped)
}

func TestResolve_InsufficientRank(t *testing.T) {
	var ir *ErrInsufficientRank

	_, _, err := Resolve(1, 1, 50) // single sample
	require.ErrorAs(t, err, &ir)
	assert.Equal(t, 1, ir.Samples)

	_, _, err = Resolve(1, 50, 1) // single feature
	assert.ErrorAs(t, err, &ir)
}

func TestResolveJoint(t *testing.T) {
	// 2 retained samples, width 5: ceiling is min(2,5)-1 = 1.
	k, clamped, err := ResolveJoint(4, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, k)
	assert.True(t, clamped)

	// Default path with room.
	k, clamped, err = ResolveJoint(0, 100, 40)
	require.NoError(t, err)
	assert.Equal(t, DefaultComponents, k)
	assert.False(t, clamped)

	// Single retained sample: nothing to reduce.
	var ir *ErrInsufficientRank
	_, _, err = ResolveJoint(2, 1, 5)
	assert.ErrorAs(t, err, &ir)
}
