package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	a := Box{Center: Vec2{0, 0}, Size: Vec2{16, 24}}

	cases := []struct {
		name string
		b    Box
		want bool
	}{
		{"identical", a, true},
		{"inside", Box{Center: Vec2{3, 3}, Size: Vec2{2, 2}}, true},
		{"touching on x", Box{Center: Vec2{16, 0}, Size: Vec2{16, 24}}, false},
		{"touching on y", Box{Center: Vec2{0, 24}, Size: Vec2{16, 24}}, false},
		{"overlap on x only", Box{Center: Vec2{4, 100}, Size: Vec2{16, 24}}, false},
		{"corner overlap", Box{Center: Vec2{15, 23}, Size: Vec2{16, 24}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(a, tc.b))
			assert.Equal(t, tc.want, Overlaps(tc.b, a))
		})
	}
}

func TestClampAxis(t *testing.T) {
	assert.Equal(t, 82.0, ClampAxis(500, 180, 16))
	assert.Equal(t, -82.0, ClampAxis(-500, 180, 16))
	assert.Equal(t, 10.0, ClampAxis(10, 180, 16))
	assert.Equal(t, 0.0, ClampAxis(30, 10, 16), "oversized objects pin to the midpoint")
	assert.Equal(t, 0.0, HalfRange(10, 16))
}

func TestDirectionalVelocity(t *testing.T) {
	v := DirectionalVelocity(1, 1, 100)
	require.InDelta(t, 70.71, v.X, 0.01)
	require.InDelta(t, 70.71, v.Y, 0.01)
	require.InDelta(t, 100, v.Len(), 1e-9)

	assert.Equal(t, Vec2{-100, 0}, DirectionalVelocity(-1, 0, 100))
	assert.Equal(t, Vec2{0, 0}, DirectionalVelocity(0, 0, 100))
}

func TestBoxEdges(t *testing.T) {
	b := Box{Center: Vec2{10, -4}, Size: Vec2{4, 8}}
	assert.Equal(t, Vec2{8, -8}, b.Min())
	assert.Equal(t, Vec2{12, 0}, b.Max())
}
