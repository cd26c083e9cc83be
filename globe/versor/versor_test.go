package versor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRotationIdentity(t *testing.T) {
	assert.True(t, FromRotation([3]float64{}).Equivalent(Identity, 1e-15))
	assert.Equal(t, [3]float64{}, Identity.Rotation())
}

func TestRotationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := Identity
	for i := 0; i < 1000; i++ {
		v0 := Cartesian(rng.Float64()*360-180, rng.Float64()*170-85)
		v1 := Cartesian(rng.Float64()*360-180, rng.Float64()*170-85)
		q = Multiply(q, Delta(v0, v1)).Normalize()

		r := q.Rotation()
		if math.Abs(r[1]) > 89 {
			// Gimbal region: lambda and gamma are not separable.
			continue
		}
		back := FromRotation(r)
		require.True(t, back.Equivalent(q, 1e-9), "step %d: %v != %v", i, back, q)
	}
}

func TestDeltaRotatesV0OntoV1(t *testing.T) {
	v0 := Cartesian(10, 20)
	v1 := Cartesian(40, -5)
	d := Delta(v0, v1)
	assert.InDelta(t, 1, d.Norm(), 1e-12)
	assert.InDelta(t, math.Cos(math.Acos(v0.Dot(v1))/2), d.Scalar(), 1e-12)
}

func TestDeltaParallel(t *testing.T) {
	v := r3.Vector{X: 1}
	assert.Equal(t, Identity, Delta(v, v))
}

func TestDeltaScalarDropsNearAntipode(t *testing.T) {
	v0 := Cartesian(0, 0)
	v1 := Cartesian(179, 0)
	assert.Less(t, Delta(v0, v1).Scalar(), 0.7)
}

func TestMultiplyIdentity(t *testing.T) {
	q := FromRotation([3]float64{33, -12, 4})
	assert.True(t, Multiply(Identity, q).Equivalent(q, 1e-15))
	assert.True(t, Multiply(q, Identity).Equivalent(q, 1e-15))
}

func TestFromRotationComposesRollTiltLongitude(t *testing.T) {
	r := [3]float64{25, 40, -70}
	want := FromRotation(r)
	got := Multiply(Multiply(
		FromRotation([3]float64{0, 0, r[2]}),
		FromRotation([3]float64{0, r[1], 0})),
		FromRotation([3]float64{r[0], 0, 0}))
	assert.True(t, got.Equivalent(want, 1e-12))
}

func TestTwist(t *testing.T) {
	q := Twist(math.Pi / 4)
	assert.InDelta(t, 1, q.Norm(), 1e-12)
	assert.InDelta(t, math.Cos(math.Pi/4), q[0], 1e-12)
	assert.InDelta(t, -math.Sin(math.Pi/4), q[3], 1e-12)
	assert.InDelta(t, -90, q.Rotation()[2], 1e-9)
	assert.Equal(t, Identity, Twist(0))
}

func TestCartesianIsUnit(t *testing.T) {
	for _, c := range [][2]float64{{0, 0}, {90, 0}, {-45, 60}, {180, -90}} {
		v := Cartesian(c[0], c[1])
		assert.InDelta(t, 1, v.Norm(), 1e-12)
	}
	v := Cartesian(90, 0)
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 1, v.Y, 1e-12)
}
