package tabulatedfunction

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubicSamples() []TFPoint {
	return []TFPoint{{0, 0}, {1, 1}, {2, 8}, {3, 27}}
}

func randomTable(r *rand.Rand, n int, fn func(float64) float64) ([]float64, []float64) {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = r.Float64() * 10
	}
	sort.Float64s(xs)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = fn(x)
	}
	return xs, ys
}

func TestSplineCubicSamples(t *testing.T) {
	direct := NewSpline(true)
	require.NoError(t, direct.Configure(cubicSamples()))
	t.Logf("%v\n", direct)

	assert.InDelta(t, 3.375, direct.F(1.5), 0.25)
	assert.Equal(t, 1.0, direct.DydxLow())
	assert.Equal(t, 19.0, direct.DydxHigh())
	// Natural ends: a straight line from the first point along dydx_low.
	assert.Equal(t, 0.0-1.0*direct.DydxLow(), direct.F(-1))

	d2 := direct.Method().(*Spline).SecondDerivatives()
	assert.InDeltaSlice(t, []float64{0, 4.8, 16.8, 0}, d2, 1e-9)
}

func TestSplineEstimatedBoundary(t *testing.T) {
	f := NewSpline(false)
	require.NoError(t, f.Configure(cubicSamples()))

	d2 := f.Method().(*Spline).SecondDerivatives()
	assert.InDeltaSlice(t, []float64{-2.4, 4.8, 19.2, -9.6}, d2, 1e-9)
	assert.InDelta(t, 3.0, f.F(1.5), 1e-12)

	// Extrapolation bends with the end curvature.
	h := 1.0
	assert.InDelta(t, 0-h*1-0.5*h*h*(-2.4), f.F(-1), 1e-12)
	assert.InDelta(t, 27+h*19+0.5*h*h*(-9.6), f.F(4), 1e-12)
}

func TestSplineReproducesSamples(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, natural := range []bool{true, false} {
		for n := 3; n < 40; n += 6 {
			xs, ys := randomTable(r, n, math.Sin)
			f := NewSpline(natural)
			require.NoError(t, f.ConfigureXY(xs, ys))
			for i, p := range f.ExtractTable(-1) {
				assert.Equal(t, p.Y, f.F(p.X), "natural=%v n=%d i=%d", natural, n, i)
			}
		}
	}
}

func TestSplineContinuity(t *testing.T) {
	const e = 1e-6

	r := rand.New(rand.NewSource(1))
	xs, ys := randomTable(r, 9, math.Cos)
	for _, natural := range []bool{true, false} {
		f := NewSpline(natural)
		require.NoError(t, f.ConfigureXY(xs, ys))
		tbl := f.ExtractTable(-1)
		for i := 1; i < len(tbl)-1; i++ {
			x := tbl[i].X
			below, at, above := f.F(x-e), f.F(x), f.F(x+e)
			assert.InDelta(t, below, above, 1e-5, "value at knot %d", i)
			dl := (at - below) / e
			dr := (above - at) / e
			assert.InDelta(t, dl, dr, 1e-4, "slope at knot %d", i)
		}
	}
}

func TestNaturalExtrapolationIsAffine(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	xs, ys := randomTable(r, 12, func(x float64) float64 { return x*x - 3*x })
	f := NewSpline(true)
	require.NoError(t, f.ConfigureXY(xs, ys))

	lo, hi := f.LowestIndependentValue(), f.HighestIndependentValue()
	for _, h := range []float64{0.5, 1, 2, 7} {
		assert.InDelta(t, f.LowestDependentValue()-h*f.DydxLow(), f.F(lo-h), 1e-9)
		assert.InDelta(t, f.HighestDependentValue()+h*f.DydxHigh(), f.F(hi+h), 1e-9)
	}
	// Equal steps give equal increments.
	assert.InDelta(t, f.F(hi+2)-f.F(hi+1), f.F(hi+1)-f.F(hi), 1e-9)
}

func TestSetNaturalBoundary(t *testing.T) {
	xs := []float64{0, 0.4, 1.1, 2, 2.2, 3.5}
	ys := []float64{1, 0.2, -0.5, 0.3, 0.9, 2}

	f := NewSpline(false)
	require.NoError(t, f.ConfigureXY(xs, ys))
	estimated := f.FAll([]float64{-1, 0.2, 1.5, 2.1, 4}, nil)

	require.NoError(t, f.SetNaturalBoundary(true))
	fresh := NewSpline(true)
	require.NoError(t, fresh.ConfigureXY(xs, ys))
	probe := []float64{-1, 0.2, 1.5, 2.1, 4}
	assert.Equal(t, fresh.FAll(probe, nil), f.FAll(probe, nil))

	require.NoError(t, f.SetNaturalBoundary(false))
	assert.Equal(t, estimated, f.FAll(probe, nil))

	// Toggling an unconfigured spline only records the choice.
	g := NewSpline(true)
	require.NoError(t, g.SetNaturalBoundary(false))
	assert.False(t, g.Method().(*Spline).Natural)
	assert.Equal(t, 2.0, g.F(2))
}

func TestSetNaturalBoundaryOnLinear(t *testing.T) {
	err := New().SetNaturalBoundary(true)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSplineMinimumSize(t *testing.T) {
	f := NewSpline(true)
	err := f.Configure([]TFPoint{{0, 0}, {1, 1}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.False(t, f.IsConfigured())

	require.NoError(t, New().Configure([]TFPoint{{0, 0}, {1, 1}}))
}

func TestSplineIntegrate(t *testing.T) {
	f := NewSpline(true)
	require.NoError(t, f.ConfigureFunc(12, 0, 3.3, func(x float64, _ any) float64 {
		return math.Sin(x)
	}, nil))
	assert.InDelta(t, 1-math.Cos(3.3), f.Integrate(), 1e-3)

	g := NewSpline(true)
	require.NoError(t, g.Configure(cubicSamples()))
	assert.InDelta(t, 20.7, g.Integrate(), 1e-12)
}

func TestSplineAccuracy(t *testing.T) {
	f := NewSpline(true)
	require.NoError(t, f.ConfigureFunc(12, 0, 3.3, func(x float64, _ any) float64 {
		return math.Sin(x)
	}, nil))
	for x := 0.0; x <= 3.3; x += 0.01 {
		assert.InDelta(t, math.Sin(x), f.F(x), 1e-3, "x=%v", x)
	}
}
