package tabulatedfunction

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// locateLinear is the reference search: scan every interval.
func (f *TabulatedFunction) locateLinear(xi float64) int {
	p := f.table.P
	for l := 0; l < len(p)-2; l++ {
		if xi < p[l+1].X {
			return l
		}
	}
	return len(p) - 2
}

func irregular(t *testing.T, r *rand.Rand, n int) *TabulatedFunction {
	xs, ys := randomTable(r, n, func(x float64) float64 { return x })
	f := New()
	require.NoError(t, f.ConfigureXY(xs, ys))
	require.Zero(t, f.GetStep())
	return f
}

func inside(f *TabulatedFunction, r *rand.Rand) float64 {
	lo, hi := f.LowestIndependentValue(), f.HighestIndependentValue()
	for {
		x := lo + r.Float64()*(hi-lo)
		if x > lo && x < hi {
			return x
		}
	}
}

func TestLocateNearMatchesScan(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, n := range []int{3, 4, 17, 200} {
		f := irregular(t, r, n)
		tbl := f.ExtractTable(-1)

		// Random order.
		for i := 0; i < 2000; i++ {
			x := inside(f, r)
			want := f.locateLinear(x)
			f.F(x)
			require.Equal(t, want, f.last, "n=%d x=%v", n, x)
		}

		// Sweeps in both directions, including every table point.
		lo, hi := tbl[0].X, tbl[len(tbl)-1].X
		step := (hi - lo) / 997
		for x := lo + step/2; x < hi; x += step {
			require.Equal(t, f.locateLinear(x), f.locateNear(x))
			f.F(x)
		}
		for x := hi - step/3; x > lo; x -= step {
			require.Equal(t, f.locateLinear(x), f.locateNear(x))
			f.F(x)
		}
		for i := len(tbl) - 2; i > 0; i-- {
			f.F(tbl[i].X)
			require.Equal(t, i, f.last)
		}
	}
}

func TestLocateNearFromAnyCursor(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	f := irregular(t, r, 40)
	for i := 0; i < 500; i++ {
		x := inside(f, r)
		for c := -1; c <= f.TableSize(); c++ {
			f.last = c
			require.Equal(t, f.locateLinear(x), f.locateNear(x), "cursor=%d x=%v", c, x)
		}
	}
}

func TestLocateUniformMatchesScan(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	for _, n := range []int{2, 3, 10, 1001} {
		f := New()
		require.NoError(t, f.ConfigureFunc(n, -3.7, 12.1, func(x float64, _ any) float64 { return x * x }, nil))
		require.NotZero(t, f.GetStep())
		for i := 0; i < 2000; i++ {
			x := inside(f, r)
			require.Equal(t, f.locateLinear(x), f.locateUniform(x), "n=%d x=%v", n, x)
		}
		for _, p := range f.ExtractTable(-1) {
			if p.X > f.LowestIndependentValue() && p.X < f.HighestIndependentValue() {
				require.Equal(t, f.locateLinear(p.X), f.locateUniform(p.X))
			}
		}
	}
}

func BenchmarkSweep(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	xs, ys := randomTable(r, 1000, func(x float64) float64 { return x })
	f := NewSpline(true)
	if err := f.ConfigureXY(xs, ys); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.F(float64(i%10000) / 1000)
	}
}
