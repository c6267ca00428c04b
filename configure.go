package tabulatedfunction

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// uniformTolerance is the relative deviation from the nominal step below
// which a table still counts as uniformly spaced.
const uniformTolerance = 1.0e-6

// MapFunc generates the dependent value at x. ctx is whatever was handed to
// ConfigureFunc.
type MapFunc func(x float64, ctx any) float64

// Configure loads the table from points. The points are copied, sorted by X
// and stripped of repeated X values (the first one given wins). An empty
// points releases the table and leaves f unconfigured.
//
// Errors wrap ErrInvalidConfiguration or ErrAllocation. A failure found
// before the table is touched keeps the previous configuration; a later one
// leaves f unconfigured.
func (f *TabulatedFunction) Configure(points []TFPoint) error {
	n := len(points)
	if n == 0 {
		f.release()
		return nil
	}
	if err := f.checkSize(n); err != nil {
		return err
	}
	for i := range points {
		if !finite(points[i].X) {
			return fmt.Errorf("%w: point %d has independent value %v", ErrInvalidConfiguration, i, points[i].X)
		}
	}
	return f.load(n, func(p []TFPoint) {
		copy(p, points)
	})
}

// ConfigureXY loads the table from parallel slices of independent and
// dependent values.
func (f *TabulatedFunction) ConfigureXY(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d independent and %d dependent values", ErrInvalidConfiguration, len(xs), len(ys))
	}
	n := len(xs)
	if n == 0 {
		f.release()
		return nil
	}
	if err := f.checkSize(n); err != nil {
		return err
	}
	for i, x := range xs {
		if !finite(x) {
			return fmt.Errorf("%w: independent value %d is %v", ErrInvalidConfiguration, i, x)
		}
	}
	return f.load(n, func(p []TFPoint) {
		for i := range p {
			p[i] = TFPoint{X: xs[i], Y: ys[i]}
		}
	})
}

// ConfigureRange loads ys at evenly spaced independent values from xmin to
// xmax inclusive.
func (f *TabulatedFunction) ConfigureRange(xmin, xmax float64, ys []float64) error {
	n := len(ys)
	if n == 0 {
		f.release()
		return nil
	}
	if err := f.checkSize(n); err != nil {
		return err
	}
	xmin, xmax, err := checkRange(xmin, xmax)
	if err != nil {
		return err
	}
	return f.load(n, func(p []TFPoint) {
		for i := range p {
			p[i] = TFPoint{X: gridX(xmin, xmax, i, n), Y: ys[i]}
		}
	})
}

// ConfigureFunc loads n points of fn sampled evenly from xmin to xmax
// inclusive.
func (f *TabulatedFunction) ConfigureFunc(n int, xmin, xmax float64, fn MapFunc, ctx any) error {
	if n < 0 {
		return fmt.Errorf("%w: negative table length %d", ErrInvalidConfiguration, n)
	}
	if n == 0 {
		f.release()
		return nil
	}
	if fn == nil {
		return fmt.Errorf("%w: no map function", ErrInvalidConfiguration)
	}
	if err := f.checkSize(n); err != nil {
		return err
	}
	xmin, xmax, err := checkRange(xmin, xmax)
	if err != nil {
		return err
	}
	return f.load(n, func(p []TFPoint) {
		for i := range p {
			x := gridX(xmin, xmax, i, n)
			p[i] = TFPoint{X: x, Y: fn(x, ctx)}
		}
	})
}

func (f *TabulatedFunction) minEntries() int {
	if n := f.m().MinEntries(); n > 2 {
		return n
	}
	return 2
}

func (f *TabulatedFunction) checkSize(n int) error {
	if n < f.minEntries() {
		return fmt.Errorf("%w: table length %d, %s needs at least %d", ErrInvalidConfiguration, n, f.m().Name(), f.minEntries())
	}
	if n > MaxEntries {
		return fmt.Errorf("%w: table length %d (limit %d)", ErrAllocation, n, MaxEntries)
	}
	return nil
}

func checkRange(xmin, xmax float64) (float64, float64, error) {
	if !finite(xmin) || !finite(xmax) {
		return 0, 0, fmt.Errorf("%w: range [%v, %v]", ErrInvalidConfiguration, xmin, xmax)
	}
	if xmax < xmin {
		xmin, xmax = xmax, xmin
	}
	if xmax == xmin {
		return 0, 0, fmt.Errorf("%w: empty range at %v", ErrInvalidConfiguration, xmin)
	}
	if !finite(xmax - xmin) {
		return 0, 0, fmt.Errorf("%w: range [%v, %v] overflows", ErrInvalidConfiguration, xmin, xmax)
	}
	return xmin, xmax, nil
}

// gridX is the i-th of n evenly spaced values; the last one is exactly xmax.
func gridX(xmin, xmax float64, i, n int) float64 {
	if i == n-1 {
		return xmax
	}
	return xmin + (xmax-xmin)*(float64(i)/float64(n-1))
}

// load fills the table storage through fill, normalizes it and derives the
// rest of the configuration.
func (f *TabulatedFunction) load(n int, fill func([]TFPoint)) error {
	p, err := reuse(f.table.P, n)
	if err != nil {
		f.release()
		return err
	}
	fill(p)

	slices.SortStableFunc(p, func(a, b TFPoint) int {
		return cmp.Compare(a.X, b.X)
	})
	p = slices.CompactFunc(p, func(a, b TFPoint) bool {
		return a.X == b.X
	})
	if len(p) < f.minEntries() {
		f.release()
		return fmt.Errorf("%w: %d distinct independent values, %s needs at least %d",
			ErrInvalidConfiguration, len(p), f.m().Name(), f.minEntries())
	}

	j := len(p) - 1
	f.table.P = p
	f.table.DydxLow = (p[1].Y - p[0].Y) / (p[1].X - p[0].X)
	f.table.DydxHigh = (p[j].Y - p[j-1].Y) / (p[j].X - p[j-1].X)
	f.istep = uniformStep(p)

	if err := f.m().Derive(&f.table); err != nil {
		f.release()
		return err
	}
	f.last = j / 2
	return nil
}

// release drops the table and the method's derived state.
func (f *TabulatedFunction) release() {
	f.table = Table{}
	f.istep = 0
	f.last = 0
	f.m().Release()
}

// uniformStep returns the X spacing when every interval matches it within
// uniformTolerance, and 0 otherwise.
func uniformStep(p []TFPoint) float64 {
	n := len(p)
	step := (p[n-1].X - p[0].X) / float64(n-1)
	if !finite(step) {
		return 0
	}
	tol := uniformTolerance * step
	for i := 1; i < n; i++ {
		if math.Abs(p[i].X-p[i-1].X-step) > tol {
			return 0
		}
	}
	return step
}
