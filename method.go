package tabulatedfunction

import (
	"fmt"
	"math"
)

// MaxEntries is the largest table a single function will hold.
const MaxEntries = 1 << 26

// Table is the normalized sample table an evaluation Method works against.
// P is sorted strictly ascending by X. DydxLow and DydxHigh start out as the
// first differences of the two lowest and two highest points; a Method may
// adjust them in Derive.
type Table struct {
	P                 []TFPoint
	DydxLow, DydxHigh float64
}

// Method is the evaluation strategy of a TabulatedFunction. The function
// owns the table, the search and the configuration lifecycle; the Method
// supplies the size policy, any derived state and the three formulas.
//
// Interpolate is only called with 0 <= l < len(t.P)-1 and
// t.P[l].X <= x < t.P[l+1].X.
type Method interface {
	Name() string
	MinEntries() int
	// Derive runs once the table and the end slopes are final.
	Derive(t *Table) error
	// Release drops derived buffers.
	Release()
	ExtrapolateLow(t *Table, x float64) float64
	ExtrapolateHigh(t *Table, x float64) float64
	Interpolate(t *Table, x float64, l int) float64
	// IntegrateSegment returns the integral of the interpolant over
	// [t.P[l].X, t.P[l+1].X].
	IntegrateSegment(t *Table, l int) float64
	// Clone returns an unconfigured copy carrying the same settings.
	Clone() Method
}

// Boundary is a Method with selectable end conditions.
type Boundary interface {
	Method
	IsNatural() bool
	SetNatural(natural bool)
}

var (
	_ Method   = Linear{}
	_ Boundary = &Spline{}
)

// MethodByName returns a fresh method for a name produced by Method.Name.
// natural only applies to "spline".
func MethodByName(name string, natural bool) (Method, error) {
	switch name {
	case "", "linear":
		return Linear{}, nil
	case "spline":
		return &Spline{Natural: natural}, nil
	}
	return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidConfiguration, name)
}

// Linear is piecewise-linear interpolation with linear extrapolation along
// the end slopes.
type Linear struct{}

func (Linear) Name() string { return "linear" }

func (Linear) MinEntries() int { return 2 }

func (Linear) Derive(_ *Table) error { return nil }

func (Linear) Release() {}

func (Linear) Clone() Method { return Linear{} }

func (Linear) ExtrapolateLow(t *Table, x float64) float64 {
	p := t.P[0]
	return p.Y - (p.X-x)*t.DydxLow
}

func (Linear) ExtrapolateHigh(t *Table, x float64) float64 {
	p := t.P[len(t.P)-1]
	return p.Y + (x-p.X)*t.DydxHigh
}

func (Linear) Interpolate(t *Table, x float64, l int) float64 {
	pl, pr := t.P[l], t.P[l+1]
	wl := (pr.X - x) / (pr.X - pl.X)
	wr := 1.0 - wl
	return wl*pl.Y + wr*pr.Y
}

func (Linear) IntegrateSegment(t *Table, l int) float64 {
	pl, pr := t.P[l], t.P[l+1]
	return (pr.X - pl.X) * (pl.Y + pr.Y) / 2
}

// reuse returns buf resliced to n when its capacity allows, otherwise a new
// slice of length n.
func reuse[T any](buf []T, n int) (out []T, err error) {
	if n < 0 || n > MaxEntries {
		return nil, fmt.Errorf("%w: %d entries (limit %d)", ErrAllocation, n, MaxEntries)
	}
	if cap(buf) >= n {
		return buf[:n], nil
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return make([]T, n), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
