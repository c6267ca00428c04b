package tabulatedfunction

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

type TFPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TabulatedFunction evaluates a curve through a table of points: inside the
// table with the interpolation of its Method, outside it with the Method's
// extrapolation.
//
// Construction and configuration are separate steps: a new function is
// unconfigured and acts as the identity until one of the Configure calls
// succeeds. The zero value is an unconfigured linear function.
//
// F moves a search cursor, so a TabulatedFunction must not be evaluated from
// several goroutines at once. Give each goroutine its own Clone.
type TabulatedFunction struct {
	table  Table
	istep  float64
	last   int
	method Method
}

// Create
func New() *TabulatedFunction {
	return NewLinear()
}

func NewLinear() *TabulatedFunction {
	return &TabulatedFunction{method: Linear{}}
}

// NewSpline returns an unconfigured cubic-spline function. natural selects
// zero end curvature; otherwise the end conditions are estimated from the
// end slopes.
func NewSpline(natural bool) *TabulatedFunction {
	return &TabulatedFunction{method: &Spline{Natural: natural}}
}

// NewWithMethod returns an unconfigured function evaluated by m. The
// function takes ownership of m.
func NewWithMethod(m Method) *TabulatedFunction {
	if m == nil {
		m = Linear{}
	}
	return &TabulatedFunction{method: m}
}

func (f *TabulatedFunction) m() Method {
	if f.method == nil {
		f.method = Linear{}
	}
	return f.method
}

// F returns the value of the function at xi.
func (f *TabulatedFunction) F(xi float64) float64 {
	l := len(f.table.P)
	switch {
	case l == 0:
		return xi
	case math.IsNaN(xi):
		return xi
	case xi <= f.table.P[0].X:
		f.last = 0
		return f.m().ExtrapolateLow(&f.table, xi)
	case xi >= f.table.P[l-1].X:
		f.last = l - 1
		return f.m().ExtrapolateHigh(&f.table, xi)
	}
	k := f.locate(xi)
	f.last = k
	return f.m().Interpolate(&f.table, xi, k)
}

// FAll evaluates the function at every value of xs. The result is written to
// out when it is long enough.
func (f *TabulatedFunction) FAll(xs []float64, out []float64) []float64 {
	if len(out) < len(xs) {
		out = make([]float64, len(xs))
	}
	out = out[:len(xs)]
	for i, x := range xs {
		out[i] = f.F(x)
	}
	return out
}

// SetNaturalBoundary switches a spline between natural and estimated end
// conditions and re-derives it from the table it already holds.
func (f *TabulatedFunction) SetNaturalBoundary(natural bool) error {
	b, ok := f.m().(Boundary)
	if !ok {
		return fmt.Errorf("%w: %s function has no spline boundary", ErrInvalidConfiguration, f.m().Name())
	}
	if b.IsNatural() == natural {
		return nil
	}
	b.SetNatural(natural)
	if len(f.table.P) == 0 {
		return nil
	}
	if err := b.Derive(&f.table); err != nil {
		f.release()
		return err
	}
	return nil
}

// Assign makes f an independent deep copy of s, method settings included.
func (f *TabulatedFunction) Assign(s *TabulatedFunction) error {
	if f == s {
		return nil
	}
	f.release()
	f.method = s.m().Clone()
	return f.Configure(s.table.P)
}

func (f *TabulatedFunction) Clone() (*TabulatedFunction, error) {
	c := &TabulatedFunction{}
	if err := c.Assign(f); err != nil {
		return nil, err
	}
	return c, nil
}

// Integrate returns the integral of the interpolant from the lowest to the
// highest table point.
func (f *TabulatedFunction) Integrate() float64 {
	var tmp float64
	for i := 0; i < len(f.table.P)-1; i++ {
		tmp += f.m().IntegrateSegment(&f.table, i)
	}
	return tmp
}

func (f *TabulatedFunction) IsConfigured() bool {
	return len(f.table.P) != 0
}

// Method returns the evaluation method. It is owned by f.
func (f *TabulatedFunction) Method() Method {
	return f.m()
}

func (f *TabulatedFunction) TableSize() int {
	return len(f.table.P)
}

// ExtractTable returns a copy of at most limit table points, lowest X first.
// A negative limit returns the whole table.
func (f *TabulatedFunction) ExtractTable(limit int) []TFPoint {
	if limit < 0 || limit > len(f.table.P) {
		limit = len(f.table.P)
	}
	if limit == 0 {
		return nil
	}
	return append([]TFPoint(nil), f.table.P[:limit]...)
}

// The following report the points at the lowest and highest table index.
// The X values are the smallest and largest X; the Y values need not be the
// extremes of Y (see GetYmin and GetYmax). All return 0 when unconfigured.

func (f *TabulatedFunction) LowestIndependentValue() float64 {
	if len(f.table.P) == 0 {
		return 0
	}
	return f.table.P[0].X
}

func (f *TabulatedFunction) HighestIndependentValue() float64 {
	if len(f.table.P) == 0 {
		return 0
	}
	return f.table.P[len(f.table.P)-1].X
}

func (f *TabulatedFunction) LowestDependentValue() float64 {
	if len(f.table.P) == 0 {
		return 0
	}
	return f.table.P[0].Y
}

func (f *TabulatedFunction) HighestDependentValue() float64 {
	if len(f.table.P) == 0 {
		return 0
	}
	return f.table.P[len(f.table.P)-1].Y
}

func (f *TabulatedFunction) GetYmin() float64 {
	v, err := stats.Min(f.ys())
	if err != nil {
		return 0
	}
	return v
}

func (f *TabulatedFunction) GetYmax() float64 {
	v, err := stats.Max(f.ys())
	if err != nil {
		return 0
	}
	return v
}

// GetStep returns the X spacing of a uniformly spaced table and 0 for any
// other table.
func (f *TabulatedFunction) GetStep() float64 {
	return f.istep
}

func (f *TabulatedFunction) DydxLow() float64 {
	return f.table.DydxLow
}

func (f *TabulatedFunction) DydxHigh() float64 {
	return f.table.DydxHigh
}

func (f *TabulatedFunction) ys() stats.Float64Data {
	ys := make(stats.Float64Data, len(f.table.P))
	for i, p := range f.table.P {
		ys[i] = p.Y
	}
	return ys
}

func (f *TabulatedFunction) String() string {
	s := "\nTabulated function:\n"
	s = fmt.Sprintf("%s\tmethod: %v; points: %v\n", s, f.m().Name(), len(f.table.P))
	if b, ok := f.m().(Boundary); ok {
		s = fmt.Sprintf("%s\tnatural: %v\n", s, b.IsNatural())
	}
	s = fmt.Sprintf("%s\txmin: %v; xmax: %v\n", s, f.LowestIndependentValue(), f.HighestIndependentValue())
	s = fmt.Sprintf("%s\tymin: %v; ymax: %v\n", s, f.GetYmin(), f.GetYmax())
	s = fmt.Sprintf("%s\tdydx: %v .. %v; step: %v\n", s, f.table.DydxLow, f.table.DydxHigh, f.istep)
	s = fmt.Sprintf("%s\tPoints: %v\n", s, f.table.P)
	return s
}
