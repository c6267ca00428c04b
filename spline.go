package tabulatedfunction

import "slices"

// Spline is cubic-spline interpolation over the table. Second derivatives
// at every point come from the tridiagonal solve of Numerical Recipes
// (spline/splint). With Natural set the end second derivatives are zero and
// extrapolation is a straight line along the end slopes; otherwise the end
// conditions are estimated from the first differences at the table ends.
type Spline struct {
	Natural bool

	d2 []float64
}

func (s *Spline) Name() string { return "spline" }

// MinEntries is three: a cubic is underdetermined below that.
func (s *Spline) MinEntries() int { return 3 }

func (s *Spline) Release() { s.d2 = nil }

func (s *Spline) IsNatural() bool { return s.Natural }

func (s *Spline) SetNatural(natural bool) { s.Natural = natural }

func (s *Spline) Clone() Method { return &Spline{Natural: s.Natural} }

// SecondDerivatives returns a copy of the derived second derivatives, one
// per table point.
func (s *Spline) SecondDerivatives() []float64 {
	return slices.Clone(s.d2)
}

func (s *Spline) Derive(t *Table) error {
	var sig, p, qn, un float64

	n := len(t.P)
	d2, err := reuse(s.d2, n)
	if err != nil {
		return err
	}
	s.d2 = d2
	u, err := reuse[float64](nil, n)
	if err != nil {
		return err
	}

	x := func(i int) float64 { return t.P[i].X }
	y := func(i int) float64 { return t.P[i].Y }
	j := n - 1

	if s.Natural {
		d2[0] = 0.0
		u[0] = 0.0
	} else {
		d2[0] = -0.5
		u[0] = (3.0 / (x(1) - x(0))) * ((y(1)-y(0))/(x(1)-x(0)) - t.DydxLow)
	}
	for i := 1; i < j; i++ {
		sig = (x(i) - x(i-1)) / (x(i+1) - x(i-1))
		p = sig*d2[i-1] + 2.0
		d2[i] = (sig - 1.0) / p
		u[i] = (y(i+1)-y(i))/(x(i+1)-x(i)) - (y(i)-y(i-1))/(x(i)-x(i-1))
		u[i] = (6.0*u[i]/(x(i+1)-x(i-1)) - sig*u[i-1]) / p
	}
	if s.Natural {
		qn, un = 0.0, 0.0
	} else {
		qn = 0.5
		un = (3.0 / (x(j) - x(j-1))) * (t.DydxHigh - (y(j)-y(j-1))/(x(j)-x(j-1)))
	}
	d2[j] = (un - qn*u[j-1]) / (qn*d2[j-1] + 1.0)
	for k := j - 1; k >= 0; k-- {
		d2[k] = d2[k]*d2[k+1] + u[k]
	}
	return nil
}

func (s *Spline) ExtrapolateLow(t *Table, x float64) float64 {
	p := t.P[0]
	h := p.X - x
	return p.Y - h*t.DydxLow - 0.5*h*h*s.d2[0]
}

func (s *Spline) ExtrapolateHigh(t *Table, x float64) float64 {
	j := len(t.P) - 1
	p := t.P[j]
	h := x - p.X
	return p.Y + h*t.DydxHigh + 0.5*h*h*s.d2[j]
}

func (s *Spline) Interpolate(t *Table, x float64, l int) float64 {
	r := l + 1
	pl, pr := t.P[l], t.P[r]
	span := pr.X - pl.X
	wl := (pr.X - x) / span
	wr := 1.0 - wl
	return wl*pl.Y + wr*pr.Y +
		((wl*wl*wl-wl)*s.d2[l]+(wr*wr*wr-wr)*s.d2[r])*(span*span)/6.0
}

func (s *Spline) IntegrateSegment(t *Table, l int) float64 {
	r := l + 1
	pl, pr := t.P[l], t.P[r]
	span := pr.X - pl.X
	return span*(pl.Y+pr.Y)/2 - span*span*span*(s.d2[l]+s.d2[r])/24
}
