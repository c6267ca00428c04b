package tabulatedfunction

import "math"

// locate returns the index l of the interval with
// P[l].X <= xi < P[l+1].X. xi must lie strictly inside the table.
func (f *TabulatedFunction) locate(xi float64) int {
	if f.istep != 0 {
		return f.locateUniform(xi)
	}
	return f.locateNear(xi)
}

// locateUniform computes the interval from the step and then walks off any
// rounding error.
func (f *TabulatedFunction) locateUniform(xi float64) int {
	p := f.table.P
	hi := len(p) - 2
	l := int(math.Floor((xi - p[0].X) / f.istep))
	if l > hi {
		l = hi
	} else if l < 0 {
		l = 0
	}
	for l > 0 && xi < p[l].X {
		l--
	}
	for l < hi && xi >= p[l+1].X {
		l++
	}
	return l
}

// locateNear searches outward from the interval used last. Sweeps and
// slowly varying inputs hit the cached or the neighbouring interval; any
// other input falls back to a binary search of the side it moved to.
func (f *TabulatedFunction) locateNear(xi float64) int {
	p := f.table.P
	hi := len(p) - 1
	in := func(l int) bool {
		return xi >= p[l].X && xi < p[l+1].X
	}

	l := f.last
	if l >= hi {
		l = hi - 1
	} else if l < 0 {
		l = 0
	}
	if in(l) {
		return l
	}

	var r int
	if xi > p[l].X {
		if l+1 < hi && in(l+1) {
			return l + 1
		}
		l, r = l+1, hi
	} else {
		if l > 0 && in(l-1) {
			return l - 1
		}
		l, r = 0, l
	}
	for r-l > 1 {
		m := int(uint(l+r) >> 1)
		if p[m].X > xi {
			r = m
		} else {
			l = m
		}
	}
	return l
}
