package curve

import (
	"math"

	tf "github.com/PICMG/tabulated-function"
	"github.com/montanaflynn/stats"
)

// maxTolerance is the largest tolerance a one-byte field can report.
const maxTolerance = 255.0

// Binding chains the curve of an I/O channel with the response curve of the
// sensor or effecter attached to it. Input maps the value at the pin to the
// channel side; Response maps that on to engineering units. A nil curve is
// the identity and a zero Gearing is 1.
//
// A Binding evaluates its curves, so it is not safe for concurrent use.
type Binding struct {
	Input    *tf.TabulatedFunction
	Response *tf.TabulatedFunction
	Gearing  float64
}

func eval(f *tf.TabulatedFunction, x float64) float64 {
	if f == nil {
		return x
	}
	return f.F(x)
}

func (b *Binding) gearing() float64 {
	if b.Gearing == 0 {
		return 1
	}
	return b.Gearing
}

// Raw returns the response to the value at the pin before gearing.
func (b *Binding) Raw(atPin float64) float64 {
	return eval(b.Response, eval(b.Input, atPin))
}

func (b *Binding) Value(atPin float64) float64 {
	return b.gearing() * b.Raw(atPin)
}

// Range returns the readable range for pin values from minPin to maxPin,
// lowest first.
func (b *Binding) Range(minPin, maxPin float64) (float64, float64) {
	lo := b.Raw(minPin) / b.gearing()
	hi := b.Raw(maxPin) / b.gearing()
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// Tolerance estimates how far half a code step moves the geared value, for
// a channel of the given precision in bits (negative for a signed channel)
// spanning minPin to maxPin. It samples nine codes across the range and
// returns the worst deviations above and below, each clamped to [0, 255].
func (b *Binding) Tolerance(minPin, maxPin float64, precision int) (plus, minus float64) {
	maxRaw := math.Ldexp(1, abs(precision))
	minRaw := 0.0
	if precision < 0 {
		maxRaw /= 2
		minRaw = -maxRaw
	}
	pin := func(code float64) float64 {
		return minPin + (maxPin-minPin)*(code/maxRaw)
	}

	highs := make(stats.Float64Data, 0, 9)
	lows := make(stats.Float64Data, 0, 9)
	for k := 0; k <= 8; k++ {
		code := minRaw + (maxRaw-minRaw)*float64(k)/8
		actual := b.Value(pin(code))
		highs = append(highs, clamp(b.Value(pin(code+0.5))-actual))
		lows = append(lows, clamp(actual-b.Value(pin(code-0.5))))
	}

	// Both hold nine samples, so Max cannot fail.
	plus, _ = stats.Max(highs)
	minus, _ = stats.Max(lows)
	return plus, minus
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), maxTolerance)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
