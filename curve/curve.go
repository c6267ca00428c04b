// Package curve turns calibration curves of sensors, effecters and I/O
// channels into tabulated functions.
//
// A curve is a list of (in, out) points. By default the input side is the
// independent value; Reverse swaps the roles so the curve maps outputs back
// to inputs.
package curve

import (
	"errors"
	"fmt"

	tf "github.com/PICMG/tabulated-function"
)

const (
	KindLinear = "linear"
	KindSpline = "spline"

	BoundaryNatural   = "natural"
	BoundaryEstimated = "estimated"
)

var (
	ErrInvalidDefinition = errors.New("invalid curve definition")
	ErrNotFound          = errors.New("curve not found")
)

type Point struct {
	In  float64 `json:"in" yaml:"in"`
	Out float64 `json:"out" yaml:"out"`
}

// Definition describes one curve. Kind defaults to a spline and Boundary to
// natural.
type Definition struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Boundary string  `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Reverse  bool    `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	Points   []Point `json:"points" yaml:"points"`
}

// Build configures a tabulated function from def.
func Build(def Definition) (*tf.TabulatedFunction, error) {
	var f *tf.TabulatedFunction

	switch def.Kind {
	case "", KindSpline:
		natural, err := naturalBoundary(def.Boundary)
		if err != nil {
			return nil, fmt.Errorf("%w: curve %q: %w", ErrInvalidDefinition, def.Name, err)
		}
		f = tf.NewSpline(natural)
	case KindLinear:
		f = tf.NewLinear()
	default:
		return nil, fmt.Errorf("%w: curve %q: unknown kind %q", ErrInvalidDefinition, def.Name, def.Kind)
	}

	if len(def.Points) == 0 {
		return nil, fmt.Errorf("%w: curve %q has no points", ErrInvalidDefinition, def.Name)
	}
	points := make([]tf.TFPoint, len(def.Points))
	for i, p := range def.Points {
		if def.Reverse {
			points[i] = tf.TFPoint{X: p.Out, Y: p.In}
		} else {
			points[i] = tf.TFPoint{X: p.In, Y: p.Out}
		}
	}
	if err := f.Configure(points); err != nil {
		return nil, fmt.Errorf("%w: curve %q: %w", ErrInvalidDefinition, def.Name, err)
	}
	return f, nil
}

func naturalBoundary(boundary string) (bool, error) {
	switch boundary {
	case "", BoundaryNatural:
		return true, nil
	case BoundaryEstimated:
		return false, nil
	}
	return false, fmt.Errorf("unknown boundary %q", boundary)
}
