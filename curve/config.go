package curve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

// yamlFile is the YAML layout:
//
//	curves:
//	  thermistor:
//	    kind: spline
//	    boundary: natural
//	    reverse: true
//	    points:
//	      - {in: 0, out: 3.3}
//	      - [1, "2.9"]
type yamlFile struct {
	Curves map[string]yamlCurve `yaml:"curves"`
}

type yamlCurve struct {
	Kind     string `yaml:"kind"`
	Boundary string `yaml:"boundary"`
	Reverse  bool   `yaml:"reverse"`
	Points   []any  `yaml:"points"`
}

// gcfgFile is the gcfg layout, one section per curve with repeated in and
// out variables:
//
//	[curve "thermistor"]
//	kind = spline
//	in = 0
//	out = 3.3
type gcfgFile struct {
	Curve map[string]*gcfgCurve
}

type gcfgCurve struct {
	Kind     string
	Boundary string
	Reverse  bool
	In       []float64
	Out      []float64
}

// LoadFile reads a curve file, choosing the format by extension.
func LoadFile(path string, logger l.Wrapper) (*Set, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(d, logger)
	case ".gcfg", ".ini", ".conf":
		return LoadGcfg(string(d), logger)
	}

	return nil, fmt.Errorf("%w: unknown curve file type %q", ErrInvalidDefinition, path)
}

func LoadYAML(d []byte, logger l.Wrapper) (*Set, error) {
	var file yamlFile

	err := yaml.Unmarshal(d, &file)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(file.Curves))

	for name, c := range file.Curves {
		points, err := yamlPoints(c.Points)
		if err != nil {
			return nil, fmt.Errorf("%w: curve %q: %w", ErrInvalidDefinition, name, err)
		}

		defs = append(defs, Definition{
			Name:     name,
			Kind:     c.Kind,
			Boundary: c.Boundary,
			Reverse:  c.Reverse,
			Points:   points,
		})
	}

	return newSet(defs, logger)
}

func LoadGcfg(text string, logger l.Wrapper) (*Set, error) {
	var file gcfgFile

	err := gcfg.ReadStringInto(&file, text)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(file.Curve))

	for name, c := range file.Curve {
		if len(c.In) != len(c.Out) {
			return nil, fmt.Errorf("%w: curve %q has %d in and %d out values",
				ErrInvalidDefinition, name, len(c.In), len(c.Out))
		}

		points := make([]Point, len(c.In))
		for i := range points {
			points[i] = Point{In: c.In[i], Out: c.Out[i]}
		}

		defs = append(defs, Definition{
			Name:     name,
			Kind:     c.Kind,
			Boundary: c.Boundary,
			Reverse:  c.Reverse,
			Points:   points,
		})
	}

	return newSet(defs, logger)
}

func newSet(defs []Definition, logger l.Wrapper) (*Set, error) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})

	s := NewSet(logger)

	for _, def := range defs {
		if err := s.Add(def); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// yamlPoints accepts each point as an {in, out} mapping or an [in, out]
// pair. Numbers may be written as strings.
func yamlPoints(raw []any) ([]Point, error) {
	points := make([]Point, len(raw))

	for i, r := range raw {
		var in, out any

		switch v := r.(type) {
		case map[string]any:
			var ok bool
			if in, ok = v["in"]; !ok {
				return nil, fmt.Errorf("point %d: missing in", i)
			}
			if out, ok = v["out"]; !ok {
				return nil, fmt.Errorf("point %d: missing out", i)
			}
		case []any:
			if len(v) != 2 {
				return nil, fmt.Errorf("point %d: %d values", i, len(v))
			}
			in, out = v[0], v[1]
		default:
			return nil, fmt.Errorf("point %d: unexpected %T", i, r)
		}

		x, err := cast.ToFloat64E(in)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		y, err := cast.ToFloat64E(out)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}

		points[i] = Point{In: x, Out: y}
	}

	return points, nil
}
