package curve

import (
	"fmt"
	"sort"
	"sync"

	tf "github.com/PICMG/tabulated-function"
	"github.com/sgostarter/i/l"
)

// Set holds named curves. Get hands out private copies, so the curves in a
// Set can be used from several goroutines.
type Set struct {
	logger l.Wrapper

	lock   sync.RWMutex
	curves map[string]*tf.TabulatedFunction
}

func NewSet(logger l.Wrapper) *Set {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &Set{
		logger: logger.WithFields(l.StringField(l.ClsKey, "curveSet")),
		curves: make(map[string]*tf.TabulatedFunction),
	}
}

// Add builds def and stores it under def.Name.
func (s *Set) Add(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: unnamed curve", ErrInvalidDefinition)
	}

	f, err := Build(def)
	if err != nil {
		s.logger.WithFields(l.ErrorField(err), l.StringField("curve", def.Name)).Error("build curve failed")

		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.curves[def.Name]; ok {
		return fmt.Errorf("%w: duplicate curve %q", ErrInvalidDefinition, def.Name)
	}
	s.curves[def.Name] = f

	s.logger.WithFields(l.StringField("curve", def.Name), l.StringField("method", f.Method().Name()),
		l.IntField("points", f.TableSize())).Debug("curve built")

	return nil
}

// Get returns a copy of the named curve that the caller owns.
func (s *Set) Get(name string) (*tf.TabulatedFunction, error) {
	s.lock.RLock()
	f, ok := s.curves[name]
	s.lock.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return f.Clone()
}

func (s *Set) Names() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	names := make([]string, 0, len(s.curves))
	for name := range s.curves {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (s *Set) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.curves)
}
