// Package problem holds the objectives a binary-chromosome engine can be
// pointed at. Every built-in objective is normalized so that its optimum is
// exactly 1.0.
package problem

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"genalg/internal/ga"
)

const (
	AllOnesName = "all_ones"
	TrapName    = "trap"
	HIFFName    = "hiff"

	DefaultTrapSize = 4
)

var (
	ErrObjectiveExists    = errors.New("objective already registered")
	ErrObjectiveNotFound  = errors.New("objective not found")
	ErrUnsupportedLength  = errors.New("chromosome length unsupported by objective")
	errObjectiveIncomplete = errors.New("objective name and fitness are required")
)

type Objective struct {
	Name        string
	Description string
	Fitness     ga.FitnessFunc
	// Validate rejects chromosome lengths the objective cannot score. Nil
	// accepts any positive length.
	Validate func(length int) error
}

// CheckLength reports whether the objective can score chromosomes of the
// given length.
func (o Objective) CheckLength(length int) error {
	if length <= 0 {
		return fmt.Errorf("%w: %s length=%d", ErrUnsupportedLength, o.Name, length)
	}
	if o.Validate == nil {
		return nil
	}
	return o.Validate(length)
}

var registry = struct {
	mu sync.RWMutex
	m  map[string]Objective
}{
	m: builtins(),
}

func builtins() map[string]Objective {
	return map[string]Objective{
		AllOnesName: {
			Name:        AllOnesName,
			Description: "fraction of genes set to one",
			Fitness:     ga.CountOnes,
		},
		TrapName: {
			Name:        TrapName,
			Description: fmt.Sprintf("concatenated deceptive traps of size %d", DefaultTrapSize),
			Fitness:     DeceptiveTrap(DefaultTrapSize),
			Validate: func(length int) error {
				if length%DefaultTrapSize != 0 {
					return fmt.Errorf("%w: %s needs a multiple of %d, got %d", ErrUnsupportedLength, TrapName, DefaultTrapSize, length)
				}
				return nil
			},
		},
		HIFFName: {
			Name:        HIFFName,
			Description: "hierarchical if-and-only-if",
			Fitness:     HIFF,
			Validate: func(length int) error {
				if length < 2 || length&(length-1) != 0 {
					return fmt.Errorf("%w: %s needs a power of two >= 2, got %d", ErrUnsupportedLength, HIFFName, length)
				}
				return nil
			},
		},
	}
}

func Register(obj Objective) error {
	if obj.Name == "" || obj.Fitness == nil {
		return errObjectiveIncomplete
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.m[obj.Name]; exists {
		return fmt.Errorf("%w: %s", ErrObjectiveExists, obj.Name)
	}
	registry.m[obj.Name] = obj
	return nil
}

func Resolve(name string) (Objective, error) {
	if name == "" {
		name = AllOnesName
	}

	registry.mu.RLock()
	obj, ok := registry.m[name]
	registry.mu.RUnlock()

	if !ok {
		return Objective{}, fmt.Errorf("%w: %s", ErrObjectiveNotFound, name)
	}
	return obj, nil
}

func List() []Objective {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]Objective, 0, len(registry.m))
	for _, obj := range registry.m {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func resetRegistryForTests() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.m = builtins()
}
