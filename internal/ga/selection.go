package ga

import (
	"fmt"
)

// Selector chooses a parent from an evaluated population.
type Selector interface {
	Name() string
	Select(rng RandomSource, pop *Population) (*Individual, error)
}

// RouletteSelector picks individuals with probability proportional to their
// fitness. The wheel is walked in insertion order; when the accumulated
// fitness never reaches the drawn position the last individual is returned.
//
// With zero total fitness the drawn position is zero, so the first
// individual always wins. This is the usual bias of naive roulette wheels
// and is kept as is.
type RouletteSelector struct{}

func (RouletteSelector) Name() string {
	return "roulette"
}

func (RouletteSelector) Select(rng RandomSource, pop *Population) (*Individual, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if pop.Size() == 0 {
		return nil, ErrEmptyPopulation
	}

	position := rng.Float64() * pop.Fitness()
	spin := 0.0
	for i, ind := range pop.individuals {
		if ind == nil {
			return nil, fmt.Errorf("%w: index=%d", ErrEmptySlot, i)
		}
		spin += ind.Fitness()
		if spin >= position {
			return ind, nil
		}
	}
	return pop.individuals[len(pop.individuals)-1], nil
}

// TournamentSelector samples Size members uniformly and keeps the fittest.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (s TournamentSelector) Select(rng RandomSource, pop *Population) (*Individual, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	n := pop.Size()
	if n == 0 {
		return nil, ErrEmptyPopulation
	}

	size := s.Size
	if size <= 0 {
		size = 2
	}
	if size > n {
		size = n
	}

	best := pop.individuals[rng.Intn(n)]
	if best == nil {
		return nil, ErrEmptySlot
	}
	for i := 1; i < size; i++ {
		candidate := pop.individuals[rng.Intn(n)]
		if candidate == nil {
			return nil, ErrEmptySlot
		}
		if candidate.Fitness() > best.Fitness() {
			best = candidate
		}
	}
	return best, nil
}

// ResolveSelector maps a selection name onto a selector.
func ResolveSelector(name string, tournamentSize int) (Selector, error) {
	switch name {
	case "", "roulette":
		return RouletteSelector{}, nil
	case "tournament":
		return TournamentSelector{Size: tournamentSize}, nil
	default:
		return nil, fmt.Errorf("unsupported selection: %s", name)
	}
}
