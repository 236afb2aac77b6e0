package ga

import (
	"errors"
	"fmt"
	"sort"

	"genalg/internal/bitset"
)

var (
	ErrOutOfRange      = bitset.ErrOutOfRange
	ErrEmptySlot       = errors.New("population slot is empty")
	ErrEmptyPopulation = errors.New("population is empty")
)

// Population owns an ordered set of individuals, the aggregate fitness of the
// last evaluation pass, and a fitness-ranked view computed on demand.
type Population struct {
	individuals []*Individual
	fitness     float64

	// ranked is nil whenever membership or fitness changed since it was built.
	ranked []*Individual
}

// NewPopulation returns a population with size empty slots.
func NewPopulation(size int) *Population {
	if size < 0 {
		size = 0
	}
	return &Population{individuals: make([]*Individual, size)}
}

func newRandomPopulation(size, length int, rng RandomSource) *Population {
	pop := NewPopulation(size)
	for i := range pop.individuals {
		pop.individuals[i] = NewRandomIndividual(length, rng)
	}
	return pop
}

func (p *Population) Size() int {
	return len(p.individuals)
}

func (p *Population) Individual(i int) (*Individual, error) {
	if i < 0 || i >= len(p.individuals) {
		return nil, fmt.Errorf("%w: index=%d size=%d", ErrOutOfRange, i, len(p.individuals))
	}
	return p.individuals[i], nil
}

func (p *Population) SetIndividual(i int, ind *Individual) error {
	if i < 0 || i >= len(p.individuals) {
		return fmt.Errorf("%w: index=%d size=%d", ErrOutOfRange, i, len(p.individuals))
	}
	p.individuals[i] = ind
	p.ranked = nil
	return nil
}

// Individuals returns the members in insertion order.
func (p *Population) Individuals() []*Individual {
	return append([]*Individual(nil), p.individuals...)
}

// Fitness is the sum of member fitness from the last evaluation pass.
func (p *Population) Fitness() float64 {
	return p.fitness
}

func (p *Population) setFitness(total float64) {
	p.fitness = total
	p.ranked = nil
}

// Fittest returns the individual at the given fitness-descending rank.
func (p *Population) Fittest(rank int) (*Individual, error) {
	ranked, err := p.Ranked()
	if err != nil {
		return nil, err
	}
	if rank < 0 || rank >= len(ranked) {
		return nil, fmt.Errorf("%w: rank=%d size=%d", ErrOutOfRange, rank, len(ranked))
	}
	return ranked[rank], nil
}

// Ranked returns the members fittest first. Evaluated individuals precede
// unevaluated ones and ties keep insertion order.
func (p *Population) Ranked() ([]*Individual, error) {
	if p.ranked == nil {
		for i, ind := range p.individuals {
			if ind == nil {
				return nil, fmt.Errorf("%w: index=%d", ErrEmptySlot, i)
			}
		}
		ranked := append([]*Individual(nil), p.individuals...)
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.evaluated != b.evaluated {
				return a.evaluated
			}
			return a.Fitness() > b.Fitness()
		})
		p.ranked = ranked
	}
	return append([]*Individual(nil), p.ranked...), nil
}

func (p *Population) Best() (*Individual, error) {
	if len(p.individuals) == 0 {
		return nil, ErrEmptyPopulation
	}
	return p.Fittest(0)
}
