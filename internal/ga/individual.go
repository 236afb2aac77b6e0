package ga

import (
	"genalg/internal/bitset"
)

// Chromosome is the read-only view of an individual's genes handed to
// fitness functions.
type Chromosome interface {
	Len() int
	Test(i int) (bool, error)
	Count() int
	String() string
}

// Individual owns one fixed-length chromosome and its cached fitness.
type Individual struct {
	chromosome *bitset.BitSet
	fitness    float64
	evaluated  bool
}

// NewIndividual returns an individual with an all-zero chromosome and no
// fitness.
func NewIndividual(length int) *Individual {
	return &Individual{chromosome: bitset.New(length)}
}

// NewRandomIndividual draws each gene independently with probability 0.5.
func NewRandomIndividual(length int, rng RandomSource) *Individual {
	ind := NewIndividual(length)
	for i := 0; i < length; i++ {
		if rng.Float64() < 0.5 {
			_ = ind.chromosome.Set(i, true)
		}
	}
	return ind
}

// NewIndividualFromString builds an individual from a '0'/'1' string.
func NewIndividualFromString(genes string) (*Individual, error) {
	chromosome, err := bitset.FromString(genes)
	if err != nil {
		return nil, err
	}
	return &Individual{chromosome: chromosome}, nil
}

func (ind *Individual) Chromosome() Chromosome {
	return ind.chromosome
}

func (ind *Individual) Len() int {
	return ind.chromosome.Len()
}

func (ind *Individual) Gene(i int) (bool, error) {
	return ind.chromosome.Test(i)
}

// SetGene writes one gene and invalidates the cached fitness.
func (ind *Individual) SetGene(i int, v bool) error {
	if err := ind.chromosome.Set(i, v); err != nil {
		return err
	}
	ind.evaluated = false
	return nil
}

func (ind *Individual) flipGene(i int) error {
	if err := ind.chromosome.Flip(i); err != nil {
		return err
	}
	ind.evaluated = false
	return nil
}

// Fitness returns the cached fitness, or 0 when the individual has not been
// evaluated since its last change.
func (ind *Individual) Fitness() float64 {
	if !ind.evaluated {
		return 0
	}
	return ind.fitness
}

func (ind *Individual) Evaluated() bool {
	return ind.evaluated
}

func (ind *Individual) setFitness(fitness float64) {
	ind.fitness = fitness
	ind.evaluated = true
}

// Clone copies the chromosome and the fitness cache.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		chromosome: ind.chromosome.Clone(),
		fitness:    ind.fitness,
		evaluated:  ind.evaluated,
	}
}

// SameGenes reports whether both chromosomes hold identical bits.
func (ind *Individual) SameGenes(other *Individual) bool {
	if other == nil {
		return false
	}
	return ind.chromosome.Equal(other.chromosome)
}

func (ind *Individual) String() string {
	return ind.chromosome.String()
}
