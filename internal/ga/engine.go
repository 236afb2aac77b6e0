package ga

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrInvalidConfig  = errors.New("invalid engine configuration")
	ErrLengthMismatch = errors.New("chromosome length mismatch")
)

// RandomSource is the single source of randomness an engine draws from.
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// FitnessFunc scores a chromosome. Higher is better.
type FitnessFunc func(chromosome Chromosome) float64

// CountOnes is the default objective: the fraction of genes set to one.
func CountOnes(chromosome Chromosome) float64 {
	if chromosome.Len() == 0 {
		return 0
	}
	return float64(chromosome.Count()) / float64(chromosome.Len())
}

type Config struct {
	PopulationSize int
	MutationRate   float64
	CrossoverRate  float64
	ElitismCount   int

	Fitness     FitnessFunc
	Termination TerminationFunc
	Selector    Selector

	// Rand takes precedence over Seed when set.
	Rand RandomSource
	Seed int64
}

// Engine implements initialization, evaluation, termination, selection,
// crossover and mutation over fixed-length binary chromosomes.
//
// Crossover spares ranks < ElitismCount while mutation spares ranks
// <= ElitismCount, so the individual at rank ElitismCount may be replaced by
// an offspring but is never mutated.
type Engine struct {
	cfg Config
	rng RandomSource
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be > 0, got %d", ErrInvalidConfig, cfg.PopulationSize)
	}
	if cfg.ElitismCount < 0 || cfg.ElitismCount > cfg.PopulationSize {
		return nil, fmt.Errorf("%w: elitism count must be in [0, %d], got %d", ErrInvalidConfig, cfg.PopulationSize, cfg.ElitismCount)
	}
	if !validRate(cfg.MutationRate) {
		return nil, fmt.Errorf("%w: mutation rate must be in [0, 1], got %v", ErrInvalidConfig, cfg.MutationRate)
	}
	if !validRate(cfg.CrossoverRate) {
		return nil, fmt.Errorf("%w: crossover rate must be in [0, 1], got %v", ErrInvalidConfig, cfg.CrossoverRate)
	}
	if cfg.Fitness == nil {
		cfg.Fitness = CountOnes
	}
	if cfg.Termination == nil {
		cfg.Termination = ExactOptimum(1.0)
	}
	if cfg.Selector == nil {
		cfg.Selector = RouletteSelector{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	return &Engine{cfg: cfg, rng: rng}, nil
}

func validRate(rate float64) bool {
	return rate >= 0 && rate <= 1
}

func (e *Engine) PopulationSize() int {
	return e.cfg.PopulationSize
}

func (e *Engine) MutationRate() float64 {
	return e.cfg.MutationRate
}

func (e *Engine) CrossoverRate() float64 {
	return e.cfg.CrossoverRate
}

func (e *Engine) ElitismCount() int {
	return e.cfg.ElitismCount
}

func (e *Engine) SelectorName() string {
	return e.cfg.Selector.Name()
}

// Initialize builds generation zero with uniformly random genes. No fitness
// is computed.
func (e *Engine) Initialize(chromosomeLength int) (*Population, error) {
	if chromosomeLength <= 0 {
		return nil, fmt.Errorf("%w: chromosome length must be > 0, got %d", ErrInvalidConfig, chromosomeLength)
	}
	return newRandomPopulation(e.cfg.PopulationSize, chromosomeLength, e.rng), nil
}

// Fitness scores an individual, reusing its cached value when the chromosome
// has not changed since the last evaluation.
func (e *Engine) Fitness(ind *Individual) float64 {
	if ind.evaluated {
		return ind.fitness
	}
	fitness := e.cfg.Fitness(ind.chromosome)
	ind.setFitness(fitness)
	return fitness
}

// Evaluate scores every member and recomputes the aggregate population
// fitness from scratch.
func (e *Engine) Evaluate(pop *Population) error {
	total := 0.0
	for i, ind := range pop.individuals {
		if ind == nil {
			return fmt.Errorf("%w: index=%d", ErrEmptySlot, i)
		}
		total += e.Fitness(ind)
	}
	pop.setFitness(total)
	return nil
}

func (e *Engine) IsDone(pop *Population) bool {
	return e.cfg.Termination(pop)
}

func (e *Engine) SelectParent(pop *Population) (*Individual, error) {
	return e.cfg.Selector.Select(e.rng, pop)
}

// Crossover builds the next population in rank order. Ranks below the
// elitism count are copied unchanged; every other rank is replaced, with
// probability CrossoverRate, by a uniform gene-wise offspring of itself and a
// selected second parent.
func (e *Engine) Crossover(pop *Population) (*Population, error) {
	ranked, err := pop.Ranked()
	if err != nil {
		return nil, err
	}

	next := NewPopulation(len(ranked))
	for i, parent1 := range ranked {
		if i < e.cfg.ElitismCount || e.rng.Float64() >= e.cfg.CrossoverRate {
			next.individuals[i] = parent1.Clone()
			continue
		}

		parent2, err := e.SelectParent(pop)
		if err != nil {
			return nil, err
		}
		offspring, err := e.uniformCrossover(parent1, parent2)
		if err != nil {
			return nil, err
		}
		next.individuals[i] = offspring
	}
	return next, nil
}

func (e *Engine) uniformCrossover(parent1, parent2 *Individual) (*Individual, error) {
	length := parent1.Len()
	if parent2.Len() != length {
		return nil, fmt.Errorf("%w: parent1=%d parent2=%d", ErrLengthMismatch, length, parent2.Len())
	}

	offspring := NewIndividual(length)
	for gene := 0; gene < length; gene++ {
		src := parent1
		if e.rng.Float64() >= 0.5 {
			src = parent2
		}
		if err := offspring.chromosome.CopyBit(src.chromosome, gene); err != nil {
			return nil, err
		}
	}
	return offspring, nil
}

// Mutate builds the next population in rank order, flipping each gene with
// probability MutationRate for ranks strictly above the elitism count.
func (e *Engine) Mutate(pop *Population) (*Population, error) {
	ranked, err := pop.Ranked()
	if err != nil {
		return nil, err
	}

	next := NewPopulation(len(ranked))
	for i, ind := range ranked {
		mutant := ind.Clone()
		if i > e.cfg.ElitismCount {
			for gene := 0; gene < mutant.Len(); gene++ {
				if e.rng.Float64() < e.cfg.MutationRate {
					if err := mutant.flipGene(gene); err != nil {
						return nil, err
					}
				}
			}
		}
		next.individuals[i] = mutant
	}
	return next, nil
}
