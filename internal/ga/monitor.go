package ga

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"genalg/internal/model"
)

type MonitorConfig struct {
	Engine           *Engine
	ChromosomeLength int
	// Generations caps the number of evaluated generations, initial one included.
	Generations  int
	Logger       *slog.Logger
	OnGeneration func(model.GenerationDiagnostics)
}

type RunResult struct {
	Generations      int
	Converged        bool
	Best             *Individual
	BestByGeneration []float64
	Diagnostics      []model.GenerationDiagnostics
	FinalPopulation  *Population
}

// Monitor drives an engine through evaluate, termination test, crossover and
// mutation until the termination policy fires or the generation cap is hit.
type Monitor struct {
	cfg MonitorConfig
	log *slog.Logger
}

func NewMonitor(cfg MonitorConfig) (*Monitor, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if cfg.ChromosomeLength <= 0 {
		return nil, fmt.Errorf("chromosome length must be > 0")
	}
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generations must be > 0")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Monitor{cfg: cfg, log: logger}, nil
}

func (m *Monitor) Run(ctx context.Context) (RunResult, error) {
	engine := m.cfg.Engine
	population, err := engine.Initialize(m.cfg.ChromosomeLength)
	if err != nil {
		return RunResult{}, err
	}

	bestHistory := make([]float64, 0, m.cfg.Generations)
	diagnostics := make([]model.GenerationDiagnostics, 0, m.cfg.Generations)
	converged := false
	generation := 1

	for {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}
		if err := engine.Evaluate(population); err != nil {
			return RunResult{}, fmt.Errorf("evaluate generation %d: %w", generation, err)
		}

		summary, err := SummarizeGeneration(population, generation)
		if err != nil {
			return RunResult{}, err
		}
		bestHistory = append(bestHistory, summary.BestFitness)
		diagnostics = append(diagnostics, summary)
		if m.cfg.OnGeneration != nil {
			m.cfg.OnGeneration(summary)
		}
		m.log.Debug("generation evaluated",
			"generation", generation,
			"best", summary.BestFitness,
			"mean", summary.MeanFitness,
			"unique", summary.UniqueChromosomes,
		)

		if engine.IsDone(population) {
			converged = true
			break
		}
		if generation >= m.cfg.Generations {
			break
		}

		population, err = engine.Crossover(population)
		if err != nil {
			return RunResult{}, fmt.Errorf("crossover generation %d: %w", generation, err)
		}
		population, err = engine.Mutate(population)
		if err != nil {
			return RunResult{}, fmt.Errorf("mutate generation %d: %w", generation, err)
		}
		generation++
	}

	best, err := population.Best()
	if err != nil {
		return RunResult{}, err
	}
	m.log.Info("evolution finished",
		"generations", generation,
		"converged", converged,
		"best_fitness", best.Fitness(),
	)

	return RunResult{
		Generations:      generation,
		Converged:        converged,
		Best:             best,
		BestByGeneration: bestHistory,
		Diagnostics:      diagnostics,
		FinalPopulation:  population,
	}, nil
}

// SummarizeGeneration computes fitness statistics for an evaluated
// population.
func SummarizeGeneration(pop *Population, generation int) (model.GenerationDiagnostics, error) {
	if pop.Size() == 0 {
		return model.GenerationDiagnostics{Generation: generation}, nil
	}

	values := make([]float64, 0, pop.Size())
	chromosomes := make(map[string]struct{}, pop.Size())
	for i, ind := range pop.individuals {
		if ind == nil {
			return model.GenerationDiagnostics{}, fmt.Errorf("%w: index=%d", ErrEmptySlot, i)
		}
		values = append(values, ind.Fitness())
		chromosomes[ind.String()] = struct{}{}
	}

	mean, stdDev := stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		stdDev = 0
	}
	return model.GenerationDiagnostics{
		Generation:        generation,
		BestFitness:       floats.Max(values),
		MeanFitness:       mean,
		MinFitness:        floats.Min(values),
		StdDevFitness:     stdDev,
		PopulationFitness: pop.Fitness(),
		UniqueChromosomes: len(chromosomes),
	}, nil
}
