package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TrialResult is the outcome of one independent run in a benchmark.
type TrialResult struct {
	RunID       string  `json:"run_id"`
	Seed        int64   `json:"seed"`
	Generations int     `json:"generations"`
	Converged   bool    `json:"converged"`
	BestFitness float64 `json:"best_fitness"`
}

// TrialSummary aggregates trials. Generation statistics only cover the
// trials that converged and are zero when none did.
type TrialSummary struct {
	Trials            int     `json:"trials"`
	Converged         int     `json:"converged"`
	ConvergenceRate   float64 `json:"convergence_rate"`
	MeanGenerations   float64 `json:"mean_generations"`
	MedianGenerations float64 `json:"median_generations"`
	StdDevGenerations float64 `json:"stddev_generations"`
	MaxGenerations    int     `json:"max_generations"`
	MeanBestFitness   float64 `json:"mean_best_fitness"`
}

func SummarizeTrials(trials []TrialResult) TrialSummary {
	summary := TrialSummary{Trials: len(trials)}
	if len(trials) == 0 {
		return summary
	}

	best := make([]float64, 0, len(trials))
	generations := make([]float64, 0, len(trials))
	for _, trial := range trials {
		best = append(best, trial.BestFitness)
		if !trial.Converged {
			continue
		}
		summary.Converged++
		generations = append(generations, float64(trial.Generations))
		if trial.Generations > summary.MaxGenerations {
			summary.MaxGenerations = trial.Generations
		}
	}
	summary.ConvergenceRate = float64(summary.Converged) / float64(len(trials))
	summary.MeanBestFitness = floats.Sum(best) / float64(len(best))

	if len(generations) == 0 {
		return summary
	}
	sort.Float64s(generations)
	summary.MeanGenerations = stat.Mean(generations, nil)
	summary.MedianGenerations = stat.Quantile(0.5, stat.Empirical, generations, nil)
	if len(generations) > 1 {
		summary.StdDevGenerations = stat.StdDev(generations, nil)
	}
	return summary
}

type CurvePoint struct {
	Generation int     `json:"generation"`
	Value      float64 `json:"value"`
	Trials     int     `json:"trials"`
}

// AverageCurve averages best-fitness histories generation by generation.
// Histories that ended earlier drop out of later points, so Trials counts
// how many runs contributed to each point.
func AverageCurve(histories [][]float64) []CurvePoint {
	longest := 0
	for _, history := range histories {
		if len(history) > longest {
			longest = len(history)
		}
	}

	points := make([]CurvePoint, 0, longest)
	values := make([]float64, 0, len(histories))
	for gen := 0; gen < longest; gen++ {
		values = values[:0]
		for _, history := range histories {
			if gen < len(history) {
				values = append(values, history[gen])
			}
		}
		points = append(points, CurvePoint{
			Generation: gen + 1,
			Value:      stat.Mean(values, nil),
			Trials:     len(values),
		})
	}
	return points
}
