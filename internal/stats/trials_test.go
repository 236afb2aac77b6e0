package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeTrials(t *testing.T) {
	summary := SummarizeTrials([]TrialResult{
		{Seed: 1, Generations: 10, Converged: true, BestFitness: 1},
		{Seed: 2, Generations: 30, Converged: true, BestFitness: 1},
		{Seed: 3, Generations: 20, Converged: true, BestFitness: 1},
		{Seed: 4, Generations: 1000, Converged: false, BestFitness: 0.5},
	})

	assert.Equal(t, 4, summary.Trials)
	assert.Equal(t, 3, summary.Converged)
	assert.InDelta(t, 0.75, summary.ConvergenceRate, 1e-12)
	assert.InDelta(t, 20, summary.MeanGenerations, 1e-12)
	assert.InDelta(t, 20, summary.MedianGenerations, 1e-12)
	assert.InDelta(t, 10, summary.StdDevGenerations, 1e-12)
	assert.Equal(t, 30, summary.MaxGenerations)
	assert.InDelta(t, 0.875, summary.MeanBestFitness, 1e-12)
}

func TestSummarizeTrialsWithoutConvergence(t *testing.T) {
	summary := SummarizeTrials([]TrialResult{{Generations: 5, BestFitness: 0.5}})
	assert.Equal(t, 1, summary.Trials)
	assert.Zero(t, summary.Converged)
	assert.Zero(t, summary.ConvergenceRate)
	assert.Zero(t, summary.MeanGenerations)
	assert.Zero(t, summary.MaxGenerations)

	assert.Equal(t, TrialSummary{}, SummarizeTrials(nil))
}

func TestAverageCurveDropsFinishedTrials(t *testing.T) {
	points := AverageCurve([][]float64{
		{0.2, 0.6, 1},
		{0.4, 1},
	})
	want := []CurvePoint{
		{Generation: 1, Value: 0.3, Trials: 2},
		{Generation: 2, Value: 0.8, Trials: 2},
		{Generation: 3, Value: 1, Trials: 1},
	}
	require.Len(t, points, len(want))
	for i := range want {
		assert.Equal(t, want[i].Generation, points[i].Generation)
		assert.Equal(t, want[i].Trials, points[i].Trials)
		assert.InDelta(t, want[i].Value, points[i].Value, 1e-12)
	}
}
