package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genalg/internal/model"
)

func TestWriteRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	artifacts := RunArtifacts{
		Run: model.RunRecord{
			ID:               "run-123",
			Objective:        "all_ones",
			PopulationSize:   4,
			ChromosomeLength: 8,
			Generations:      3,
			Converged:        true,
			BestFitness:      1,
		},
		BestByGeneration: []float64{0.5, 0.75, 1},
		Diagnostics: []model.GenerationDiagnostics{
			{Generation: 1, BestFitness: 0.5, MeanFitness: 0.4},
			{Generation: 2, BestFitness: 0.75, MeanFitness: 0.5},
			{Generation: 3, BestFitness: 1, MeanFitness: 0.7},
		},
	}

	runDir, err := WriteRunArtifacts(baseDir, artifacts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "run-123"), runDir)

	run, ok, err := ReadRunConfig(runDir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, artifacts.Run, run)

	history, ok, err := ReadFitnessHistory(filepath.Join(runDir, FitnessHistoryFile))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, artifacts.BestByGeneration, history)

	data, err := os.ReadFile(filepath.Join(runDir, DiagnosticsFile))
	require.NoError(t, err)
	var diagnostics []model.GenerationDiagnostics
	require.NoError(t, json.Unmarshal(data, &diagnostics))
	assert.Equal(t, artifacts.Diagnostics, diagnostics)
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	_, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{})
	require.Error(t, err)
}

func TestReadFitnessHistoryMissingFile(t *testing.T) {
	history, ok, err := ReadFitnessHistory(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, history)
}

func TestFitnessHistoryCSVLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), FitnessHistoryFile)
	require.NoError(t, WriteFitnessHistory(path, []float64{0.25, 0.5}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "generation,best_fitness\n1,0.25\n2,0.5\n", string(data))
}
