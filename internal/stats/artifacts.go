package stats

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"genalg/internal/model"
)

const (
	ConfigFile         = "config.json"
	FitnessHistoryFile = "fitness_history.csv"
	DiagnosticsFile    = "diagnostics.json"
	FitnessPlotFile    = "fitness.png"
)

// RunArtifacts is everything written to disk for one run.
type RunArtifacts struct {
	Run              model.RunRecord
	BestByGeneration []float64
	Diagnostics      []model.GenerationDiagnostics
}

// WriteRunArtifacts writes the artifacts of one run under baseDir/<run-id>
// and returns that directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Run.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, ConfigFile), artifacts.Run); err != nil {
		return "", err
	}
	if err := WriteFitnessHistory(filepath.Join(runDir, FitnessHistoryFile), artifacts.BestByGeneration); err != nil {
		return "", err
	}
	diagnostics := artifacts.Diagnostics
	if diagnostics == nil {
		diagnostics = []model.GenerationDiagnostics{}
	}
	if err := writeJSON(filepath.Join(runDir, DiagnosticsFile), diagnostics); err != nil {
		return "", err
	}
	return runDir, nil
}

// WriteFitnessHistory writes one "generation,best_fitness" row per
// generation, numbered from 1.
func WriteFitnessHistory(path string, bestByGeneration []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"generation", "best_fitness"}); err != nil {
		return err
	}
	for i, best := range bestByGeneration {
		if err := writer.Write([]string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(best, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadFitnessHistory(path string) ([]float64, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []float64{}, true, nil
		}
		return nil, false, err
	}
	if len(header) < 2 {
		return nil, false, fmt.Errorf("fitness history header must have at least 2 columns")
	}

	history := make([]float64, 0, 128)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, err
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, false, err
		}
		history = append(history, value)
	}
	return history, true, nil
}

func ReadRunConfig(runDir string) (model.RunRecord, bool, error) {
	data, err := os.ReadFile(filepath.Join(runDir, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return model.RunRecord{}, false, nil
		}
		return model.RunRecord{}, false, err
	}
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, false, err
	}
	return run, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
