package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"genalg/pkg/genalg"
)

// runConfig is the JSON run config file. Absent fields keep the client
// defaults, and the seed defaults to 1 as on the command line.
type runConfig struct {
	RunID            *string  `json:"run_id"`
	Objective        *string  `json:"objective"`
	Selection        *string  `json:"selection"`
	TournamentSize   *int     `json:"tournament_size"`
	PopulationSize   *int     `json:"population_size"`
	ChromosomeLength *int     `json:"chromosome_length"`
	MutationRate     *float64 `json:"mutation_rate"`
	CrossoverRate    *float64 `json:"crossover_rate"`
	ElitismCount     *int     `json:"elitism_count"`
	Generations      *int     `json:"generations"`
	Seed             *int64   `json:"seed"`
	TargetFitness    *float64 `json:"target_fitness"`
	PlateauWindow    *int     `json:"plateau_window"`
}

func loadRunRequestFromConfig(path string) (genalg.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return genalg.RunRequest{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg runConfig
	if err := dec.Decode(&cfg); err != nil {
		return genalg.RunRequest{}, err
	}

	req := genalg.RunRequest{Seed: 1}
	if cfg.RunID != nil {
		req.RunID = *cfg.RunID
	}
	if cfg.Objective != nil {
		req.Objective = *cfg.Objective
	}
	if cfg.Selection != nil {
		req.Selection = *cfg.Selection
	}
	if cfg.TournamentSize != nil {
		req.TournamentSize = *cfg.TournamentSize
	}
	if cfg.PopulationSize != nil {
		req.PopulationSize = *cfg.PopulationSize
	}
	if cfg.ChromosomeLength != nil {
		req.ChromosomeLength = *cfg.ChromosomeLength
	}
	req.MutationRate = cfg.MutationRate
	req.CrossoverRate = cfg.CrossoverRate
	req.ElitismCount = cfg.ElitismCount
	if cfg.Generations != nil {
		req.Generations = *cfg.Generations
	}
	if cfg.Seed != nil {
		req.Seed = *cfg.Seed
	}
	if cfg.TargetFitness != nil {
		req.TargetFitness = *cfg.TargetFitness
	}
	if cfg.PlateauWindow != nil {
		req.PlateauWindow = *cfg.PlateauWindow
	}
	return req, nil
}

func loadOrDefaultRunRequest(configPath string) (genalg.RunRequest, error) {
	if configPath == "" {
		return genalg.RunRequest{Seed: 1}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return genalg.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}

type runFlags struct {
	runID          *string
	objective      *string
	selection      *string
	tournamentSize *int
	population     *int
	length         *int
	mutationRate   *float64
	crossoverRate  *float64
	elitism        *int
	generations    *int
	seed           *int64
	targetFitness  *float64
	plateauWindow  *int
}

func registerRunFlags(fs *flag.FlagSet) runFlags {
	return runFlags{
		runID:          fs.String("run-id", "", "explicit run id (optional)"),
		objective:      fs.String("objective", "all_ones", "objective: all_ones|trap|hiff"),
		selection:      fs.String("selection", "roulette", "parent selection: roulette|tournament"),
		tournamentSize: fs.Int("tournament-size", 2, "tournament size for selection=tournament"),
		population:     fs.Int("pop", genalg.DefaultPopulationSize, "population size"),
		length:         fs.Int("length", genalg.DefaultChromosomeLength, "chromosome length"),
		mutationRate:   fs.Float64("mutation-rate", genalg.DefaultMutationRate, "per-gene mutation probability"),
		crossoverRate:  fs.Float64("crossover-rate", genalg.DefaultCrossoverRate, "per-individual crossover probability"),
		elitism:        fs.Int("elitism", genalg.DefaultElitismCount, "number of fittest individuals spared from variation"),
		generations:    fs.Int("gens", genalg.DefaultGenerations, "generation cap"),
		seed:           fs.Int64("seed", 1, "rng seed"),
		targetFitness:  fs.Float64("target-fitness", 0, "stop once best fitness reaches this value (0 requires the exact optimum)"),
		plateauWindow:  fs.Int("plateau", 0, "stop after this many generations without improvement (0 disables)"),
	}
}

// apply copies explicitly set flags onto req, so flags override the config
// file and the config file overrides the defaults.
func (f runFlags) apply(fs *flag.FlagSet, req *genalg.RunRequest) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "run-id":
			req.RunID = *f.runID
		case "objective":
			req.Objective = *f.objective
		case "selection":
			req.Selection = *f.selection
		case "tournament-size":
			req.TournamentSize = *f.tournamentSize
		case "pop":
			req.PopulationSize = *f.population
		case "length":
			req.ChromosomeLength = *f.length
		case "mutation-rate":
			req.MutationRate = genalg.Float64(*f.mutationRate)
		case "crossover-rate":
			req.CrossoverRate = genalg.Float64(*f.crossoverRate)
		case "elitism":
			req.ElitismCount = genalg.Int(*f.elitism)
		case "gens":
			req.Generations = *f.generations
		case "seed":
			req.Seed = *f.seed
		case "target-fitness":
			req.TargetFitness = *f.targetFitness
		case "plateau":
			req.PlateauWindow = *f.plateauWindow
		}
	})
}
