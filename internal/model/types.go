package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one completed evolutionary run.
type RunRecord struct {
	VersionedRecord
	ID               string  `json:"id"`
	CreatedAtUTC     string  `json:"created_at_utc"`
	Objective        string  `json:"objective"`
	Selection        string  `json:"selection"`
	PopulationSize   int     `json:"population_size"`
	ChromosomeLength int     `json:"chromosome_length"`
	MutationRate     float64 `json:"mutation_rate"`
	CrossoverRate    float64 `json:"crossover_rate"`
	ElitismCount     int     `json:"elitism_count"`
	Seed             int64   `json:"seed"`
	MaxGenerations   int     `json:"max_generations"`
	Generations      int     `json:"generations"`
	Converged        bool    `json:"converged"`
	BestFitness      float64 `json:"best_fitness"`
	BestChromosome   string  `json:"best_chromosome"`
}

type GenerationDiagnostics struct {
	Generation        int     `json:"generation"`
	BestFitness       float64 `json:"best_fitness"`
	MeanFitness       float64 `json:"mean_fitness"`
	MinFitness        float64 `json:"min_fitness"`
	StdDevFitness     float64 `json:"stddev_fitness"`
	PopulationFitness float64 `json:"population_fitness"`
	UniqueChromosomes int     `json:"unique_chromosomes"`
}
