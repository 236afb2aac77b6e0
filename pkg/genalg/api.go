package genalg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"genalg/internal/ga"
	"genalg/internal/model"
	"genalg/internal/problem"
	"genalg/internal/stats"
	"genalg/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "genalg.db"

	DefaultPopulationSize   = 50
	DefaultChromosomeLength = 50
	DefaultMutationRate     = 0.01
	DefaultCrossoverRate    = 0.95
	DefaultElitismCount     = 5
	DefaultGenerations      = 1000
	DefaultTrials           = 100

	// createdAtLayout is fixed width so timestamps sort lexically.
	createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
	Logger     *slog.Logger
}

type Client struct {
	store      storage.Store
	exportsDir string
	log        *slog.Logger
}

// RunRequest configures one run. Zero values take the package defaults;
// the rates and the elitism count are pointers so an explicit zero can be
// told apart from an unset field.
type RunRequest struct {
	RunID            string
	Objective        string
	Selection        string
	TournamentSize   int
	PopulationSize   int
	ChromosomeLength int
	MutationRate     *float64
	CrossoverRate    *float64
	ElitismCount     *int
	Generations      int
	Seed             int64

	// TargetFitness replaces the exact optimum test when > 0.
	TargetFitness float64
	// PlateauWindow stops a run after that many generations without
	// improvement when > 0.
	PlateauWindow int
}

type RunSummary struct {
	RunID            string
	Generations      int
	Converged        bool
	BestFitness      float64
	BestChromosome   string
	BestByGeneration []float64
	Diagnostics      []model.GenerationDiagnostics
}

type BenchmarkRequest struct {
	Run    RunRequest
	Trials int
}

type BenchmarkSummary struct {
	Trials  []stats.TrialResult
	Summary stats.TrialSummary
	Curve   []stats.CurvePoint
}

type RunsRequest struct {
	Limit int
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type DiagnosticsRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
	PlotPath  string
}

type ObjectiveItem struct {
	Name        string
	Description string
}

func Float64(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		exportsDir: exportsDir,
		log:        logger,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Benchmark runs independent trials with seeds Seed, Seed+1, ... and
// summarizes how many converged and how fast.
func (c *Client) Benchmark(ctx context.Context, req BenchmarkRequest) (BenchmarkSummary, error) {
	trials := req.Trials
	if trials == 0 {
		trials = DefaultTrials
	}
	if trials < 0 {
		return BenchmarkSummary{}, errors.New("trials must be > 0")
	}

	results := make([]stats.TrialResult, 0, trials)
	histories := make([][]float64, 0, trials)
	for i := 0; i < trials; i++ {
		runReq := req.Run
		runReq.RunID = ""
		runReq.Seed = req.Run.Seed + int64(i)

		summary, err := c.Run(ctx, runReq)
		if err != nil {
			return BenchmarkSummary{}, fmt.Errorf("trial %d: %w", i+1, err)
		}
		results = append(results, stats.TrialResult{
			RunID:       summary.RunID,
			Seed:        runReq.Seed,
			Generations: summary.Generations,
			Converged:   summary.Converged,
			BestFitness: summary.BestFitness,
		})
		histories = append(histories, summary.BestByGeneration)
	}

	out := BenchmarkSummary{
		Trials:  results,
		Summary: stats.SummarizeTrials(results),
		Curve:   stats.AverageCurve(histories),
	}
	c.log.Info("benchmark finished",
		"trials", out.Summary.Trials,
		"converged", out.Summary.Converged,
		"mean_generations", out.Summary.MeanGenerations,
	)
	return out, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]model.RunRecord, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}
	return runs, nil
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return append([]float64(nil), history...), nil
}

func (c *Client) Diagnostics(ctx context.Context, req DiagnosticsRequest) ([]model.GenerationDiagnostics, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	diagnostics, ok, err := c.store.GetGenerationDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("diagnostics not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(diagnostics) > req.Limit {
		diagnostics = diagnostics[:req.Limit]
	}
	return diagnostics, nil
}

// Export writes the run record, fitness history, diagnostics and a fitness
// plot under OutDir/<run-id>, OutDir defaulting to the client exports dir.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = c.exportsDir
	}

	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("run not found: %s", runID)
	}
	history, _, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}
	diagnostics, _, err := c.store.GetGenerationDiagnostics(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}

	dir, err := stats.WriteRunArtifacts(outDir, stats.RunArtifacts{
		Run:              run,
		BestByGeneration: history,
		Diagnostics:      diagnostics,
	})
	if err != nil {
		return ExportSummary{}, err
	}

	out := ExportSummary{RunID: runID, Directory: dir}
	if len(history) > 0 {
		out.PlotPath = filepath.Join(dir, stats.FitnessPlotFile)
		if err := stats.WriteFitnessPlot(out.PlotPath, history, diagnostics); err != nil {
			return ExportSummary{}, fmt.Errorf("write fitness plot: %w", err)
		}
	}
	return out, nil
}

func (c *Client) Objectives() []ObjectiveItem {
	objectives := problem.List()
	out := make([]ObjectiveItem, 0, len(objectives))
	for _, obj := range objectives {
		out = append(out, ObjectiveItem{Name: obj.Name, Description: obj.Description})
	}
	return out
}

// Run evolves one population to completion and persists its summary,
// fitness history and per-generation diagnostics. Converged reports that the
// termination policy fired before the generation cap.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	req = withDefaults(req)

	objective, err := problem.Resolve(req.Objective)
	if err != nil {
		return RunSummary{}, err
	}
	if err := objective.CheckLength(req.ChromosomeLength); err != nil {
		return RunSummary{}, err
	}
	selector, err := ga.ResolveSelector(req.Selection, req.TournamentSize)
	if err != nil {
		return RunSummary{}, err
	}

	engine, err := ga.NewEngine(ga.Config{
		PopulationSize: req.PopulationSize,
		MutationRate:   *req.MutationRate,
		CrossoverRate:  *req.CrossoverRate,
		ElitismCount:   *req.ElitismCount,
		Fitness:        objective.Fitness,
		Termination:    terminationFor(req),
		Selector:       selector,
		Seed:           req.Seed,
	})
	if err != nil {
		return RunSummary{}, err
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := c.log.With("run_id", runID, "objective", objective.Name)

	monitor, err := ga.NewMonitor(ga.MonitorConfig{
		Engine:           engine,
		ChromosomeLength: req.ChromosomeLength,
		Generations:      req.Generations,
		Logger:           logger,
	})
	if err != nil {
		return RunSummary{}, err
	}
	result, err := monitor.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	record := model.RunRecord{
		VersionedRecord:  storage.CurrentVersion(),
		ID:               runID,
		CreatedAtUTC:     time.Now().UTC().Format(createdAtLayout),
		Objective:        objective.Name,
		Selection:        engine.SelectorName(),
		PopulationSize:   req.PopulationSize,
		ChromosomeLength: req.ChromosomeLength,
		MutationRate:     *req.MutationRate,
		CrossoverRate:    *req.CrossoverRate,
		ElitismCount:     *req.ElitismCount,
		Seed:             req.Seed,
		MaxGenerations:   req.Generations,
		Generations:      result.Generations,
		Converged:        result.Converged,
		BestFitness:      result.Best.Fitness(),
		BestChromosome:   result.Best.String(),
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, fmt.Errorf("save run: %w", err)
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, result.BestByGeneration); err != nil {
		return RunSummary{}, fmt.Errorf("save fitness history: %w", err)
	}
	if err := c.store.SaveGenerationDiagnostics(ctx, runID, result.Diagnostics); err != nil {
		return RunSummary{}, fmt.Errorf("save diagnostics: %w", err)
	}

	return RunSummary{
		RunID:            runID,
		Generations:      result.Generations,
		Converged:        result.Converged,
		BestFitness:      record.BestFitness,
		BestChromosome:   record.BestChromosome,
		BestByGeneration: result.BestByGeneration,
		Diagnostics:      result.Diagnostics,
	}, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if latest {
		runs, err := c.store.ListRuns(ctx)
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			return "", errors.New("no runs available")
		}
		return runs[0].ID, nil
	}
	if runID == "" {
		return "", errors.New("run id or latest is required")
	}
	return runID, nil
}

func withDefaults(req RunRequest) RunRequest {
	if req.PopulationSize == 0 {
		req.PopulationSize = DefaultPopulationSize
	}
	if req.ChromosomeLength == 0 {
		req.ChromosomeLength = DefaultChromosomeLength
	}
	if req.MutationRate == nil {
		req.MutationRate = Float64(DefaultMutationRate)
	}
	if req.CrossoverRate == nil {
		req.CrossoverRate = Float64(DefaultCrossoverRate)
	}
	if req.ElitismCount == nil {
		req.ElitismCount = Int(DefaultElitismCount)
	}
	if req.Generations == 0 {
		req.Generations = DefaultGenerations
	}
	if req.Objective == "" {
		req.Objective = problem.AllOnesName
	}
	return req
}

func terminationFor(req RunRequest) ga.TerminationFunc {
	done := ga.ExactOptimum(1.0)
	if req.TargetFitness > 0 {
		done = ga.FitnessThreshold(req.TargetFitness)
	}
	if req.PlateauWindow > 0 {
		return ga.AnyOf(done, ga.Plateau(req.PlateauWindow, 0))
	}
	return done
}

