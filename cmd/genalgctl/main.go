package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"genalg/internal/storage"
	"genalg/pkg/genalg"
)

const (
	exportsDir    = "exports"
	defaultDBPath = "genalg.db"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, args[1:])
	case "benchmark":
		return runBenchmark(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "diagnostics":
		return runDiagnostics(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "objectives":
		return runObjectives(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

// clientFlags are shared by every command that touches the store.
type clientFlags struct {
	storeKind *string
	dbPath    *string
	verbose   *bool
}

func registerClientFlags(fs *flag.FlagSet) clientFlags {
	return clientFlags{
		storeKind: fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite"),
		dbPath:    fs.String("db-path", defaultDBPath, "sqlite database path"),
		verbose:   fs.Bool("v", false, "log every generation to stderr"),
	}
}

func (f clientFlags) open(ctx context.Context) (*genalg.Client, error) {
	level := slog.LevelWarn
	if *f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := genalg.New(genalg.Options{
		StoreKind:  *f.storeKind,
		DBPath:     *f.dbPath,
		ExportsDir: exportsDir,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Init(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runFlags := registerRunFlags(fs)
	jsonOut := fs.Bool("json", false, "emit run summary as JSON")
	cf := registerClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	runFlags.apply(fs, &req)

	client, err := cf.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"run_id":          summary.RunID,
			"generations":     summary.Generations,
			"converged":       summary.Converged,
			"best_fitness":    summary.BestFitness,
			"best_chromosome": summary.BestChromosome,
		})
	}

	fmt.Printf("run completed run_id=%s generations=%d converged=%t best_fitness=%.6f\n",
		summary.RunID,
		summary.Generations,
		summary.Converged,
		summary.BestFitness,
	)
	fmt.Printf("best_chromosome=%s\n", summary.BestChromosome)
	return nil
}

func runBenchmark(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runFlags := registerRunFlags(fs)
	trials := fs.Int("trials", genalg.DefaultTrials, "number of independent trials")
	showTrials := fs.Bool("show-trials", false, "print one line per trial")
	jsonOut := fs.Bool("json", false, "emit benchmark summary as JSON")
	cf := registerClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *trials <= 0 {
		return errors.New("trials must be > 0")
	}

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	runFlags.apply(fs, &req)

	client, err := cf.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	out, err := client.Benchmark(ctx, genalg.BenchmarkRequest{Run: req, Trials: *trials})
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"summary": out.Summary,
			"trials":  out.Trials,
		})
	}

	if *showTrials {
		for _, trial := range out.Trials {
			fmt.Printf("trial seed=%d run_id=%s generations=%d converged=%t best_fitness=%.6f\n",
				trial.Seed,
				trial.RunID,
				trial.Generations,
				trial.Converged,
				trial.BestFitness,
			)
		}
	}
	s := out.Summary
	fmt.Printf("benchmark trials=%d converged=%d convergence_rate=%.4f mean_generations=%.2f median_generations=%.2f stddev_generations=%.2f max_generations=%d\n",
		s.Trials,
		s.Converged,
		s.ConvergenceRate,
		s.MeanGenerations,
		s.MedianGenerations,
		s.StdDevGenerations,
		s.MaxGenerations,
	)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	cf := registerClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := cf.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, genalg.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	for _, r := range runs {
		fmt.Printf("run_id=%s created_at=%s objective=%s selection=%s seed=%d pop=%d length=%d generations=%d converged=%t best_fitness=%.6f\n",
			r.ID,
			r.CreatedAtUTC,
			r.Objective,
			r.Selection,
			r.Seed,
			r.PopulationSize,
			r.ChromosomeLength,
			r.Generations,
			r.Converged,
			r.BestFitness,
		)
	}
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show fitness history for the most recent run")
	limit := fs.Int("limit", 50, "max generations to print (0 for all)")
	jsonOut := fs.Bool("json", false, "emit fitness history as JSON")
	cf := registerClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkRunSelector("fitness", *runID, *latest); err != nil {
		return err
	}

	client, err := cf.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, genalg.FitnessHistoryRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("no fitness history")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}

	for i, best := range history {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	return nil
}

func runDiagnostics(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diagnostics", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show diagnostics for the most recent run")
	limit := fs.Int("limit", 50, "max generations to print (0 for all)")
	jsonOut := fs.Bool("json", false, "emit diagnostics as JSON")
	cf := registerClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkRunSelector("diagnostics", *runID, *latest); err != nil {
		return err
	}

	client, err := cf.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	diagnostics, err := client.Diagnostics(ctx, genalg.DiagnosticsRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	if len(diagnostics) == 0 {
		fmt.Println("no diagnostics")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	}

	for _, d := range diagnostics {
		fmt.Printf("generation=%d best=%.6f mean=%.6f min=%.6f stddev=%.6f population_fitness=%.6f unique=%d\n",
			d.Generation,
			d.BestFitness,
			d.MeanFitness,
			d.MinFitness,
			d.StdDevFitness,
			d.PopulationFitness,
			d.UniqueChromosomes,
		)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run")
	outDir := fs.String("out", exportsDir, "export output directory")
	cf := registerClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkRunSelector("export", *runID, *latest); err != nil {
		return err
	}

	client, err := cf.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	exported, err := client.Export(ctx, genalg.ExportRequest{
		RunID:  *runID,
		Latest: *latest,
		OutDir: *outDir,
	})
	if err != nil {
		return err
	}

	fmt.Printf("exported run_id=%s to=%s\n", exported.RunID, filepath.Clean(exported.Directory))
	return nil
}

func runObjectives(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("objectives", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := genalg.New(genalg.Options{})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	for _, obj := range client.Objectives() {
		fmt.Printf("objective=%s description=%q\n", obj.Name, obj.Description)
	}
	return nil
}

func checkRunSelector(command, runID string, latest bool) error {
	if runID != "" && latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if runID == "" && !latest {
		return fmt.Errorf("%s requires --run-id or --latest", command)
	}
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: genalgctl <run|benchmark|runs|fitness|diagnostics|export|objectives> [flags]", msg)
}
