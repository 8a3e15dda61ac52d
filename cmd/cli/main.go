package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pairscore/adapters/matrix"
	"pairscore/adapters/rng"
	"pairscore/domain/score"
	"pairscore/internal/config"
	"pairscore/internal/engine"
	"pairscore/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "pairscore",
		Short: "Marker-pair permutation scoring over feature-by-sample matrices",
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newCascadeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScoreCmd() *cobra.Command {
	var (
		samplesArg    string
		pairsFile     string
		usedFile      string
		iterations    int
		minIterations int
		minPairs      int
		seed          int64
		useDB         bool
		dataset       string
	)

	cmd := &cobra.Command{
		Use:   "score [matrix-file]",
		Short: "Compute per-sample permutation significance of marker-pair ordering",
		Long: `Score samples by the proportion of marker pairs ordered first-greater-than-second,
then estimate significance against a shuffled null.

The pairs file holds one "first,second" index pair per line (indices into the
used list); the used file holds one feature index per line. Sample ids are
1-based. With --db the matrix is read from DATABASE_URL instead of a file.

Example: pairscore score expr.xlsx --pairs-file pairs.csv --used-file used.txt --samples 1,2,3 --seed 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if iterations == 0 {
				iterations = cfg.Scoring.Iterations
			}
			if minIterations == 0 {
				minIterations = cfg.Scoring.MinIterations
			}
			if minPairs == 0 {
				minPairs = cfg.Scoring.MinPairs
			}

			provider, err := openMatrix(cmd.Context(), cfg, args, useDB, dataset)
			if err != nil {
				return err
			}

			pairs, err := loadPairsFile(pairsFile)
			if err != nil {
				return err
			}
			used, err := loadIndexFile(usedFile)
			if err != nil {
				return err
			}
			samples, err := parseSamples(samplesArg, provider.NumSamples())
			if err != nil {
				return err
			}

			return runScore(cmd.Context(), provider, engine.Request{
				Samples:       samples,
				Pairs:         pairs,
				UsedIndices:   used,
				Iterations:    iterations,
				MinIterations: minIterations,
				MinPairs:      minPairs,
				Seed:          seed,
			})
		},
	}

	cmd.Flags().StringVar(&samplesArg, "samples", "", "Comma-separated 1-based sample ids (default: all)")
	cmd.Flags().StringVar(&pairsFile, "pairs-file", "", "Marker pair file (required)")
	cmd.Flags().StringVar(&usedFile, "used-file", "", "Used feature index file (required)")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "Shuffle trials per sample (default from SCORE_ITERATIONS)")
	cmd.Flags().IntVar(&minIterations, "min-iterations", 0, "Minimum valid trials for a non-missing output")
	cmd.Flags().IntVar(&minPairs, "min-pairs", 0, "Minimum non-tied comparisons for a non-missing score")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")
	cmd.Flags().BoolVar(&useDB, "db", false, "Read the matrix from DATABASE_URL instead of a file")
	cmd.Flags().StringVar(&dataset, "dataset", "", "Dataset name for --db mode (default from DATASET_NAME)")
	cmd.MarkFlagRequired("pairs-file")
	cmd.MarkFlagRequired("used-file")

	return cmd
}

func newCascadeCmd() *cobra.Command {
	var (
		iterations int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "cascade [values...]",
		Short: "Produce a matrix of successive permutations of a value vector",
		Long: `Produce a len(values) x iterations matrix where each column is a shuffle of the
previous column (a dependent permutation chain, not independent permutations).

Example: pairscore cascade 1.5 2.0 3.5 4.0 --iterations 5 --seed 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}
				values[i] = v
			}
			return runCascade(cmd.Context(), values, iterations, seed)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 10, "Number of cascading shuffles (columns)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")

	return cmd
}

func runScore(ctx context.Context, provider ports.MatrixPort, req engine.Request) error {
	eng := engine.New(provider, rng.New())
	report, err := eng.ShuffleScores(ctx, req)
	if err != nil {
		return err
	}

	out := struct {
		Report  *engine.Report              `json:"report"`
		Summary *engine.SignificanceSummary `json:"summary,omitempty"`
	}{report, report.Summary()}

	return printJSON(out)
}

func runCascade(ctx context.Context, values []float64, iterations int, seed int64) error {
	eng := engine.New(nil, rng.New())
	result, err := eng.AutoShuffle(ctx, values, iterations, seed)
	if err != nil {
		return err
	}

	rows, cols := result.Dims()
	grid := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		grid[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			grid[i][j] = result.At(i, j)
		}
	}
	return printJSON(map[string]interface{}{
		"rows":       rows,
		"iterations": cols,
		"matrix":     grid,
	})
}

func openMatrix(ctx context.Context, cfg *config.Config, args []string, useDB bool, dataset string) (ports.MatrixPort, error) {
	if useDB {
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("--db requires DATABASE_URL")
		}
		if dataset == "" {
			dataset = cfg.Database.Dataset
		}
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return matrix.NewPostgres(ctx, db, dataset)
	}

	path := cfg.Data.MatrixFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("matrix file required (argument or MATRIX_FILE)")
	}
	return matrix.OpenFile(path)
}

// parseSamples converts a comma-separated 1-based id list to 0-based
// indices; empty means all samples.
func parseSamples(arg string, nsamples int) ([]int, error) {
	if arg == "" {
		samples := make([]int, nsamples)
		for i := range samples {
			samples[i] = i
		}
		return samples, nil
	}

	parts := strings.Split(arg, ",")
	samples := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid sample id %q: %w", part, err)
		}
		samples = append(samples, id-1)
	}
	return samples, nil
}

// loadPairsFile reads "first,second" integer lines; # starts a comment.
func loadPairsFile(path string) (score.Pairs, error) {
	lines, err := readDataLines(path)
	if err != nil {
		return score.Pairs{}, err
	}

	pairs := score.Pairs{
		First:  make([]int, 0, len(lines)),
		Second: make([]int, 0, len(lines)),
	}
	for n, line := range lines {
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return score.Pairs{}, fmt.Errorf("%s line %d: want \"first,second\", got %q", path, n+1, line)
		}
		first, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return score.Pairs{}, fmt.Errorf("%s line %d: %w", path, n+1, err)
		}
		second, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return score.Pairs{}, fmt.Errorf("%s line %d: %w", path, n+1, err)
		}
		pairs.First = append(pairs.First, first)
		pairs.Second = append(pairs.Second, second)
	}
	return pairs, nil
}

// loadIndexFile reads one integer per line; # starts a comment.
func loadIndexFile(path string) ([]int, error) {
	lines, err := readDataLines(path)
	if err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(lines))
	for n, line := range lines {
		idx, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n+1, err)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}

func readDataLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
