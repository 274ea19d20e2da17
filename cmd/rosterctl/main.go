// rosterctl drives the same generation orchestrator the HTTP server uses,
// for an operator who wants to produce or re-run a month's roster without
// going through the API.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carefac/roster/internal/config"
	"github.com/carefac/roster/internal/database"
	"github.com/carefac/roster/internal/repository"
	"github.com/carefac/roster/pkg/logger"
	"github.com/carefac/roster/pkg/model"
	"github.com/carefac/roster/pkg/roster"
	"github.com/carefac/roster/pkg/stats"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "rosterctl",
		Short: "Operate the roster generator from the command line",
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file layered on top of env vars")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		os.Setenv("ROSTER_CONFIG_FILE", configFile)
	}
	return config.Load()
}

func generateCmd() *cobra.Command {
	var year, month, targetHolidays int
	var seed int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a month's roster and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: "console", Output: "stdout"})

			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}
			if seed == 0 {
				seed = cfg.Roster.RNGSeed
			}
			if targetHolidays == 0 {
				targetHolidays = cfg.Roster.DefaultTargetHolidays
			}

			db, err := database.New(&cfg.Database)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			staffRepo := repository.NewStaffRepository(db)
			shiftRepo := repository.NewShiftRepository(db)

			spec := model.JobSpec{Year: year, Month: month, TargetHolidays: targetHolidays}

			var store roster.ShiftStore = shiftRepo
			if dryRun {
				store = discardStore{}
			}

			result, err := roster.Generate(context.Background(), staffRepo, store, spec, seed)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}

			fmt.Printf("generated %d-%02d: status=%s shifts=%d\n", year, month, result.Status, len(result.Shifts))

			staffList, err := staffRepo.ListStaff(context.Background())
			if err == nil {
				fairness := stats.NewFairnessAnalyzer().Analyze(result.Shifts, staffList)
				fmt.Printf("fairness score: %.1f (hours gini %.3f)\n", fairness.OverallFairnessScore, fairness.HoursGini)
			}

			if dryRun {
				fmt.Println("dry run: nothing was persisted")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "target year")
	cmd.Flags().IntVar(&month, "month", 0, "target month (1-12)")
	cmd.Flags().IntVar(&targetHolidays, "target-holidays", 0, "target number of holiday days per staff member (defaults to config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "RNG seed for tie-breaking (defaults to config, 0 means wall-clock)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the solver without persisting the result")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")

	return cmd
}

func migrateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: "console", Output: "stdout"})

			db, err := database.New(&cfg.Database)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("read migrations dir: %w", err)
			}
			var files []string
			for _, e := range entries {
				if !e.IsDir() && fs.ValidPath(e.Name()) {
					files = append(files, e.Name())
				}
			}
			sort.Strings(files)

			for _, name := range files {
				path := dir + "/" + name
				sqlBytes, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				if _, err := db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
					return fmt.Errorf("apply %s: %w", name, err)
				}
				fmt.Printf("applied %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory of .sql migration files, applied in filename order")
	return cmd
}

// discardStore lets --dry-run exercise the full solve without touching the
// database: ReplaceMonth is a no-op instead of being skipped entirely, so
// the orchestrator's own persistence step still runs end to end.
type discardStore struct{}

func (discardStore) PriorMonthTail(ctx context.Context, year, month int, staffIDs []uuid.UUID) (map[uuid.UUID]roster.PriorTail, error) {
	return nil, nil
}

func (discardStore) ReplaceMonth(ctx context.Context, year, month int, shifts []*model.Shift) error {
	return nil
}
