package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/charts"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/config"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/display"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/export"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/metrics"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage"
)

type simulateFlags struct {
	runs         int
	archetype    string
	distribution bool
	seed         uint64
	workers      int
	outputDir    string
	noStore      bool
	noCharts     bool
	showDeck     int
}

func newSimulateCmd(a *app) *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a batch of sealed drafts and analyze the decks",
		Long: "simulate opens one sealed pool per run, builds a deck from it for the\n" +
			"selected archetype and writes the flat records (CSV) and summary (JSON).\n" +
			"With storage enabled the batch is also saved to the database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSimulate(cmd, &flags)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.runs, "runs", "n", 0, "Number of drafts (overrides simulation.runs)")
	f.StringVarP(&flags.archetype, "archetype", "a", "", "Archetype code, auto, or distribution")
	f.BoolVar(&flags.distribution, "distribution", false, "Draw each run's archetype from the weighted distribution")
	f.Uint64Var(&flags.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	f.IntVarP(&flags.workers, "workers", "w", 0, "Parallel workers (0 or 1 runs sequentially)")
	f.StringVarP(&flags.outputDir, "out", "o", "", "Output directory (overrides report.output_dir)")
	f.BoolVar(&flags.noStore, "no-store", false, "Do not save the batch to the database")
	f.BoolVar(&flags.noCharts, "no-charts", false, "Do not render the HTML chart report")
	f.IntVar(&flags.showDeck, "show-deck", -1, "Print the deck of this run in MTGA import format")

	cmd.MarkFlagsMutuallyExclusive("archetype", "distribution")

	return cmd
}

func (a *app) runSimulate(cmd *cobra.Command, flags *simulateFlags) error {
	ctx := cmd.Context()
	cfg := a.cfg

	changed := cmd.Flags().Changed
	if changed("runs") {
		cfg.Simulation.Runs = flags.runs
	}
	if changed("archetype") {
		cfg.Simulation.Archetype = flags.archetype
	}
	if flags.distribution {
		cfg.Simulation.Archetype = config.ArchetypeDistribution
	}
	if changed("seed") {
		cfg.Simulation.Seed = flags.seed
	}
	if changed("workers") {
		cfg.Simulation.Workers = flags.workers
	}
	if changed("out") {
		cfg.Report.OutputDir = flags.outputDir
	}
	if flags.noStore {
		cfg.Storage.Enabled = false
	}
	if flags.noCharts {
		cfg.Report.Charts = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if flags.showDeck >= cfg.Simulation.Runs {
		return fmt.Errorf("--show-deck %d is out of range for %d runs", flags.showDeck, cfg.Simulation.Runs)
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer a.closeStore(store)

	catalog, err := a.catalog(store, false)
	if err != nil {
		return err
	}

	setCode := cfg.Catalog.SetCode
	list, err := catalog.FetchAll(ctx, setCode)
	if err != nil {
		return fmt.Errorf("load catalog for %s: %w", setCode, err)
	}

	pools, err := draft.NewPoolGenerator(list)
	if err != nil {
		return err
	}

	selector, err := cfg.Selector(a.logger)
	if err != nil {
		return err
	}

	table := cfg.ArchetypeTable()
	builder := draft.NewDeckBuilder(&draft.BuilderConfig{
		Archetypes: table,
		Logger:     a.logger,
	})

	simMetrics := metrics.NewSimulationMetrics()
	runner := draft.NewRunner(pools, builder, &draft.RunnerConfig{
		SetCode:  setCode,
		Seed:     cfg.Simulation.Seed,
		Observer: simMetrics,
		Logger:   a.logger,
	})

	a.logger.Info("starting simulation",
		"set", setCode,
		"cards", pools.CatalogSize(),
		"runs", cfg.Simulation.Runs,
		"selector", selector.String(),
	)

	var batch *draft.Batch
	if cfg.Simulation.Workers > 1 {
		batch, err = runner.RunParallel(ctx, cfg.Simulation.Runs, selector, cfg.Simulation.Workers)
	} else {
		batch, err = runner.Run(cfg.Simulation.Runs, selector)
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	a.logger.Info("simulation metrics", "metrics", simMetrics.Snapshot())

	result := storage.NewBatchResult(batch)

	files, err := export.WriteBatch(cfg.Report.OutputDir, setCode, result.Records, result.Summary, export.Options{
		PrettyJSON: cfg.Report.PrettyJSON,
		Overwrite:  cfg.Report.Overwrite,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Batch %s (seed %d)\n", batch.ID, batch.Seed)
	fmt.Fprintf(out, "Records:  %s\n", files.Records)
	fmt.Fprintf(out, "Analysis: %s\n", files.Analysis)

	if store != nil {
		if err := store.SaveBatch(ctx, result); err != nil {
			return fmt.Errorf("save batch: %w", err)
		}
		a.logger.Info("batch saved", "batch", batch.ID, "db", cfg.Storage.Path)
	}

	if cfg.Report.Charts {
		reportPath := filepath.Join(cfg.Report.OutputDir, export.ReportFilename(setCode))
		report := charts.NewReport(setCode)
		report.Names = table.Name
		if err := report.Render(result.Summary, reportPath); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Fprintf(out, "Report:   %s\n", reportPath)
	}

	display.NewSummaryDisplayer(out, table).DisplaySummary(result.Summary, len(batch.Decks))

	if flags.showDeck >= 0 {
		deck := batch.Decks[flags.showDeck]
		fmt.Fprintln(out, draft.FormatDeckSummary(deck, table))
		fmt.Fprint(out, draft.ExportDeckToArena(deck))
	}

	return nil
}
