package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/display"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/export"
)

func newBatchesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Inspect simulation batches saved in the database",
	}

	cmd.AddCommand(
		newBatchesListCmd(a),
		newBatchesShowCmd(a),
		newBatchesDeleteCmd(a),
		newBatchesExportCmd(a),
	)

	return cmd
}

func newBatchesListCmd(a *app) *cobra.Command {
	var (
		allSets bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored batches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			defer a.closeStore(store)

			setCode := a.cfg.Catalog.SetCode
			if allSets {
				setCode = ""
			}
			batches, err := store.ListBatches(cmd.Context(), setCode, limit)
			if err != nil {
				return err
			}

			display.NewSummaryDisplayer(cmd.OutOrStdout(), a.cfg.ArchetypeTable()).DisplayBatches(batches)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&allSets, "all", false, "List batches of every set")
	f.IntVarP(&limit, "limit", "l", 20, "Maximum batches to list (0 for all)")

	return cmd
}

func newBatchesShowCmd(a *app) *cobra.Command {
	var decks bool

	cmd := &cobra.Command{
		Use:   "show <batch-id>",
		Short: "Show a stored batch summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			defer a.closeStore(store)

			ctx := cmd.Context()
			batch, err := store.GetBatch(ctx, args[0])
			if err != nil {
				return err
			}
			summary, err := store.GetBatchSummary(ctx, batch.ID)
			if err != nil {
				return err
			}

			d := display.NewSummaryDisplayer(cmd.OutOrStdout(), a.cfg.ArchetypeTable())
			if !decks {
				d.DisplayBatch(batch, nil)
				d.DisplaySummary(summary, batch.Runs)
				return nil
			}

			stats, err := store.GetBatchDecks(ctx, batch.ID)
			if err != nil {
				return err
			}
			d.DisplayBatch(batch, stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&decks, "decks", false, "Show per-deck statistics instead of the summary")

	return cmd
}

func newBatchesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete a stored batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			defer a.closeStore(store)

			if err := store.DeleteBatch(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted batch %s\n", args[0])
			return nil
		},
	}
}

func newBatchesExportCmd(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export <batch-id>",
		Short: "Write the records CSV and analysis JSON of a stored batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireStore()
			if err != nil {
				return err
			}
			defer a.closeStore(store)

			ctx := cmd.Context()
			batch, err := store.GetBatch(ctx, args[0])
			if err != nil {
				return err
			}
			records, err := store.GetBatchRecords(ctx, batch.ID)
			if err != nil {
				return err
			}
			summary, err := store.GetBatchSummary(ctx, batch.ID)
			if err != nil {
				return err
			}

			if outputDir == "" {
				outputDir = a.cfg.Report.OutputDir
			}
			files, err := export.WriteBatch(outputDir, batch.SetCode, records, summary, export.Options{
				PrettyJSON: a.cfg.Report.PrettyJSON,
				Overwrite:  a.cfg.Report.Overwrite,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Records:  %s\n", files.Records)
			fmt.Fprintf(out, "Analysis: %s\n", files.Analysis)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (overrides report.output_dir)")

	return cmd
}
