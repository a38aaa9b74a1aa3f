package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/charts"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/export"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		outPath string
		watch   bool
		open    bool
	)

	cmd := &cobra.Command{
		Use:   "report [analysis.json]",
		Short: "Render the HTML chart report from a saved analysis",
		Long: "report reads a summary written by simulate (draft_analysis_<set>.json in\n" +
			"the output directory by default) and renders draft_report_<set>.html.\n" +
			"With --watch the report is re-rendered whenever the analysis changes.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setCode := a.cfg.Catalog.SetCode

			analysisPath := filepath.Join(a.cfg.Report.OutputDir, export.AnalysisFilename(setCode))
			if len(args) == 1 {
				analysisPath = args[0]
			}
			if outPath == "" {
				outPath = filepath.Join(filepath.Dir(analysisPath), export.ReportFilename(setCode))
			}

			report := charts.NewReport(setCode)
			report.Names = a.cfg.ArchetypeTable().Name

			render := func() error {
				summary, err := export.ReadAnalysis(analysisPath)
				if err != nil {
					return err
				}
				if err := report.Render(summary, outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", outPath)
				return nil
			}

			if err := render(); err != nil {
				return err
			}

			if open {
				if err := charts.OpenInBrowser(outPath); err != nil {
					a.logger.Warn("could not open browser", "error", err)
				}
			}

			if !watch {
				return nil
			}
			err := charts.Watch(cmd.Context(), analysisPath, render, a.logger)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outPath, "out", "o", "", "HTML output path (default: next to the analysis)")
	f.BoolVar(&watch, "watch", false, "Re-render when the analysis file changes")
	f.BoolVar(&open, "open", false, "Open the report in the default browser")

	return cmd
}
