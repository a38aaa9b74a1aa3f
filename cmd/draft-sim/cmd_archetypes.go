package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/display"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
)

func newArchetypesCmd(a *app) *cobra.Command {
	var weights bool

	cmd := &cobra.Command{
		Use:   "archetypes",
		Short: "List the archetype profiles and their display names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := a.cfg.ArchetypeTable()
			out := cmd.OutOrStdout()

			if !weights {
				display.NewSummaryDisplayer(out, table).DisplayArchetypes(table.Profiles())
				return nil
			}

			dist, err := a.distribution()
			if err != nil {
				return err
			}
			if dist.Normalized() {
				fmt.Fprintln(out, "Configured weights do not sum to 1 and were rescaled.")
			}
			for _, code := range dist.Codes() {
				fmt.Fprintf(out, "%-8s %-28s %.3f\n", code, table.Name(code), dist.Weight(code))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&weights, "weights", false, "Show the archetype distribution weights instead")

	return cmd
}

// distribution returns the configured archetype distribution, or the
// built-in one when none is configured.
func (a *app) distribution() (*draft.Distribution, error) {
	w := a.cfg.Simulation.Distribution
	if len(w) == 0 {
		w = draft.DefaultDistributionWeights()
	}
	return draft.NewDistribution(w, a.logger)
}
