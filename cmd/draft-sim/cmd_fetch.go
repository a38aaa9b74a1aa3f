package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		refresh bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the booster card list of a set and cache it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer a.closeStore(store)

			catalog, err := a.catalog(store, refresh)
			if err != nil {
				return err
			}

			setCode := a.cfg.Catalog.SetCode
			list, err := catalog.FetchAll(cmd.Context(), setCode)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", setCode, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d cards for %s\n", len(list), setCode)

			if outPath != "" {
				if err := cards.SaveFile(outPath, list); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", outPath)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&refresh, "refresh", false, "Ignore the cache and refetch")
	f.StringVarP(&outPath, "out", "o", "", "Also write the cards to a JSON file usable as a file catalog")

	return cmd
}
