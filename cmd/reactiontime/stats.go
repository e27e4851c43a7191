package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/stats"
)

var (
	resetMode string
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-mode statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, closeStore, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		if resetMode != "" {
			mode, err := reactiontime.ParseMode(resetMode)
			if err != nil {
				return err
			}
			if err := store.ResetMode(ctx, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", mode)
			return nil
		}

		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(store.Snapshot())
		}
		writeSummaries(cmd.OutOrStdout(), store)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&resetMode, "reset", "", "Clear the statistics of one mode")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the raw records as JSON")
}

func writeSummaries(w io.Writer, s stats.Store) {
	fmt.Fprintf(w, "%-10s %7s %8s %6s %8s %7s %9s\n", "MODE", "TRIALS", "MEAN", "BEST", "STDDEV", "ERRORS", "MOVEMENT")
	for _, mode := range reactiontime.Modes() {
		sum := s.Summary(mode)
		if sum.Count == 0 {
			fmt.Fprintf(w, "%-10s %7d %8s %6s %8s %7d %9s\n", mode, 0, "-", "-", "-", sum.Errors, "-")
			continue
		}
		movement := "-"
		if sum.MeanMovement > 0 {
			movement = fmt.Sprintf("%.0f", sum.MeanMovement)
		}
		fmt.Fprintf(w, "%-10s %7d %8.1f %6d %8.1f %7d %9s\n",
			mode, sum.Count, sum.Mean, sum.Min, sum.StdDev, sum.Errors, movement)
	}
}
