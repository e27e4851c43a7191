package main

import (
	"fmt"

	"github.com/spf13/cobra"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/production"
	"github.com/daiboyi110/ReactionTime/statechart"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the trial state chart as Graphviz DOT",
	RunE: func(cmd *cobra.Command, args []string) error {
		trialCfg, err := cfg.TrialConfig()
		if err != nil {
			return err
		}
		m, err := reactiontime.NewMachine(trialCfg, reactiontime.WithLogger(logger))
		if err != nil {
			return err
		}
		states, current := m.Chart()
		v := &production.DefaultVisualizer{EventName: reactiontime.EventName}
		fmt.Fprint(cmd.OutOrStdout(), v.ExportDOT(states, statechart.StateID(current)))
		return nil
	},
}
