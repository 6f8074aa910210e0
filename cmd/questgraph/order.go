package main

import (
	"encoding/json"
	"fmt"

	"questgraph/internal/importance"
	"questgraph/internal/questid"

	"github.com/spf13/cobra"
)

func newOrderCmd() *cobra.Command {
	var alpha float64
	var useLog, normalize bool
	var alphaSet, logSet, normSet bool

	cmd := &cobra.Command{
		Use:   "order <quest-id>",
		Short: "Print a quest's prerequisites ordered by importance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := questid.Parse(args[0])
			if !ok {
				return fmt.Errorf("invalid quest id: %s", args[0])
			}
			q, ok := app.DB.Quests[id]
			if !ok {
				return fmt.Errorf("no such quest: %s", id)
			}

			if !alphaSet {
				alpha = app.Cfg.Importance.Alpha
			}
			if !logSet {
				useLog = app.Cfg.Importance.UseLog
			}
			if !normSet {
				normalize = app.Cfg.Importance.Normalize
			}

			scores, err := importance.Compute(app.DB, alpha, useLog, normalize)
			if err != nil {
				return err
			}
			ordered := importance.OrderPrerequisites(q, scores)

			if app.JSON {
				out := make([]string, len(ordered))
				for i, pid := range ordered {
					out[i] = pid.String()
				}
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, pid := range ordered {
				fmt.Fprintf(app.Out, "%s\t%.4f\n", pid, scores[pid])
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Propagation weight in [0, 1] (default: config)")
	cmd.Flags().BoolVar(&useLog, "log", false, "Compress raw dependent counts with log1p (default: config)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize scores into [0, 1) (default: config)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		alphaSet = cmd.Flags().Changed("alpha")
		logSet = cmd.Flags().Changed("log")
		normSet = cmd.Flags().Changed("normalize")
	}

	return cmd
}
