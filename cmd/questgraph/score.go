package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"questgraph/internal/importance"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type scoreEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}

func newScoreCmd() *cobra.Command {
	var (
		alpha     float64
		useLog    bool
		normalize bool
		alphaSet  bool
		logSet    bool
		normSet   bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute importance scores over the prerequisite graph",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			entries := make([]scoreEntry, 0, len(scores))
			for id, s := range scores {
				name := ""
				if q := app.DB.Quests[id]; q != nil && q.Properties != nil {
					name = q.Properties.Name
				}
				entries = append(entries, scoreEntry{ID: id.String(), Name: name, Score: s})
			}
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].Score != entries[j].Score {
					return entries[i].Score > entries[j].Score
				}
				return entries[i].ID < entries[j].ID
			})

			if app.JSON {
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			printScoreTable(entries)
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

func printScoreTable(entries []scoreEntry) {
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	for _, e := range entries {
		if tty {
			fmt.Fprintf(app.Out, "%10.4f  %-20s  %s\n", e.Score, e.ID, e.Name)
		} else {
			fmt.Fprintf(app.Out, "%s\t%s\t%g\n", e.ID, e.Name, e.Score)
		}
	}
}
