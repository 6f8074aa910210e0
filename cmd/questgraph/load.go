package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type loadSummary struct {
	Quests     int    `json:"quests"`
	QuestLines int    `json:"quest_lines"`
	HasVersion bool   `json:"has_version"`
	Version    string `json:"version,omitempty"`
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Parse and validate a DefaultQuests tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := loadSummary{
				Quests:     len(app.DB.Quests),
				QuestLines: len(app.DB.QuestLines),
			}
			if app.DB.Settings != nil {
				summary.HasVersion = true
				summary.Version = app.DB.Settings.Version
			}

			if app.JSON {
				enc := json.NewEncoder(app.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			fmt.Fprintf(app.Out, "quests: %d\n", summary.Quests)
			fmt.Fprintf(app.Out, "quest lines: %d\n", summary.QuestLines)
			if summary.HasVersion {
				fmt.Fprintf(app.Out, "settings version: %s\n", summary.Version)
			}
			return nil
		},
	}
}
