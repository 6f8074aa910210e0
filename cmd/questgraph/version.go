package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the current version of questgraph. It can be overridden at
// build time via -ldflags "-X main.Version=1.2.3".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(map[string]string{
					"version": Version,
				})
			}
			fmt.Printf("questgraph version %s\n", Version)
			return nil
		},
	}
}
