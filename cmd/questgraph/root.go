package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"questgraph/config"
	iconfig "questgraph/internal/config"
	"questgraph/internal/config/yamlstore"
	"questgraph/internal/datasource"
	"questgraph/internal/questdb"

	"github.com/spf13/cobra"
)

// App holds the application state shared across commands.
type App struct {
	DB   *questdb.Database
	Cfg  *config.Config
	Out  io.Writer
	Err  io.Writer
	JSON bool
}

var (
	rootFlag   string
	configFlag string
	jsonOutput bool

	app *App
)

var rootCmd = &cobra.Command{
	Use:   "questgraph",
	Short: "Normalize and analyze a BetterQuesting DefaultQuests tree",
	Long: `questgraph loads a DefaultQuests directory tree (the NBT-tagged JSON
dialect used by the BetterQuesting Minecraft mod), builds a cross-referenced
quest database, and computes deterministic importance scores over the
resulting prerequisite graph.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Apply QUESTGRAPH_JSON env var if --json flag was not explicitly passed.
		if !cmd.Flags().Changed("json") {
			if envJSON := strings.ToLower(os.Getenv(iconfig.EnvJSON)); envJSON == "1" || envJSON == "true" {
				jsonOutput = true
			}
		}

		app = &App{
			Out:  os.Stdout,
			Err:  os.Stderr,
			JSON: jsonOutput,
		}

		if inConfigSubtree(cmd) {
			return nil
		}

		store, err := yamlstore.New(iconfig.ResolvePaths().ConfigFile)
		if err != nil {
			return fmt.Errorf("opening override store: %w", err)
		}
		if err := iconfig.ApplyDefaults(store); err != nil {
			return fmt.Errorf("applying config defaults: %w", err)
		}
		iconfig.ApplyEnvOverrides(store)
		if err := iconfig.Validate(store); err != nil {
			return err
		}

		cfg, err := config.LoadWithOverrides(configFlag, store.All())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		app.Cfg = cfg

		root := rootFlag
		if root == "" {
			root = cfg.Root
		}

		db, err := questdb.Load(cmd.Context(), "", datasource.NewOS(root))
		if err != nil {
			return fmt.Errorf("loading %s: %w", root, err)
		}
		app.DB = db
		return nil
	},
}

// inConfigSubtree reports whether cmd is "config" or one of its subcommands.
// Those operate on the override store directly and don't need a loaded
// quest database.
func inConfigSubtree(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Path to the DefaultQuests directory (default: config root)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "questgraph.yaml", "Path to the questgraph config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
}
