package main

import (
	"encoding/json"
	"fmt"
	"sort"

	iconfig "questgraph/internal/config"
	"questgraph/internal/config/yamlstore"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command and its subcommands. These
// operate on the user-level override store (~/.config/questgraph/overrides.yaml)
// rather than the project questgraph.yaml, which is edited by hand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user-level configuration overrides",
		Long: `Manage questgraph's user-level configuration overrides.

Overrides are stored as flat key-value pairs in
~/.config/questgraph/overrides.yaml and apply before the project
questgraph.yaml and before environment variables, letting you set a
personal default (e.g. importance.alpha) without editing the project
file.

Subcommands:
  get       Get an override value
  set       Set an override value
  list      List all override values
  unset     Remove an override value
  validate  Validate the current overrides`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigValidateCmd())

	return cmd
}

func configStore() (iconfig.Store, error) {
	return yamlstore.New(iconfig.ResolvePaths().ConfigFile)
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get an override value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := configStore()
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := store.Get(key)

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"key": key, "value": value,
				})
			}
			if ok {
				fmt.Fprintln(app.Out, value)
			} else {
				fmt.Fprintf(app.Out, "%s (not set)\n", key)
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set an override value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := configStore()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := store.Set(key, value); err != nil {
				return fmt.Errorf("setting config: %w", err)
			}
			if err := iconfig.Validate(store); err != nil {
				return err
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"key": key, "value": value,
				})
			}
			fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
			return nil
		},
	}
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all override values",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := configStore()
			if err != nil {
				return err
			}
			if err := iconfig.ApplyDefaults(store); err != nil {
				return fmt.Errorf("applying config defaults: %w", err)
			}

			all := store.All()
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(all)
			}

			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			fmt.Fprintln(app.Out, "Configuration:")
			for _, k := range keys {
				fmt.Fprintf(app.Out, "  %s = %s\n", k, all[k])
			}
			return nil
		},
	}
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove an override value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := configStore()
			if err != nil {
				return err
			}

			key := args[0]
			if err := store.Unset(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{"key": key})
			}
			fmt.Fprintf(app.Out, "Unset %s\n", key)
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the current overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := configStore()
			if err != nil {
				return err
			}

			validateErr := iconfig.Validate(store)
			if app.JSON {
				issue := ""
				if validateErr != nil {
					issue = validateErr.Error()
				}
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"valid": validateErr == nil,
					"issue": issue,
				})
			}
			if validateErr == nil {
				fmt.Fprintln(app.Out, "Configuration is valid.")
				return nil
			}
			fmt.Fprintln(app.Out, validateErr)
			return validateErr
		},
	}
}
