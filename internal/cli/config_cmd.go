package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridsec/gridwatch/internal/config"
	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print which config file is in use and the settings after environment
variables and flags are applied.

Settings are looked up in this order: --config, .gridwatch.yaml in the current
or a parent directory, then ~/.config/gridwatch/config.yaml. Any setting can be
overridden with a GRIDWATCH_ environment variable, e.g. GRIDWATCH_BASE_URL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting in the config file",
	Long: `Change a single setting in the config file in use, keeping its comments
and layout.

Keys: ` + strings.Join(config.SettableKeys(), ", "),
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.SettableKeys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfig(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}

func showConfig(w io.Writer) error {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, baseURLFlag, timeoutFlag); err != nil {
		return err
	}

	source := path
	if source == "" {
		source = "(none, using defaults)"
	}
	fmt.Fprintf(w, "%s %s\n\n", ui.MutedStyle().Render("# config file:"), source)

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func setConfig(w io.Writer, key, value string) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Config file not found",
			"Run 'gridwatch init' to create one")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Set %s = %s in %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), key, value, path)
	return nil
}
