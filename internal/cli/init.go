package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/gridsec/gridwatch/internal/client"
	"github.com/gridsec/gridwatch/internal/config"
	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
	"github.com/gridsec/gridwatch/internal/ui"
)

// connectionCheckTimeout bounds the health probe init runs before saving.
const connectionCheckTimeout = 10 * time.Second

// Refresh choices offered by the interactive form.
var refreshChoices = []huh.Option[string]{
	huh.NewOption("Manual (press space)", "0s"),
	huh.NewOption("Every 10 seconds", "10s"),
	huh.NewOption("Every 30 seconds", "30s"),
	huh.NewOption("Every minute", "1m"),
}

// InitOptions holds options for the init command.
type InitOptions struct {
	BaseURL        string    // Pre-specified service URL
	Refresh        string    // Pre-specified refresh interval, e.g. "30s"
	Dir            string    // Directory to write the config into (default: current)
	Overwrite      bool      // Overwrite existing config without asking
	NonInteractive bool      // Skip prompts, use defaults
	SkipCheck      bool      // Don't probe the backend before saving
	Out            io.Writer // Defaults to stdout
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .gridwatch.yaml config in the current directory",
	Long: `Create a .gridwatch.yaml configuration file.

Prompts for the analysis service URL and how often the dashboard should
refresh, checks the service answers, then writes the file. Use
--non-interactive in scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Out = cmd.OutOrStdout()
		if opts.BaseURL == "" {
			opts.BaseURL = baseURLFlag
		}
		return Init(opts)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	f := initCmd.Flags()
	f.StringVar(&initOpts.BaseURL, "url", "", "analysis service URL")
	f.StringVar(&initOpts.Refresh, "refresh", "", "auto-refresh interval (0s for manual)")
	f.StringVar(&initOpts.Dir, "dir", "", "directory to write the config into")
	f.BoolVar(&initOpts.Overwrite, "force", false, "overwrite an existing config")
	f.BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and use flags or defaults")
	f.BoolVar(&initOpts.SkipCheck, "skip-check", false, "don't test the connection before saving")
}

// Init creates a new .gridwatch.yaml configuration file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	overwrite := opts.Overwrite
	if _, err := os.Stat(configPath); err == nil && !overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	baseURL := strings.TrimSpace(opts.BaseURL)
	refresh := strings.TrimSpace(opts.Refresh)

	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	if refresh == "" {
		refresh = "0s"
	}

	if !opts.NonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Analysis service URL").
					Description("Where the Smart Grid backend is running").
					Placeholder(config.DefaultBaseURL).
					Value(&baseURL).
					Validate(config.ValidateBaseURL),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Dashboard refresh").
					Description("Run simulations on a timer, or only when you press space").
					Options(refreshChoices...).
					Value(&refresh),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive flag")
		}
	}

	cfg := config.DefaultConfig()
	cfg.BaseURL = strings.TrimSpace(baseURL)
	interval, err := parseDurationFlag("--refresh", refresh)
	if err != nil {
		return err
	}
	cfg.RefreshInterval = interval
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !opts.SkipCheck {
		checkConnection(out, cfg)
	}

	if err := config.Write(configPath, cfg, overwrite); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s Created %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  %s gridwatch health    # check the backend answers\n", ui.SymbolBullet)
	fmt.Fprintf(out, "  %s gridwatch           # open the dashboard\n", ui.SymbolBullet)
	return nil
}

// checkConnection probes the backend with a spinner. A failure only warns;
// the config is still written.
func checkConnection(out io.Writer, cfg *config.Config) {
	spinner := ui.NewSpinner("Testing connection to " + cfg.BaseURL)
	spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
	spinner.Start()

	c, err := client.New(cfg.BaseURL, client.WithTimeout(connectionCheckTimeout), client.WithLogger(logger.Noop()))
	if err == nil {
		var h *grid.Health
		h, err = c.Health(context.Background())
		if err == nil && !h.Healthy() {
			spinner.Success()
			fmt.Fprintf(out, "%s Backend answered with status %q\n", ui.WarningStyle().Render(ui.SymbolWarning), h.Status)
			return
		}
	}
	if err != nil {
		spinner.Fail()
		fmt.Fprintf(out, "\n%s %s\n", ui.WarningStyle().Render(ui.SymbolWarning), errors.Human(err))
		fmt.Fprintln(out, "  Saving the config anyway. Run 'gridwatch health' once the backend is up.")
		return
	}
	spinner.Success()
}
