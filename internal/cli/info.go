package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/ui"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the backend's framework layers and agents",
	Long: `Fetch the backend's system description: which architecture layers are
active, and which analysis agents are running or still placeholders.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return infoCommand(cmd.OutOrStdout(), infoJSON)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
}

func infoCommand(w io.Writer, asJSON bool) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	info, err := c.SystemInfo(context.Background())
	if err != nil {
		if asJSON {
			_ = WriteJSONFromError(w, err, nil)
			return &exitError{code: 1}
		}
		return err
	}

	if asJSON {
		return WriteJSONSuccess(w, info)
	}
	fmt.Fprint(w, renderSystemInfo(info, c.BaseURL()))
	return nil
}

func renderSystemInfo(info *grid.SystemInfo, baseURL string) string {
	var b strings.Builder

	title := info.Framework
	if title == "" {
		title = "Smart Grid Framework"
	}
	b.WriteString(ui.RenderHeader(title, baseURL))
	b.WriteString("\n")

	sections := []struct {
		label  string
		marker string
		items  []string
	}{
		{"Active layers", ui.SuccessStyle().Render(ui.SymbolSuccess), info.Architecture.ActiveLayers},
		{"Defined layers", ui.MutedStyle().Render(ui.SymbolPending), info.Architecture.DefinedLayers},
		{"Active agents", ui.SuccessStyle().Render(ui.SymbolSuccess), info.Agents.Active},
		{"Placeholder agents", ui.MutedStyle().Render(ui.SymbolPending), info.Agents.Placeholder},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		lines := make([]string, len(s.items))
		for i, item := range s.items {
			lines[i] = s.marker + " " + item
		}
		b.WriteString(ui.RenderSection(fmt.Sprintf("%s (%d)", s.label, len(s.items)), lines...))
		b.WriteString("\n")
	}
	return b.String()
}
