package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sem-cli/internal/api"
	"github.com/blackwell-systems/sem-cli/internal/config"
)

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check API reachability and token validity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := a.client.Health(cmd.Context())
			a.logger.Debug("health probe", "status", status.String())

			if a.jsonOutput() {
				return writeJSON(cmd, struct {
					APIURL string `json:"api_url"`
					Status string `json:"status"`
				}{a.client.BaseURL(), status.String()})
			}

			w := cmd.OutOrStdout()
			color.New(color.FgCyan).Fprintln(w, "Check            Status            Detail")
			color.New(color.FgCyan).Fprintln(w, "────────────────────────────────────────────────")
			printStatus(w, "API", status, a.client.BaseURL())
			printStatus(w, "Token", tokenStatus(a.cfg.APIToken, status), config.MaskToken(a.cfg.APIToken))
			return nil
		},
	}
}

// tokenStatus derives the token check from the API probe.
func tokenStatus(token string, probe api.Status) api.Status {
	switch {
	case token == "":
		return api.StatusUnauthorized
	case probe == api.StatusUp || probe == api.StatusUnauthorized:
		return probe
	default:
		return api.StatusUnknown
	}
}

func printStatus(w io.Writer, name string, status api.Status, detail string) {
	var statusText string
	switch status {
	case api.StatusUp:
		statusText = color.GreenString("✓ UP          ")
	case api.StatusUnauthorized:
		statusText = color.YellowString("⚠ UNAUTHORIZED")
	case api.StatusDown:
		statusText = color.RedString("✗ DOWN        ")
	default:
		statusText = color.RedString("✗ UNKNOWN     ")
	}

	color.New().Fprintf(w, "%-16s %s    %s\n", name, statusText, detail)
}
