package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigLoad: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "sem version %s\n", a.version)
			fmt.Fprintf(w, "  Go:        %s\n", runtime.Version())
			fmt.Fprintf(w, "  Platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
