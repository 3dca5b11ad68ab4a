package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blackwell-systems/sem-cli/internal/api"
	"github.com/blackwell-systems/sem-cli/internal/config"
)

func newLoginCommand(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify and store an API token",
		Long: `Verify an API token against the API and store it in the config file.

The token is read from --token, or prompted for when stdin is a terminal,
or read from the first line of stdin otherwise.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if token == "" {
				token, err = readToken(cmd, a.stdin)
				if err != nil {
					return err
				}
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("no token given")
			}

			client, err := a.newClient(cfg, cfg.APIURL, token)
			if err != nil {
				return err
			}
			switch status := client.Health(cmd.Context()); status {
			case api.StatusUp:
			case api.StatusUnauthorized:
				return fmt.Errorf("token rejected by %s", client.BaseURL())
			default:
				return fmt.Errorf("cannot reach %s (%s)", client.BaseURL(), status)
			}

			if f := cmd.Flag(config.KeyAPIURL); f != nil && f.Changed {
				if err := config.Set(config.KeyAPIURL, cfg.APIURL); err != nil {
					return err
				}
			}
			if err := config.Set(config.KeyAPIToken, token); err != nil {
				return err
			}

			a.success(cmd, "Logged in to %s", client.BaseURL())
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "API token")
	return cmd
}

// readToken prompts without echo on a terminal and reads a line otherwise.
func readToken(cmd *cobra.Command, in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "API token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read token: %w", err)
	}
	return line, nil
}
