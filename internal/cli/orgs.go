package cli

import (
	"github.com/spf13/cobra"
)

func newOrgsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"org"},
		Short:   "List and inspect organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your organizations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			orgs, err := svc.Orgs.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.printOrgs(cmd, orgs)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "info <org>",
		Short: "Show an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			org, err := svc.Orgs.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printOrg(cmd, org)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "members <org>",
		Short: "List the members of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			users, err := svc.Users.ListForOrg(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printUsers(cmd, users)
		},
	})

	return cmd
}
