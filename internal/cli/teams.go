package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sem-cli/internal/resource"
)

func newTeamsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Manage teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [org]",
		Short: "List teams of every organization, or of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			var teams []resource.Team
			if len(args) == 1 {
				teams, err = svc.Teams.ListForOrg(cmd.Context(), args[0])
			} else {
				teams, err = svc.Teams.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printTeams(cmd, teams)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "info <org>/<team>",
		Short: "Show a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			team, err := svc.Teams.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printTeam(cmd, team)
		},
	})

	cmd.AddCommand(newTeamCreateCommand(a))

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <org>/<team> <org>/<new-name>",
		Short: "Rename a team within its organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			team, err := svc.Teams.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printTeam(cmd, team)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-permission <org>/<team> <read|write|admin|owner>",
		Short: "Set the permission level of a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			team, err := svc.Teams.SetPermission(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printTeam(cmd, team)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <org>/<team>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.Teams.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.success(cmd, "Deleted team %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(newTeamMembersCommand(a))
	cmd.AddCommand(newTeamProjectsCommand(a))
	cmd.AddCommand(newTeamSharedConfigsCommand(a))

	return cmd
}

func newTeamCreateCommand(a *app) *cobra.Command {
	var permission, description string

	cmd := &cobra.Command{
		Use:   "create <org>/<team>",
		Short: "Create a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			perm, err := resource.ParsePermission(permission)
			if err != nil {
				return err
			}
			team, err := svc.Teams.Create(cmd.Context(), args[0], resource.TeamAttrs{
				Permission:  perm,
				Description: description,
			})
			if err != nil {
				return err
			}
			return a.printTeam(cmd, team)
		},
	}

	cmd.Flags().StringVarP(&permission, "permission", "p", string(resource.PermissionRead), "Permission level of the team in the organization")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Team description")
	return cmd
}

// association builds the list/add/remove trio shared by the team
// sub-resources.
type association struct {
	use, short string
	childArg   string
	list       func(cmd *cobra.Command, svc *resource.Service, parent string) error
	add        func(cmd *cobra.Command, svc *resource.Service, parent, child string) error
	remove     func(cmd *cobra.Command, svc *resource.Service, parent, child string) error
	added      string
	removed    string
}

func (a *app) associationCommand(parentArg string, as association) *cobra.Command {
	cmd := &cobra.Command{
		Use:   as.use,
		Short: as.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list " + parentArg,
		Short: "List " + as.use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			return as.list(cmd, svc, args[0])
		},
	})

	if as.add != nil {
		cmd.AddCommand(&cobra.Command{
			Use:   "add " + parentArg + " " + as.childArg,
			Short: "Add " + as.childArg,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.service()
				if err != nil {
					return err
				}
				if err := as.add(cmd, svc, args[0], args[1]); err != nil {
					return err
				}
				if as.added != "" {
					a.success(cmd, as.added, args[1])
				}
				return nil
			},
		})
	}

	if as.remove != nil {
		cmd.AddCommand(&cobra.Command{
			Use:   "remove " + parentArg + " " + as.childArg,
			Short: "Remove " + as.childArg,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.service()
				if err != nil {
					return err
				}
				if err := as.remove(cmd, svc, args[0], args[1]); err != nil {
					return err
				}
				a.success(cmd, as.removed, args[1])
				return nil
			},
		})
	}

	return cmd
}

func newTeamMembersCommand(a *app) *cobra.Command {
	return a.associationCommand("<org>/<team>", association{
		use:      "members",
		short:    "Manage team members",
		childArg: "<username>",
		list: func(cmd *cobra.Command, svc *resource.Service, team string) error {
			users, err := svc.Associations.MembersOfTeam(cmd.Context(), team)
			if err != nil {
				return err
			}
			return a.printUsers(cmd, users)
		},
		add: func(cmd *cobra.Command, svc *resource.Service, team, user string) error {
			return svc.Associations.AddUserToTeam(cmd.Context(), team, user)
		},
		remove: func(cmd *cobra.Command, svc *resource.Service, team, user string) error {
			return svc.Associations.RemoveUserFromTeam(cmd.Context(), team, user)
		},
		added:   "User %s added to the team.",
		removed: "User %s removed from the team.",
	})
}

func newTeamProjectsCommand(a *app) *cobra.Command {
	return a.associationCommand("<org>/<team>", association{
		use:      "projects",
		short:    "Manage the projects a team has access to",
		childArg: "<org>/<project>",
		list: func(cmd *cobra.Command, svc *resource.Service, team string) error {
			projects, err := svc.Associations.ProjectsForTeam(cmd.Context(), team)
			if err != nil {
				return err
			}
			return a.printProjects(cmd, projects, fmt.Sprintf("Team %s has no projects.", team))
		},
		add: func(cmd *cobra.Command, svc *resource.Service, team, project string) error {
			return svc.Associations.AddProjectToTeam(cmd.Context(), team, project)
		},
		remove: func(cmd *cobra.Command, svc *resource.Service, team, project string) error {
			return svc.Associations.RemoveProjectFromTeam(cmd.Context(), team, project)
		},
		added:   "Project %s added to the team.",
		removed: "Project %s removed from the team.",
	})
}

func newTeamSharedConfigsCommand(a *app) *cobra.Command {
	return a.associationCommand("<org>/<team>", association{
		use:      "shared-configs",
		short:    "Manage the shared configurations of a team",
		childArg: "<org>/<shared-config>",
		list: func(cmd *cobra.Command, svc *resource.Service, team string) error {
			configs, err := svc.Associations.SharedConfigsForTeam(cmd.Context(), team)
			if err != nil {
				return err
			}
			return a.printSharedConfigs(cmd, configs, fmt.Sprintf("Team %s has no shared configurations.", team))
		},
		add: func(cmd *cobra.Command, svc *resource.Service, team, config string) error {
			return svc.Associations.AddSharedConfigToTeam(cmd.Context(), team, config)
		},
		remove: func(cmd *cobra.Command, svc *resource.Service, team, config string) error {
			return svc.Associations.RemoveSharedConfigFromTeam(cmd.Context(), team, config)
		},
		added:   "Shared Configuration %s added to the team.",
		removed: "Shared Configuration %s removed from the team.",
	})
}
