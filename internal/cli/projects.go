package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sem-cli/internal/gitremote"
	"github.com/blackwell-systems/sem-cli/internal/resource"
)

func newProjectsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [org]",
		Short: "List projects of every organization, or of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			var projects []resource.Project
			if len(args) == 1 {
				projects, err = svc.Projects.ListForOrg(cmd.Context(), args[0])
			} else {
				projects, err = svc.Projects.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printProjects(cmd, projects,
				"No projects yet. Set up your first one with `sem projects create <org>/<name> --url <git-url>`.")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "info <org>/<project>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			project, err := svc.Projects.Info(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printProject(cmd, project)
		},
	})

	cmd.AddCommand(newProjectCreateCommand(a))

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <org>/<project> <org>/<new-name>",
		Short: "Rename a project within its organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			project, err := svc.Projects.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.printProject(cmd, project)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <org>/<project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.success(cmd, "Deleted project %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(newProjectSharedConfigsCommand(a))

	envVars := &cobra.Command{Use: "env-vars", Short: "Inspect project environment variables"}
	envVars.AddCommand(&cobra.Command{
		Use:   "list <org>/<project>",
		Short: "List environment variables of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			vars, err := svc.Projects.EnvVars(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printEnvVars(cmd, vars)
		},
	})
	cmd.AddCommand(envVars)

	files := &cobra.Command{Use: "files", Short: "Inspect project configuration files"}
	files.AddCommand(&cobra.Command{
		Use:   "list <org>/<project>",
		Short: "List configuration files of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			list, err := svc.Projects.ConfigFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printFiles(cmd, list)
		},
	})
	cmd.AddCommand(files)

	return cmd
}

func newProjectCreateCommand(a *app) *cobra.Command {
	var gitURL, dir string

	cmd := &cobra.Command{
		Use:   "create <org>/<project>",
		Short: "Create a project from a git repository",
		Long: `Create a project from a GitHub or Bitbucket repository.

Without --url the origin remote of the git checkout in --dir is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			if gitURL == "" {
				gitURL, err = gitremote.Origin(cmd.Context(), dir)
				if err != nil {
					return fmt.Errorf("no --url given and %w", err)
				}
			}
			repo, err := gitremote.Parse(gitURL)
			if err != nil {
				return fmt.Errorf("git url %s is invalid: %w", gitURL, err)
			}
			a.logger.Debug("creating project", "path", args[0], "provider", repo.Provider, "owner", repo.Owner, "repo", repo.Name)

			project, err := svc.Projects.Create(cmd.Context(), args[0], resource.ProjectAttrs{
				RepoProvider: repo.Provider,
				RepoOwner:    repo.Owner,
				RepoName:     repo.Name,
			})
			if err != nil {
				return err
			}
			return a.printProject(cmd, project)
		},
	}

	cmd.Flags().StringVarP(&gitURL, "url", "u", "", "Git url of the repository")
	cmd.Flags().StringVar(&dir, "dir", ".", "Git checkout to read the origin remote from")
	return cmd
}

func newProjectSharedConfigsCommand(a *app) *cobra.Command {
	return a.associationCommand("<org>/<project>", association{
		use:      "shared-configs",
		short:    "Manage the shared configurations attached to a project",
		childArg: "<org>/<shared-config>",
		list: func(cmd *cobra.Command, svc *resource.Service, project string) error {
			configs, err := svc.Associations.SharedConfigsForProject(cmd.Context(), project)
			if err != nil {
				return err
			}
			return a.printSharedConfigs(cmd, configs, fmt.Sprintf(
				"Project %s has no shared configurations. Attach one with `sem projects shared-configs add %s <org>/<shared-config>`.",
				project, project))
		},
		add: func(cmd *cobra.Command, svc *resource.Service, project, config string) error {
			result, err := svc.Associations.AttachSharedConfigToProject(cmd.Context(), project, config)
			if err == nil {
				a.success(cmd, "Shared Configuration %s added to the project.", config)
			}
			return a.cascade(cmd, result, err, "Copying "+config+" to "+project)
		},
		remove: func(cmd *cobra.Command, svc *resource.Service, project, config string) error {
			return svc.Associations.DetachSharedConfigFromProject(cmd.Context(), project, config)
		},
		removed: "Shared Configuration %s removed from the project.",
	})
}
