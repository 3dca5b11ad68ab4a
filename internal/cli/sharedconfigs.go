package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sem-cli/internal/manifest"
	"github.com/blackwell-systems/sem-cli/internal/resource"
)

func newSharedConfigsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shared-configs",
		Aliases: []string{"shared-config"},
		Short:   "Manage shared configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [org]",
		Short: "List shared configurations of every organization, or of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			var configs []resource.SharedConfig
			if len(args) == 1 {
				configs, err = svc.SharedConfigs.ListForOrg(cmd.Context(), args[0])
			} else {
				configs, err = svc.SharedConfigs.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			return a.printSharedConfigs(cmd, configs,
				"No shared configurations yet. Create one with `sem shared-configs create <org>/<name>`.")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "info <org>/<shared-config>",
		Short: "Show a shared configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			return a.showSharedConfig(cmd, svc, args[0])
		},
	})

	cmd.AddCommand(newSharedConfigCreateCommand(a))

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <org>/<shared-config> <org>/<new-name>",
		Short: "Rename a shared configuration within its organization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			config, err := svc.SharedConfigs.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.showSharedConfig(cmd, svc, config.FullName())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <org>/<shared-config>",
		Short: "Delete a shared configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.SharedConfigs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.success(cmd, "Deleted shared configuration %s", args[0])
			return nil
		},
	})

	cmd.AddCommand(newSharedConfigEnvVarsCommand(a))
	cmd.AddCommand(newSharedConfigFilesCommand(a))

	cmd.AddCommand(a.associationCommand("<org>/<shared-config>", association{
		use:   "teams",
		short: "List the teams a shared configuration belongs to",
		list: func(cmd *cobra.Command, svc *resource.Service, config string) error {
			teams, err := svc.Associations.TeamsForSharedConfig(cmd.Context(), config)
			if err != nil {
				return err
			}
			return a.printTeams(cmd, teams)
		},
	}))

	cmd.AddCommand(a.associationCommand("<org>/<shared-config>", association{
		use:   "projects",
		short: "List the projects a shared configuration is attached to",
		list: func(cmd *cobra.Command, svc *resource.Service, config string) error {
			projects, err := svc.Associations.ProjectsForSharedConfig(cmd.Context(), config)
			if err != nil {
				return err
			}
			return a.printProjects(cmd, projects, fmt.Sprintf("Shared Configuration %s is not attached to any project.", config))
		},
	}))

	cmd.AddCommand(newSharedConfigApplyCommand(a))
	cmd.AddCommand(newSharedConfigExportCommand(a))

	return cmd
}

func (a *app) showSharedConfig(cmd *cobra.Command, svc *resource.Service, path string) error {
	config, err := svc.SharedConfigs.Info(cmd.Context(), path)
	if err != nil {
		return err
	}
	envVars, err := svc.SharedConfigs.EnvVars(cmd.Context(), path)
	if err != nil {
		return err
	}
	files, err := svc.SharedConfigs.ConfigFiles(cmd.Context(), path)
	if err != nil {
		return err
	}
	return a.printSharedConfig(cmd, config, envVars, files)
}

// loadBundle reads, validates and resolves a bundle file.
func loadBundle(path string) ([]resource.EnvVarAttrs, []resource.ConfigFileAttrs, error) {
	b, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := manifest.Validate(b).Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return b.Attrs(filepath.Dir(path))
}

func newSharedConfigCreateCommand(a *app) *cobra.Command {
	var bundle, description string

	cmd := &cobra.Command{
		Use:   "create <org>/<shared-config>",
		Short: "Create a shared configuration, optionally populated from a bundle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			var envVars []resource.EnvVarAttrs
			var files []resource.ConfigFileAttrs
			if bundle != "" {
				if envVars, files, err = loadBundle(bundle); err != nil {
					return err
				}
			}

			config, err := svc.SharedConfigs.Create(cmd.Context(), args[0], resource.SharedConfigAttrs{Description: description})
			if err != nil {
				return err
			}
			if bundle != "" {
				result, err := svc.SharedConfigs.Populate(cmd.Context(), config.FullName(), envVars, files)
				if err != nil {
					return a.cascade(cmd, result, err, "Populating "+config.FullName())
				}
			}
			return a.showSharedConfig(cmd, svc, config.FullName())
		},
	}

	cmd.Flags().StringVarP(&bundle, "file", "f", "", "Bundle file (yaml, json, toml or hcl) with initial content")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	return cmd
}

func newSharedConfigApplyCommand(a *app) *cobra.Command {
	var bundle string

	cmd := &cobra.Command{
		Use:   "apply <org>/<shared-config> --file <bundle>",
		Short: "Add the content of a bundle file to a shared configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			envVars, files, err := loadBundle(bundle)
			if err != nil {
				return err
			}
			result, err := svc.SharedConfigs.Populate(cmd.Context(), args[0], envVars, files)
			return a.cascade(cmd, result, err, "Applied "+bundle+" to "+args[0])
		},
	}

	cmd.Flags().StringVarP(&bundle, "file", "f", "", "Bundle file (yaml, json, toml or hcl)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSharedConfigExportCommand(a *app) *cobra.Command {
	var bundle string

	cmd := &cobra.Command{
		Use:   "export <org>/<shared-config> --file <bundle>",
		Short: "Write the content of a shared configuration to a bundle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			envVars, err := svc.SharedConfigs.EnvVars(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			files, err := svc.SharedConfigs.ConfigFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := manifest.Save(manifest.FromSharedConfig(envVars, files), bundle); err != nil {
				return err
			}
			a.success(cmd, "Exported %s to %s (%s)", args[0], bundle, manifest.FormatOf(bundle))
			return nil
		},
	}

	cmd.Flags().StringVarP(&bundle, "file", "f", "", "Bundle file (yaml, json, toml or hcl)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSharedConfigEnvVarsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env-vars",
		Short: "Manage environment variables of a shared configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <org>/<shared-config>",
		Short: "List environment variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			vars, err := svc.SharedConfigs.EnvVars(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printEnvVars(cmd, vars)
		},
	})

	var name, content string
	var encrypted bool
	add := &cobra.Command{
		Use:   "add <org>/<shared-config> --name <name> --content <value>",
		Short: "Add an environment variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := manifest.Validate(&manifest.Bundle{EnvVars: []manifest.EnvVar{{Name: name}}}).Err(); err != nil {
				return err
			}
			if _, err := svc.SharedConfigs.AddEnvVar(cmd.Context(), args[0], resource.EnvVarAttrs{
				Name:      name,
				Content:   content,
				Encrypted: encrypted,
			}); err != nil {
				return err
			}
			a.success(cmd, "Added %s to %s", name, args[0])
			return nil
		},
	}
	add.Flags().StringVarP(&name, "name", "n", "", "Variable name")
	add.Flags().StringVarP(&content, "content", "c", "", "Variable value")
	add.Flags().BoolVarP(&encrypted, "encrypted", "e", false, "Store the value encrypted")
	_ = add.MarkFlagRequired("name")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <org>/<shared-config> <name>",
		Short: "Remove an environment variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.SharedConfigs.RemoveEnvVar(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.success(cmd, "Removed %s from %s", args[1], args[0])
			return nil
		},
	})

	return cmd
}

func newSharedConfigFilesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Manage configuration files of a shared configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <org>/<shared-config>",
		Short: "List configuration files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			files, err := svc.SharedConfigs.ConfigFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printFiles(cmd, files)
		},
	})

	var path, localFile, content string
	var encrypted bool
	add := &cobra.Command{
		Use:   "add <org>/<shared-config> --path <path> (--local-file <file> | --content <text>)",
		Short: "Add a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if localFile != "" && content != "" {
				return errors.New("--local-file and --content are mutually exclusive")
			}
			if err := manifest.Validate(&manifest.Bundle{Files: []manifest.File{{Path: path}}}).Err(); err != nil {
				return err
			}
			if localFile != "" {
				data, err := os.ReadFile(localFile)
				if err != nil {
					return fmt.Errorf("read %s: %w", localFile, err)
				}
				content = string(data)
			}
			if _, err := svc.SharedConfigs.AddConfigFile(cmd.Context(), args[0], resource.ConfigFileAttrs{
				Path:      path,
				Content:   content,
				Encrypted: encrypted,
			}); err != nil {
				return err
			}
			a.success(cmd, "Added %s to %s", path, args[0])
			return nil
		},
	}
	add.Flags().StringVarP(&path, "path", "p", "", "Path of the file in the job environment")
	add.Flags().StringVarP(&localFile, "local-file", "l", "", "Local file to read the content from")
	add.Flags().StringVarP(&content, "content", "c", "", "File content")
	add.Flags().BoolVarP(&encrypted, "encrypted", "e", false, "Store the content encrypted")
	_ = add.MarkFlagRequired("path")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <org>/<shared-config> <path>",
		Short: "Remove a configuration file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.SharedConfigs.RemoveConfigFile(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.success(cmd, "Removed %s from %s", args[1], args[0])
			return nil
		},
	})

	return cmd
}
