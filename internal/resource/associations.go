package resource

import (
	"context"

	"github.com/blackwell-systems/sem-cli/internal/logging"
)

// Associations manages the many-to-many links between teams, projects,
// shared configurations and users.
type Associations struct {
	clients  Clients
	teams    *Teams
	projects *Projects
	configs  *SharedConfigs
	users    *Users
}

func newAssociations(c Clients, teams *Teams, projects *Projects, configs *SharedConfigs, users *Users) *Associations {
	return &Associations{clients: c, teams: teams, projects: projects, configs: configs, users: users}
}

// AddProjectToTeam gives a team access to a project.
func (a *Associations) AddProjectToTeam(ctx context.Context, teamPath, projectPath string) error {
	team, project, err := a.teamAndProject(ctx, teamPath, projectPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.Projects.AttachToTeam(ctx, team.ID(), project.ID()), KindProject, projectPath)
}

// RemoveProjectFromTeam revokes a team's access to a project.
func (a *Associations) RemoveProjectFromTeam(ctx context.Context, teamPath, projectPath string) error {
	team, project, err := a.teamAndProject(ctx, teamPath, projectPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.Projects.DetachFromTeam(ctx, team.ID(), project.ID()), KindProject, projectPath)
}

// AddSharedConfigToTeam gives a team access to a shared configuration.
func (a *Associations) AddSharedConfigToTeam(ctx context.Context, teamPath, configPath string) error {
	team, config, err := a.teamAndConfig(ctx, teamPath, configPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.SharedConfigs.AttachToTeam(ctx, team.ID(), config.ID()), KindSharedConfig, configPath)
}

// RemoveSharedConfigFromTeam revokes a team's access to a shared configuration.
func (a *Associations) RemoveSharedConfigFromTeam(ctx context.Context, teamPath, configPath string) error {
	team, config, err := a.teamAndConfig(ctx, teamPath, configPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.SharedConfigs.DetachFromTeam(ctx, team.ID(), config.ID()), KindSharedConfig, configPath)
}

// AddUserToTeam adds a user, by username, to a team.
func (a *Associations) AddUserToTeam(ctx context.Context, teamPath, username string) error {
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.Users.AttachToTeam(ctx, team.ID(), username), KindUser, username)
}

// RemoveUserFromTeam removes a user, by username, from a team.
func (a *Associations) RemoveUserFromTeam(ctx context.Context, teamPath, username string) error {
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.Users.DetachFromTeam(ctx, team.ID(), username), KindUser, username)
}

// AttachSharedConfigToProject attaches a shared configuration to a project
// and copies the configuration's environment variables, then its
// configuration files, onto the project.
//
// The copies are independent snapshots: later edits to the shared
// configuration do not reach them and detaching does not remove them. The
// copy calls are not transactional. If one fails, the association and the
// copies made before it remain, the returned result lists them with
// Attached set, and the error is the one the failing call returned.
func (a *Associations) AttachSharedConfigToProject(ctx context.Context, projectPath, configPath string) (CascadeResult, error) {
	project, err := a.projects.Info(ctx, projectPath)
	if err != nil {
		return CascadeResult{}, err
	}
	config, err := a.configs.Info(ctx, configPath)
	if err != nil {
		return CascadeResult{}, err
	}

	log := logging.FromContext(ctx).With("project", projectPath, "shared_config", configPath)

	// A rejected association is reported as the configuration not being found.
	if err := a.clients.Projects.AttachSharedConfig(ctx, project.ID(), config.ID()); err != nil {
		return CascadeResult{}, notFoundAs(err, KindSharedConfig, configPath)
	}
	log.Debug("attached")
	attached := CascadeResult{Attached: true}

	envVars, err := a.configs.envVarsOf(ctx, config)
	if err != nil {
		return attached, err
	}
	files, err := a.configs.configFilesOf(ctx, config)
	if err != nil {
		return attached, err
	}

	envAttrs := make([]EnvVarAttrs, 0, len(envVars))
	for _, v := range envVars {
		envAttrs = append(envAttrs, v.Attrs())
	}
	fileAttrs := make([]ConfigFileAttrs, 0, len(files))
	for _, f := range files {
		fileAttrs = append(fileAttrs, f.Attrs())
	}

	result, err := cascade(ctx, project.FullName(), envAttrs, fileAttrs,
		func(ctx context.Context, attrs EnvVarAttrs) (*EnvVarRecord, error) {
			return a.clients.EnvVars.CreateForProject(ctx, project.ID(), attrs)
		},
		func(ctx context.Context, attrs ConfigFileAttrs) (*ConfigFileRecord, error) {
			return a.clients.ConfigFiles.CreateForProject(ctx, project.ID(), attrs)
		},
	)
	result.Attached = true
	return result, err
}

// DetachSharedConfigFromProject removes the association only. Environment
// variables and configuration files copied at attach time stay on the project.
func (a *Associations) DetachSharedConfigFromProject(ctx context.Context, projectPath, configPath string) error {
	project, err := a.projects.Info(ctx, projectPath)
	if err != nil {
		return err
	}
	config, err := a.configs.Info(ctx, configPath)
	if err != nil {
		return err
	}
	return notFoundAs(a.clients.Projects.DetachSharedConfig(ctx, project.ID(), config.ID()), KindSharedConfig, configPath)
}

// ProjectsForTeam lists the projects a team has access to.
func (a *Associations) ProjectsForTeam(ctx context.Context, teamPath string) ([]Project, error) {
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return nil, err
	}
	return a.projects.ListForTeam(ctx, team)
}

// SharedConfigsForTeam lists the shared configurations a team has access to.
func (a *Associations) SharedConfigsForTeam(ctx context.Context, teamPath string) ([]SharedConfig, error) {
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return nil, err
	}
	return a.configs.ListForTeam(ctx, team)
}

// MembersOfTeam lists the users in a team.
func (a *Associations) MembersOfTeam(ctx context.Context, teamPath string) ([]User, error) {
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return nil, err
	}
	return a.users.ListForTeam(ctx, team)
}

// SharedConfigsForProject lists the shared configurations attached to a project.
func (a *Associations) SharedConfigsForProject(ctx context.Context, projectPath string) ([]SharedConfig, error) {
	project, err := a.projects.Info(ctx, projectPath)
	if err != nil {
		return nil, err
	}
	return a.configs.ListForProject(ctx, project)
}

// TeamsForSharedConfig lists the teams a shared configuration is shared with.
func (a *Associations) TeamsForSharedConfig(ctx context.Context, configPath string) ([]Team, error) {
	config, err := a.configs.Info(ctx, configPath)
	if err != nil {
		return nil, err
	}
	return a.teams.ListForSharedConfig(ctx, config)
}

// ProjectsForSharedConfig lists the projects a shared configuration is attached to.
func (a *Associations) ProjectsForSharedConfig(ctx context.Context, configPath string) ([]Project, error) {
	config, err := a.configs.Info(ctx, configPath)
	if err != nil {
		return nil, err
	}
	return a.projects.ListForSharedConfig(ctx, config)
}

func (a *Associations) teamAndProject(ctx context.Context, teamPath, projectPath string) (Team, Project, error) {
	project, err := a.projects.Info(ctx, projectPath)
	if err != nil {
		return Team{}, Project{}, err
	}
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return Team{}, Project{}, err
	}
	return team, project, nil
}

func (a *Associations) teamAndConfig(ctx context.Context, teamPath, configPath string) (Team, SharedConfig, error) {
	config, err := a.configs.Info(ctx, configPath)
	if err != nil {
		return Team{}, SharedConfig{}, err
	}
	team, err := a.teams.Info(ctx, teamPath)
	if err != nil {
		return Team{}, SharedConfig{}, err
	}
	return team, config, nil
}
