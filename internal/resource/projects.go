package resource

import "context"

// Projects is the project repository.
type Projects struct {
	scope       orgScope[ProjectRecord]
	client      ProjectClient
	envVars     EnvVarClient
	configFiles ConfigFileClient
	orgs        *Orgs
	limit       int
}

func newProjects(client ProjectClient, envVars EnvVarClient, configFiles ConfigFileClient, orgs *Orgs, limit int) *Projects {
	return &Projects{
		scope: orgScope[ProjectRecord]{
			kind:   KindProject,
			lister: client,
			nameOf: func(r ProjectRecord) string { return r.Name },
		},
		client:      client,
		envVars:     envVars,
		configFiles: configFiles,
		orgs:        orgs,
		limit:       limit,
	}
}

// List returns the projects of every organization, grouped in organization
// order.
func (p *Projects) List(ctx context.Context) ([]Project, error) {
	orgs, err := p.orgs.usernames(ctx)
	if err != nil {
		return nil, err
	}
	return fanOut(ctx, p.limit, orgs, p.ListForOrg)
}

// ListForOrg returns the projects of one organization.
func (p *Projects) ListForOrg(ctx context.Context, org string) ([]Project, error) {
	recs, err := p.scope.listForOrg(ctx, org)
	if err != nil {
		return nil, err
	}
	return projectsOf(org, recs), nil
}

// ListForTeam returns the projects a team has access to.
func (p *Projects) ListForTeam(ctx context.Context, team Team) ([]Project, error) {
	recs, err := p.client.ListForTeam(ctx, team.ID())
	if err != nil {
		return nil, notFoundAs(err, KindTeam, team.FullName())
	}
	return projectsOf(team.Org(), recs), nil
}

// ListForSharedConfig returns the projects a shared configuration is attached to.
func (p *Projects) ListForSharedConfig(ctx context.Context, config SharedConfig) ([]Project, error) {
	recs, err := p.client.ListForSharedConfig(ctx, config.ID())
	if err != nil {
		return nil, notFoundAs(err, KindSharedConfig, config.FullName())
	}
	return projectsOf(config.Org(), recs), nil
}

// Info resolves a project path.
func (p *Projects) Info(ctx context.Context, path string) (Project, error) {
	org, rec, err := p.scope.find(ctx, path)
	if err != nil {
		return Project{}, err
	}
	return Project{org: org, rec: rec}, nil
}

// Create creates the project named by path.
func (p *Projects) Create(ctx context.Context, path string, attrs ProjectAttrs) (Project, error) {
	org, name, err := ParsePath(path)
	if err != nil {
		return Project{}, err
	}
	attrs.Name = name

	rec, err := p.client.CreateForOrg(ctx, org, attrs)
	if err != nil {
		return Project{}, notFoundAs(err, KindOrganization, org)
	}
	if rec == nil {
		return Project{}, &NotCreatedError{Kind: KindProject, Path: path, Attrs: attrs}
	}
	return Project{org: org, rec: *rec}, nil
}

// Update applies attrs to the project at path.
func (p *Projects) Update(ctx context.Context, path string, attrs ProjectAttrs) (Project, error) {
	project, err := p.Info(ctx, path)
	if err != nil {
		return Project{}, err
	}
	rec, err := p.client.Update(ctx, project.ID(), attrs)
	if err != nil {
		return Project{}, notFoundAs(err, KindProject, path)
	}
	if rec == nil {
		return Project{}, &NotUpdatedError{Kind: KindProject, Path: path}
	}
	return Project{org: project.Org(), rec: *rec}, nil
}

// Rename renames a project within its organization.
func (p *Projects) Rename(ctx context.Context, oldPath, newPath string) (Project, error) {
	name, err := renameTarget(KindProject, oldPath, newPath)
	if err != nil {
		return Project{}, err
	}
	return p.Update(ctx, oldPath, ProjectAttrs{Name: name})
}

// Delete deletes the project at path.
func (p *Projects) Delete(ctx context.Context, path string) error {
	project, err := p.Info(ctx, path)
	if err != nil {
		return err
	}
	return notFoundAs(p.client.Delete(ctx, project.ID()), KindProject, path)
}

// EnvVars lists the environment variables defined on a project, including
// those copied from shared configurations.
func (p *Projects) EnvVars(ctx context.Context, path string) ([]EnvVar, error) {
	project, err := p.Info(ctx, path)
	if err != nil {
		return nil, err
	}
	recs, err := p.envVars.ListForProject(ctx, project.ID())
	if err != nil {
		return nil, notFoundAs(err, KindProject, path)
	}
	return envVarsOf(recs), nil
}

// ConfigFiles lists the configuration files defined on a project.
func (p *Projects) ConfigFiles(ctx context.Context, path string) ([]ConfigFile, error) {
	project, err := p.Info(ctx, path)
	if err != nil {
		return nil, err
	}
	recs, err := p.configFiles.ListForProject(ctx, project.ID())
	if err != nil {
		return nil, notFoundAs(err, KindProject, path)
	}
	return configFilesOf(recs), nil
}

func projectsOf(org string, recs []ProjectRecord) []Project {
	out := make([]Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Project{org: org, rec: rec})
	}
	return out
}
