package resource

import "context"

// SharedConfigs is the shared configuration repository. A shared
// configuration owns template environment variables and configuration files.
type SharedConfigs struct {
	scope       orgScope[SharedConfigRecord]
	client      SharedConfigClient
	envVars     EnvVarClient
	configFiles ConfigFileClient
	orgs        *Orgs
	limit       int
}

func newSharedConfigs(client SharedConfigClient, envVars EnvVarClient, configFiles ConfigFileClient, orgs *Orgs, limit int) *SharedConfigs {
	return &SharedConfigs{
		scope: orgScope[SharedConfigRecord]{
			kind:   KindSharedConfig,
			lister: client,
			nameOf: func(r SharedConfigRecord) string { return r.Name },
		},
		client:      client,
		envVars:     envVars,
		configFiles: configFiles,
		orgs:        orgs,
		limit:       limit,
	}
}

// List returns the shared configurations of every organization, grouped in
// organization order.
func (s *SharedConfigs) List(ctx context.Context) ([]SharedConfig, error) {
	orgs, err := s.orgs.usernames(ctx)
	if err != nil {
		return nil, err
	}
	return fanOut(ctx, s.limit, orgs, s.ListForOrg)
}

// ListForOrg returns the shared configurations of one organization.
func (s *SharedConfigs) ListForOrg(ctx context.Context, org string) ([]SharedConfig, error) {
	recs, err := s.scope.listForOrg(ctx, org)
	if err != nil {
		return nil, err
	}
	return sharedConfigsOf(org, recs), nil
}

// ListForTeam returns the shared configurations a team has access to.
func (s *SharedConfigs) ListForTeam(ctx context.Context, team Team) ([]SharedConfig, error) {
	recs, err := s.client.ListForTeam(ctx, team.ID())
	if err != nil {
		return nil, notFoundAs(err, KindTeam, team.FullName())
	}
	return sharedConfigsOf(team.Org(), recs), nil
}

// ListForProject returns the shared configurations attached to a project.
func (s *SharedConfigs) ListForProject(ctx context.Context, project Project) ([]SharedConfig, error) {
	recs, err := s.client.ListForProject(ctx, project.ID())
	if err != nil {
		return nil, notFoundAs(err, KindProject, project.FullName())
	}
	return sharedConfigsOf(project.Org(), recs), nil
}

// Info resolves a shared configuration path.
func (s *SharedConfigs) Info(ctx context.Context, path string) (SharedConfig, error) {
	org, rec, err := s.scope.find(ctx, path)
	if err != nil {
		return SharedConfig{}, err
	}
	return SharedConfig{org: org, rec: rec}, nil
}

// Create creates the shared configuration named by path.
func (s *SharedConfigs) Create(ctx context.Context, path string, attrs SharedConfigAttrs) (SharedConfig, error) {
	org, name, err := ParsePath(path)
	if err != nil {
		return SharedConfig{}, err
	}
	attrs.Name = name

	rec, err := s.client.CreateForOrg(ctx, org, attrs)
	if err != nil {
		return SharedConfig{}, notFoundAs(err, KindOrganization, org)
	}
	if rec == nil {
		return SharedConfig{}, &NotCreatedError{Kind: KindSharedConfig, Path: path, Attrs: attrs}
	}
	return SharedConfig{org: org, rec: *rec}, nil
}

// Update applies attrs to the shared configuration at path.
func (s *SharedConfigs) Update(ctx context.Context, path string, attrs SharedConfigAttrs) (SharedConfig, error) {
	config, err := s.Info(ctx, path)
	if err != nil {
		return SharedConfig{}, err
	}
	rec, err := s.client.Update(ctx, config.ID(), attrs)
	if err != nil {
		return SharedConfig{}, notFoundAs(err, KindSharedConfig, path)
	}
	if rec == nil {
		return SharedConfig{}, &NotUpdatedError{Kind: KindSharedConfig, Path: path}
	}
	return SharedConfig{org: config.Org(), rec: *rec}, nil
}

// Rename renames a shared configuration within its organization.
func (s *SharedConfigs) Rename(ctx context.Context, oldPath, newPath string) (SharedConfig, error) {
	name, err := renameTarget(KindSharedConfig, oldPath, newPath)
	if err != nil {
		return SharedConfig{}, err
	}
	return s.Update(ctx, oldPath, SharedConfigAttrs{Name: name})
}

// Delete deletes the shared configuration at path. Copies already made on
// projects are not affected.
func (s *SharedConfigs) Delete(ctx context.Context, path string) error {
	config, err := s.Info(ctx, path)
	if err != nil {
		return err
	}
	return notFoundAs(s.client.Delete(ctx, config.ID()), KindSharedConfig, path)
}

// EnvVars lists the template environment variables of a shared configuration.
func (s *SharedConfigs) EnvVars(ctx context.Context, path string) ([]EnvVar, error) {
	config, err := s.Info(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.envVarsOf(ctx, config)
}

// ConfigFiles lists the template configuration files of a shared configuration.
func (s *SharedConfigs) ConfigFiles(ctx context.Context, path string) ([]ConfigFile, error) {
	config, err := s.Info(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.configFilesOf(ctx, config)
}

// AddEnvVar adds a template environment variable.
func (s *SharedConfigs) AddEnvVar(ctx context.Context, path string, attrs EnvVarAttrs) (EnvVar, error) {
	result, err := s.Populate(ctx, path, []EnvVarAttrs{attrs}, nil)
	if err != nil {
		return EnvVar{}, err
	}
	return result.EnvVars[0], nil
}

// AddConfigFile adds a template configuration file.
func (s *SharedConfigs) AddConfigFile(ctx context.Context, path string, attrs ConfigFileAttrs) (ConfigFile, error) {
	result, err := s.Populate(ctx, path, nil, []ConfigFileAttrs{attrs})
	if err != nil {
		return ConfigFile{}, err
	}
	return result.ConfigFiles[0], nil
}

// Populate creates environment variables and then configuration files on the
// shared configuration at path, one call at a time. Like the project
// cascade it is not transactional: on failure the returned result holds what
// was already created and the error is the one that stopped it.
func (s *SharedConfigs) Populate(ctx context.Context, path string, envVars []EnvVarAttrs, files []ConfigFileAttrs) (CascadeResult, error) {
	config, err := s.Info(ctx, path)
	if err != nil {
		return CascadeResult{}, err
	}
	return cascade(ctx, config.FullName(), envVars, files,
		func(ctx context.Context, attrs EnvVarAttrs) (*EnvVarRecord, error) {
			return s.envVars.CreateForSharedConfig(ctx, config.ID(), attrs)
		},
		func(ctx context.Context, attrs ConfigFileAttrs) (*ConfigFileRecord, error) {
			return s.configFiles.CreateForSharedConfig(ctx, config.ID(), attrs)
		},
	)
}

// RemoveEnvVar deletes the template environment variable called name.
func (s *SharedConfigs) RemoveEnvVar(ctx context.Context, path, name string) error {
	vars, err := s.EnvVars(ctx, path)
	if err != nil {
		return err
	}
	for _, v := range vars {
		if v.Name() == name {
			return notFoundAs(s.envVars.Delete(ctx, v.ID()), KindEnvVar, path+":"+name)
		}
	}
	return &NotFoundError{Kind: KindEnvVar, Path: path + ":" + name}
}

// RemoveConfigFile deletes the template configuration file at filePath.
func (s *SharedConfigs) RemoveConfigFile(ctx context.Context, path, filePath string) error {
	files, err := s.ConfigFiles(ctx, path)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.Path() == filePath {
			return notFoundAs(s.configFiles.Delete(ctx, f.ID()), KindConfigFile, path+":"+filePath)
		}
	}
	return &NotFoundError{Kind: KindConfigFile, Path: path + ":" + filePath}
}

func (s *SharedConfigs) envVarsOf(ctx context.Context, config SharedConfig) ([]EnvVar, error) {
	recs, err := s.envVars.ListForSharedConfig(ctx, config.ID())
	if err != nil {
		return nil, notFoundAs(err, KindSharedConfig, config.FullName())
	}
	return envVarsOf(recs), nil
}

func (s *SharedConfigs) configFilesOf(ctx context.Context, config SharedConfig) ([]ConfigFile, error) {
	recs, err := s.configFiles.ListForSharedConfig(ctx, config.ID())
	if err != nil {
		return nil, notFoundAs(err, KindSharedConfig, config.FullName())
	}
	return configFilesOf(recs), nil
}

func sharedConfigsOf(org string, recs []SharedConfigRecord) []SharedConfig {
	out := make([]SharedConfig, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SharedConfig{org: org, rec: rec})
	}
	return out
}
