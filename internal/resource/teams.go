package resource

import "context"

// Teams is the team repository.
type Teams struct {
	scope  orgScope[TeamRecord]
	client TeamClient
	users  UserClient
	orgs   *Orgs
	limit  int
}

func newTeams(client TeamClient, users UserClient, orgs *Orgs, limit int) *Teams {
	return &Teams{
		scope: orgScope[TeamRecord]{
			kind:   KindTeam,
			lister: client,
			nameOf: func(r TeamRecord) string { return r.Name },
		},
		client: client,
		users:  users,
		orgs:   orgs,
		limit:  limit,
	}
}

// List returns the teams of every organization, grouped in organization order.
func (t *Teams) List(ctx context.Context) ([]Team, error) {
	orgs, err := t.orgs.usernames(ctx)
	if err != nil {
		return nil, err
	}
	return fanOut(ctx, t.limit, orgs, t.ListForOrg)
}

// ListForOrg returns the teams of one organization.
func (t *Teams) ListForOrg(ctx context.Context, org string) ([]Team, error) {
	recs, err := t.scope.listForOrg(ctx, org)
	if err != nil {
		return nil, err
	}
	return t.teamsOf(ctx, org, recs)
}

// ListForSharedConfig returns the teams a shared configuration is attached to.
func (t *Teams) ListForSharedConfig(ctx context.Context, config SharedConfig) ([]Team, error) {
	recs, err := t.client.ListForSharedConfig(ctx, config.ID())
	if err != nil {
		return nil, notFoundAs(err, KindSharedConfig, config.FullName())
	}
	return t.teamsOf(ctx, config.Org(), recs)
}

// Info resolves a team path.
func (t *Teams) Info(ctx context.Context, path string) (Team, error) {
	org, rec, err := t.scope.find(ctx, path)
	if err != nil {
		return Team{}, err
	}
	return t.teamOf(ctx, org, rec)
}

// Create creates the team named by path. An empty permission defaults to read.
func (t *Teams) Create(ctx context.Context, path string, attrs TeamAttrs) (Team, error) {
	org, name, err := ParsePath(path)
	if err != nil {
		return Team{}, err
	}
	if attrs.Permission == "" {
		attrs.Permission = PermissionRead
	}
	if _, err := ParsePermission(string(attrs.Permission)); err != nil {
		return Team{}, err
	}
	attrs.Name = name

	rec, err := t.client.CreateForOrg(ctx, org, attrs)
	if err != nil {
		return Team{}, notFoundAs(err, KindOrganization, org)
	}
	if rec == nil {
		return Team{}, &NotCreatedError{Kind: KindTeam, Path: path, Attrs: attrs}
	}
	return t.teamOf(ctx, org, *rec)
}

// Update applies attrs to the team at path.
func (t *Teams) Update(ctx context.Context, path string, attrs TeamAttrs) (Team, error) {
	if attrs.Permission != "" {
		if _, err := ParsePermission(string(attrs.Permission)); err != nil {
			return Team{}, err
		}
	}
	team, err := t.Info(ctx, path)
	if err != nil {
		return Team{}, err
	}
	rec, err := t.client.Update(ctx, team.ID(), attrs)
	if err != nil {
		return Team{}, notFoundAs(err, KindTeam, path)
	}
	if rec == nil {
		return Team{}, &NotUpdatedError{Kind: KindTeam, Path: path}
	}
	return t.teamOf(ctx, team.Org(), *rec)
}

// Rename renames a team within its organization.
func (t *Teams) Rename(ctx context.Context, oldPath, newPath string) (Team, error) {
	name, err := renameTarget(KindTeam, oldPath, newPath)
	if err != nil {
		return Team{}, err
	}
	return t.Update(ctx, oldPath, TeamAttrs{Name: name})
}

// SetPermission changes the permission level of a team.
func (t *Teams) SetPermission(ctx context.Context, path, permission string) (Team, error) {
	p, err := ParsePermission(permission)
	if err != nil {
		return Team{}, err
	}
	return t.Update(ctx, path, TeamAttrs{Permission: p})
}

// Delete deletes the team at path.
func (t *Teams) Delete(ctx context.Context, path string) error {
	team, err := t.Info(ctx, path)
	if err != nil {
		return err
	}
	return notFoundAs(t.client.Delete(ctx, team.ID()), KindTeam, path)
}

func (t *Teams) teamsOf(ctx context.Context, org string, recs []TeamRecord) ([]Team, error) {
	out := make([]Team, 0, len(recs))
	for _, rec := range recs {
		team, err := t.teamOf(ctx, org, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	return out, nil
}

// teamOf builds the canonical team, counting its members remotely.
func (t *Teams) teamOf(ctx context.Context, org string, rec TeamRecord) (Team, error) {
	members, err := t.users.ListForTeam(ctx, rec.ID)
	if err != nil {
		return Team{}, notFoundAs(err, KindTeam, JoinPath(org, rec.Name))
	}
	return Team{org: org, rec: rec, members: len(members)}, nil
}
