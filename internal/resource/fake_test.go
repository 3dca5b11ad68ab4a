package resource

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// backend is an in-memory platform that records every call made against it.
// Calls are recorded as "<kind>.<op> <args...>".
type backend struct {
	mu sync.Mutex

	calls []string
	fail  map[string]error
	delay map[string]time.Duration
	nilOn map[string]bool

	orgs     []OrgRecord
	teams    map[string][]TeamRecord
	projects map[string][]ProjectRecord
	configs  map[string][]SharedConfigRecord
	orgUsers map[string][]UserRecord

	teamUsers    map[string][]UserRecord
	teamProjects map[string][]string
	teamConfigs  map[string][]string
	projConfigs  map[string][]string

	envVars map[string][]EnvVarRecord     // owner id -> vars
	files   map[string][]ConfigFileRecord // owner id -> files

	nextID int
}

func newBackend() *backend {
	return &backend{
		fail:         map[string]error{},
		delay:        map[string]time.Duration{},
		nilOn:        map[string]bool{},
		teams:        map[string][]TeamRecord{},
		projects:     map[string][]ProjectRecord{},
		configs:      map[string][]SharedConfigRecord{},
		orgUsers:     map[string][]UserRecord{},
		teamUsers:    map[string][]UserRecord{},
		teamProjects: map[string][]string{},
		teamConfigs:  map[string][]string{},
		projConfigs:  map[string][]string{},
		envVars:      map[string][]EnvVarRecord{},
		files:        map[string][]ConfigFileRecord{},
	}
}

func (b *backend) clients() Clients {
	return Clients{
		Orgs:          fakeOrgs{b},
		Teams:         fakeTeams{b},
		Projects:      fakeProjects{b},
		SharedConfigs: fakeConfigs{b},
		Users:         fakeUsers{b},
		EnvVars:       fakeEnvVars{b},
		ConfigFiles:   fakeFiles{b},
	}
}

func (b *backend) service(opts ...Option) *Service {
	return New(b.clients(), opts...)
}

// record logs a call and returns the failure registered for it, if any.
func (b *backend) record(ctx context.Context, op string, args ...string) error {
	call := strings.TrimSpace(op + " " + strings.Join(args, " "))

	b.mu.Lock()
	d := b.delay[call]
	b.mu.Unlock()
	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
	return b.fail[call]
}

func (b *backend) returnsNil(call string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nilOn[call]
}

func (b *backend) id(prefix string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

// callsWithPrefix returns the recorded calls that start with any prefix.
func (b *backend) callsWithPrefix(prefixes ...string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (b *backend) resetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *backend) addOrg(username string) {
	b.orgs = append(b.orgs, OrgRecord{ID: "org-" + username, Username: username, Name: username})
}

func (b *backend) addTeam(org, name, permission string, members ...string) TeamRecord {
	rec := TeamRecord{ID: b.id("team"), Name: name, Permission: permission}
	b.teams[org] = append(b.teams[org], rec)
	for _, m := range members {
		b.teamUsers[rec.ID] = append(b.teamUsers[rec.ID], UserRecord{Username: m})
	}
	return rec
}

func (b *backend) addProject(org, name string) ProjectRecord {
	rec := ProjectRecord{ID: b.id("project"), Name: name}
	b.projects[org] = append(b.projects[org], rec)
	return rec
}

func (b *backend) addConfig(org, name string) SharedConfigRecord {
	rec := SharedConfigRecord{ID: b.id("config"), Name: name}
	b.configs[org] = append(b.configs[org], rec)
	return rec
}

func (b *backend) addEnvVar(ownerID, name, content string) EnvVarRecord {
	rec := EnvVarRecord{ID: b.id("env"), Name: name, Content: content}
	b.envVars[ownerID] = append(b.envVars[ownerID], rec)
	return rec
}

func (b *backend) addFile(ownerID, path, content string) ConfigFileRecord {
	rec := ConfigFileRecord{ID: b.id("file"), Path: path, Content: content}
	b.files[ownerID] = append(b.files[ownerID], rec)
	return rec
}

func (b *backend) hasOrg(org string) bool {
	for _, o := range b.orgs {
		if o.Username == org {
			return true
		}
	}
	return false
}

type fakeOrgs struct{ b *backend }

func (f fakeOrgs) List(ctx context.Context) ([]OrgRecord, error) {
	if err := f.b.record(ctx, "orgs.list"); err != nil {
		return nil, err
	}
	return append([]OrgRecord(nil), f.b.orgs...), nil
}

type fakeTeams struct{ b *backend }

func (f fakeTeams) ListForOrg(ctx context.Context, org string) ([]TeamRecord, error) {
	if err := f.b.record(ctx, "teams.list_for_org", org); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if !f.b.hasOrg(org) {
		return nil, ErrNotFound
	}
	return append([]TeamRecord(nil), f.b.teams[org]...), nil
}

func (f fakeTeams) ListForSharedConfig(ctx context.Context, configID string) ([]TeamRecord, error) {
	if err := f.b.record(ctx, "teams.list_for_shared_config", configID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var out []TeamRecord
	for _, teams := range f.b.teams {
		for _, t := range teams {
			for _, id := range f.b.teamConfigs[t.ID] {
				if id == configID {
					out = append(out, t)
				}
			}
		}
	}
	return out, nil
}

func (f fakeTeams) CreateForOrg(ctx context.Context, org string, attrs TeamAttrs) (*TeamRecord, error) {
	if err := f.b.record(ctx, "teams.create_for_org", org, attrs.Name); err != nil {
		return nil, err
	}
	if f.b.returnsNil("teams.create_for_org " + org + " " + attrs.Name) {
		return nil, nil
	}
	rec := f.b.addTeam(org, attrs.Name, string(attrs.Permission))
	return &rec, nil
}

func (f fakeTeams) Update(ctx context.Context, id string, attrs TeamAttrs) (*TeamRecord, error) {
	if err := f.b.record(ctx, "teams.update", id); err != nil {
		return nil, err
	}
	if f.b.returnsNil("teams.update " + id) {
		return nil, nil
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for org, teams := range f.b.teams {
		for i, t := range teams {
			if t.ID != id {
				continue
			}
			if attrs.Name != "" {
				t.Name = attrs.Name
			}
			if attrs.Permission != "" {
				t.Permission = string(attrs.Permission)
			}
			f.b.teams[org][i] = t
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (f fakeTeams) Delete(ctx context.Context, id string) error {
	return f.b.record(ctx, "teams.delete", id)
}

type fakeProjects struct{ b *backend }

func (f fakeProjects) ListForOrg(ctx context.Context, org string) ([]ProjectRecord, error) {
	if err := f.b.record(ctx, "projects.list_for_org", org); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if !f.b.hasOrg(org) {
		return nil, ErrNotFound
	}
	return append([]ProjectRecord(nil), f.b.projects[org]...), nil
}

func (f fakeProjects) ListForTeam(ctx context.Context, teamID string) ([]ProjectRecord, error) {
	if err := f.b.record(ctx, "projects.list_for_team", teamID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var out []ProjectRecord
	for _, id := range f.b.teamProjects[teamID] {
		for _, projects := range f.b.projects {
			for _, p := range projects {
				if p.ID == id {
					out = append(out, p)
				}
			}
		}
	}
	return out, nil
}

func (f fakeProjects) ListForSharedConfig(ctx context.Context, configID string) ([]ProjectRecord, error) {
	if err := f.b.record(ctx, "projects.list_for_shared_config", configID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var out []ProjectRecord
	for _, projects := range f.b.projects {
		for _, p := range projects {
			for _, id := range f.b.projConfigs[p.ID] {
				if id == configID {
					out = append(out, p)
				}
			}
		}
	}
	return out, nil
}

func (f fakeProjects) CreateForOrg(ctx context.Context, org string, attrs ProjectAttrs) (*ProjectRecord, error) {
	if err := f.b.record(ctx, "projects.create_for_org", org, attrs.Name); err != nil {
		return nil, err
	}
	if f.b.returnsNil("projects.create_for_org " + org + " " + attrs.Name) {
		return nil, nil
	}
	rec := f.b.addProject(org, attrs.Name)
	return &rec, nil
}

func (f fakeProjects) Update(ctx context.Context, id string, attrs ProjectAttrs) (*ProjectRecord, error) {
	if err := f.b.record(ctx, "projects.update", id); err != nil {
		return nil, err
	}
	if f.b.returnsNil("projects.update " + id) {
		return nil, nil
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for org, projects := range f.b.projects {
		for i, p := range projects {
			if p.ID == id {
				if attrs.Name != "" {
					p.Name = attrs.Name
				}
				f.b.projects[org][i] = p
				return &p, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (f fakeProjects) Delete(ctx context.Context, id string) error {
	return f.b.record(ctx, "projects.delete", id)
}

func (f fakeProjects) AttachToTeam(ctx context.Context, teamID, projectID string) error {
	if err := f.b.record(ctx, "projects.attach_to_team", teamID, projectID); err != nil {
		return err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	f.b.teamProjects[teamID] = append(f.b.teamProjects[teamID], projectID)
	return nil
}

func (f fakeProjects) DetachFromTeam(ctx context.Context, teamID, projectID string) error {
	return f.b.record(ctx, "projects.detach_from_team", teamID, projectID)
}

func (f fakeProjects) AttachSharedConfig(ctx context.Context, projectID, configID string) error {
	if err := f.b.record(ctx, "projects.attach_shared_config", projectID, configID); err != nil {
		return err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	f.b.projConfigs[projectID] = append(f.b.projConfigs[projectID], configID)
	return nil
}

func (f fakeProjects) DetachSharedConfig(ctx context.Context, projectID, configID string) error {
	if err := f.b.record(ctx, "projects.detach_shared_config", projectID, configID); err != nil {
		return err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	kept := f.b.projConfigs[projectID][:0]
	for _, id := range f.b.projConfigs[projectID] {
		if id != configID {
			kept = append(kept, id)
		}
	}
	f.b.projConfigs[projectID] = kept
	return nil
}

type fakeConfigs struct{ b *backend }

func (f fakeConfigs) ListForOrg(ctx context.Context, org string) ([]SharedConfigRecord, error) {
	if err := f.b.record(ctx, "shared_configs.list_for_org", org); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if !f.b.hasOrg(org) {
		return nil, ErrNotFound
	}
	return append([]SharedConfigRecord(nil), f.b.configs[org]...), nil
}

func (f fakeConfigs) ListForTeam(ctx context.Context, teamID string) ([]SharedConfigRecord, error) {
	if err := f.b.record(ctx, "shared_configs.list_for_team", teamID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return f.b.configsByID(f.b.teamConfigs[teamID]), nil
}

func (f fakeConfigs) ListForProject(ctx context.Context, projectID string) ([]SharedConfigRecord, error) {
	if err := f.b.record(ctx, "shared_configs.list_for_project", projectID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return f.b.configsByID(f.b.projConfigs[projectID]), nil
}

func (b *backend) configsByID(ids []string) []SharedConfigRecord {
	var out []SharedConfigRecord
	for _, id := range ids {
		for _, configs := range b.configs {
			for _, c := range configs {
				if c.ID == id {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func (f fakeConfigs) CreateForOrg(ctx context.Context, org string, attrs SharedConfigAttrs) (*SharedConfigRecord, error) {
	if err := f.b.record(ctx, "shared_configs.create_for_org", org, attrs.Name); err != nil {
		return nil, err
	}
	if f.b.returnsNil("shared_configs.create_for_org " + org + " " + attrs.Name) {
		return nil, nil
	}
	rec := f.b.addConfig(org, attrs.Name)
	return &rec, nil
}

func (f fakeConfigs) Update(ctx context.Context, id string, attrs SharedConfigAttrs) (*SharedConfigRecord, error) {
	if err := f.b.record(ctx, "shared_configs.update", id); err != nil {
		return nil, err
	}
	if f.b.returnsNil("shared_configs.update " + id) {
		return nil, nil
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for org, configs := range f.b.configs {
		for i, c := range configs {
			if c.ID == id {
				if attrs.Name != "" {
					c.Name = attrs.Name
				}
				f.b.configs[org][i] = c
				return &c, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (f fakeConfigs) Delete(ctx context.Context, id string) error {
	return f.b.record(ctx, "shared_configs.delete", id)
}

func (f fakeConfigs) AttachToTeam(ctx context.Context, teamID, configID string) error {
	if err := f.b.record(ctx, "shared_configs.attach_to_team", teamID, configID); err != nil {
		return err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	f.b.teamConfigs[teamID] = append(f.b.teamConfigs[teamID], configID)
	return nil
}

func (f fakeConfigs) DetachFromTeam(ctx context.Context, teamID, configID string) error {
	return f.b.record(ctx, "shared_configs.detach_from_team", teamID, configID)
}

type fakeUsers struct{ b *backend }

func (f fakeUsers) ListForOrg(ctx context.Context, org string) ([]UserRecord, error) {
	if err := f.b.record(ctx, "users.list_for_org", org); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if !f.b.hasOrg(org) {
		return nil, ErrNotFound
	}
	return append([]UserRecord(nil), f.b.orgUsers[org]...), nil
}

func (f fakeUsers) ListForTeam(ctx context.Context, teamID string) ([]UserRecord, error) {
	if err := f.b.record(ctx, "users.list_for_team", teamID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return append([]UserRecord(nil), f.b.teamUsers[teamID]...), nil
}

func (f fakeUsers) AttachToTeam(ctx context.Context, teamID, username string) error {
	if err := f.b.record(ctx, "users.attach_to_team", teamID, username); err != nil {
		return err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	f.b.teamUsers[teamID] = append(f.b.teamUsers[teamID], UserRecord{Username: username})
	return nil
}

func (f fakeUsers) DetachFromTeam(ctx context.Context, teamID, username string) error {
	return f.b.record(ctx, "users.detach_from_team", teamID, username)
}

type fakeEnvVars struct{ b *backend }

func (f fakeEnvVars) ListForSharedConfig(ctx context.Context, configID string) ([]EnvVarRecord, error) {
	if err := f.b.record(ctx, "env_vars.list_for_shared_config", configID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return append([]EnvVarRecord(nil), f.b.envVars[configID]...), nil
}

func (f fakeEnvVars) ListForProject(ctx context.Context, projectID string) ([]EnvVarRecord, error) {
	if err := f.b.record(ctx, "env_vars.list_for_project", projectID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return append([]EnvVarRecord(nil), f.b.envVars[projectID]...), nil
}

func (f fakeEnvVars) CreateForSharedConfig(ctx context.Context, configID string, attrs EnvVarAttrs) (*EnvVarRecord, error) {
	if err := f.b.record(ctx, "env_vars.create_for_shared_config", configID, attrs.Name); err != nil {
		return nil, err
	}
	rec := f.b.addEnvVar(configID, attrs.Name, attrs.Content)
	return &rec, nil
}

func (f fakeEnvVars) CreateForProject(ctx context.Context, projectID string, attrs EnvVarAttrs) (*EnvVarRecord, error) {
	if err := f.b.record(ctx, "env_vars.create_for_project", projectID, attrs.Name); err != nil {
		return nil, err
	}
	rec := f.b.addEnvVar(projectID, attrs.Name, attrs.Content)
	return &rec, nil
}

func (f fakeEnvVars) Delete(ctx context.Context, id string) error {
	return f.b.record(ctx, "env_vars.delete", id)
}

type fakeFiles struct{ b *backend }

func (f fakeFiles) ListForSharedConfig(ctx context.Context, configID string) ([]ConfigFileRecord, error) {
	if err := f.b.record(ctx, "config_files.list_for_shared_config", configID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return append([]ConfigFileRecord(nil), f.b.files[configID]...), nil
}

func (f fakeFiles) ListForProject(ctx context.Context, projectID string) ([]ConfigFileRecord, error) {
	if err := f.b.record(ctx, "config_files.list_for_project", projectID); err != nil {
		return nil, err
	}
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return append([]ConfigFileRecord(nil), f.b.files[projectID]...), nil
}

func (f fakeFiles) CreateForSharedConfig(ctx context.Context, configID string, attrs ConfigFileAttrs) (*ConfigFileRecord, error) {
	if err := f.b.record(ctx, "config_files.create_for_shared_config", configID, attrs.Path); err != nil {
		return nil, err
	}
	rec := f.b.addFile(configID, attrs.Path, attrs.Content)
	return &rec, nil
}

func (f fakeFiles) CreateForProject(ctx context.Context, projectID string, attrs ConfigFileAttrs) (*ConfigFileRecord, error) {
	if err := f.b.record(ctx, "config_files.create_for_project", projectID, attrs.Path); err != nil {
		return nil, err
	}
	rec := f.b.addFile(projectID, attrs.Path, attrs.Content)
	return &rec, nil
}

func (f fakeFiles) Delete(ctx context.Context, id string) error {
	return f.b.record(ctx, "config_files.delete", id)
}
