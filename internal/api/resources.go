package api

import (
	"context"
	"net/http"

	"github.com/blackwell-systems/sem-cli/internal/resource"
)

type orgsAPI struct{ c *Client }

func (a orgsAPI) List(ctx context.Context) ([]resource.OrgRecord, error) {
	return list[resource.OrgRecord](ctx, a.c, "/orgs", nil)
}

type teamsAPI struct{ c *Client }

func (a teamsAPI) ListForOrg(ctx context.Context, org string) ([]resource.TeamRecord, error) {
	return list[resource.TeamRecord](ctx, a.c, "/orgs/{org}/teams", params{"org": org})
}

func (a teamsAPI) ListForSharedConfig(ctx context.Context, configID string) ([]resource.TeamRecord, error) {
	return list[resource.TeamRecord](ctx, a.c, "/shared_configs/{id}/teams", params{"id": configID})
}

func (a teamsAPI) CreateForOrg(ctx context.Context, org string, attrs resource.TeamAttrs) (*resource.TeamRecord, error) {
	return write[resource.TeamRecord](ctx, a.c, http.MethodPost, "/orgs/{org}/teams", params{"org": org}, attrs)
}

func (a teamsAPI) Update(ctx context.Context, id string, attrs resource.TeamAttrs) (*resource.TeamRecord, error) {
	return write[resource.TeamRecord](ctx, a.c, http.MethodPatch, "/teams/{id}", params{"id": id}, attrs)
}

func (a teamsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/teams/{id}", params{"id": id}, nil, nil)
}

type projectsAPI struct{ c *Client }

func (a projectsAPI) ListForOrg(ctx context.Context, org string) ([]resource.ProjectRecord, error) {
	return list[resource.ProjectRecord](ctx, a.c, "/orgs/{org}/projects", params{"org": org})
}

func (a projectsAPI) ListForTeam(ctx context.Context, teamID string) ([]resource.ProjectRecord, error) {
	return list[resource.ProjectRecord](ctx, a.c, "/teams/{id}/projects", params{"id": teamID})
}

func (a projectsAPI) ListForSharedConfig(ctx context.Context, configID string) ([]resource.ProjectRecord, error) {
	return list[resource.ProjectRecord](ctx, a.c, "/shared_configs/{id}/projects", params{"id": configID})
}

func (a projectsAPI) CreateForOrg(ctx context.Context, org string, attrs resource.ProjectAttrs) (*resource.ProjectRecord, error) {
	return write[resource.ProjectRecord](ctx, a.c, http.MethodPost, "/orgs/{org}/projects", params{"org": org}, attrs)
}

func (a projectsAPI) Update(ctx context.Context, id string, attrs resource.ProjectAttrs) (*resource.ProjectRecord, error) {
	return write[resource.ProjectRecord](ctx, a.c, http.MethodPatch, "/projects/{id}", params{"id": id}, attrs)
}

func (a projectsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/projects/{id}", params{"id": id}, nil, nil)
}

func (a projectsAPI) AttachToTeam(ctx context.Context, teamID, projectID string) error {
	return a.c.do(ctx, http.MethodPost, "/teams/{team}/projects/{project}", params{"team": teamID, "project": projectID}, nil, nil)
}

func (a projectsAPI) DetachFromTeam(ctx context.Context, teamID, projectID string) error {
	return a.c.do(ctx, http.MethodDelete, "/teams/{team}/projects/{project}", params{"team": teamID, "project": projectID}, nil, nil)
}

func (a projectsAPI) AttachSharedConfig(ctx context.Context, projectID, configID string) error {
	return a.c.do(ctx, http.MethodPost, "/projects/{project}/shared_configs/{config}", params{"project": projectID, "config": configID}, nil, nil)
}

func (a projectsAPI) DetachSharedConfig(ctx context.Context, projectID, configID string) error {
	return a.c.do(ctx, http.MethodDelete, "/projects/{project}/shared_configs/{config}", params{"project": projectID, "config": configID}, nil, nil)
}

type sharedConfigsAPI struct{ c *Client }

func (a sharedConfigsAPI) ListForOrg(ctx context.Context, org string) ([]resource.SharedConfigRecord, error) {
	return list[resource.SharedConfigRecord](ctx, a.c, "/orgs/{org}/shared_configs", params{"org": org})
}

func (a sharedConfigsAPI) ListForTeam(ctx context.Context, teamID string) ([]resource.SharedConfigRecord, error) {
	return list[resource.SharedConfigRecord](ctx, a.c, "/teams/{id}/shared_configs", params{"id": teamID})
}

func (a sharedConfigsAPI) ListForProject(ctx context.Context, projectID string) ([]resource.SharedConfigRecord, error) {
	return list[resource.SharedConfigRecord](ctx, a.c, "/projects/{id}/shared_configs", params{"id": projectID})
}

func (a sharedConfigsAPI) CreateForOrg(ctx context.Context, org string, attrs resource.SharedConfigAttrs) (*resource.SharedConfigRecord, error) {
	return write[resource.SharedConfigRecord](ctx, a.c, http.MethodPost, "/orgs/{org}/shared_configs", params{"org": org}, attrs)
}

func (a sharedConfigsAPI) Update(ctx context.Context, id string, attrs resource.SharedConfigAttrs) (*resource.SharedConfigRecord, error) {
	return write[resource.SharedConfigRecord](ctx, a.c, http.MethodPatch, "/shared_configs/{id}", params{"id": id}, attrs)
}

func (a sharedConfigsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/shared_configs/{id}", params{"id": id}, nil, nil)
}

func (a sharedConfigsAPI) AttachToTeam(ctx context.Context, teamID, configID string) error {
	return a.c.do(ctx, http.MethodPost, "/teams/{team}/shared_configs/{config}", params{"team": teamID, "config": configID}, nil, nil)
}

func (a sharedConfigsAPI) DetachFromTeam(ctx context.Context, teamID, configID string) error {
	return a.c.do(ctx, http.MethodDelete, "/teams/{team}/shared_configs/{config}", params{"team": teamID, "config": configID}, nil, nil)
}

type usersAPI struct{ c *Client }

func (a usersAPI) ListForOrg(ctx context.Context, org string) ([]resource.UserRecord, error) {
	return list[resource.UserRecord](ctx, a.c, "/orgs/{org}/users", params{"org": org})
}

func (a usersAPI) ListForTeam(ctx context.Context, teamID string) ([]resource.UserRecord, error) {
	return list[resource.UserRecord](ctx, a.c, "/teams/{id}/users", params{"id": teamID})
}

func (a usersAPI) AttachToTeam(ctx context.Context, teamID, username string) error {
	return a.c.do(ctx, http.MethodPost, "/teams/{team}/users/{user}", params{"team": teamID, "user": username}, nil, nil)
}

func (a usersAPI) DetachFromTeam(ctx context.Context, teamID, username string) error {
	return a.c.do(ctx, http.MethodDelete, "/teams/{team}/users/{user}", params{"team": teamID, "user": username}, nil, nil)
}

type envVarsAPI struct{ c *Client }

func (a envVarsAPI) ListForSharedConfig(ctx context.Context, configID string) ([]resource.EnvVarRecord, error) {
	return list[resource.EnvVarRecord](ctx, a.c, "/shared_configs/{id}/env_vars", params{"id": configID})
}

func (a envVarsAPI) ListForProject(ctx context.Context, projectID string) ([]resource.EnvVarRecord, error) {
	return list[resource.EnvVarRecord](ctx, a.c, "/projects/{id}/env_vars", params{"id": projectID})
}

func (a envVarsAPI) CreateForSharedConfig(ctx context.Context, configID string, attrs resource.EnvVarAttrs) (*resource.EnvVarRecord, error) {
	return write[resource.EnvVarRecord](ctx, a.c, http.MethodPost, "/shared_configs/{id}/env_vars", params{"id": configID}, attrs)
}

func (a envVarsAPI) CreateForProject(ctx context.Context, projectID string, attrs resource.EnvVarAttrs) (*resource.EnvVarRecord, error) {
	return write[resource.EnvVarRecord](ctx, a.c, http.MethodPost, "/projects/{id}/env_vars", params{"id": projectID}, attrs)
}

func (a envVarsAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/env_vars/{id}", params{"id": id}, nil, nil)
}

type configFilesAPI struct{ c *Client }

func (a configFilesAPI) ListForSharedConfig(ctx context.Context, configID string) ([]resource.ConfigFileRecord, error) {
	return list[resource.ConfigFileRecord](ctx, a.c, "/shared_configs/{id}/config_files", params{"id": configID})
}

func (a configFilesAPI) ListForProject(ctx context.Context, projectID string) ([]resource.ConfigFileRecord, error) {
	return list[resource.ConfigFileRecord](ctx, a.c, "/projects/{id}/config_files", params{"id": projectID})
}

func (a configFilesAPI) CreateForSharedConfig(ctx context.Context, configID string, attrs resource.ConfigFileAttrs) (*resource.ConfigFileRecord, error) {
	return write[resource.ConfigFileRecord](ctx, a.c, http.MethodPost, "/shared_configs/{id}/config_files", params{"id": configID}, attrs)
}

func (a configFilesAPI) CreateForProject(ctx context.Context, projectID string, attrs resource.ConfigFileAttrs) (*resource.ConfigFileRecord, error) {
	return write[resource.ConfigFileRecord](ctx, a.c, http.MethodPost, "/projects/{id}/config_files", params{"id": projectID}, attrs)
}

func (a configFilesAPI) Delete(ctx context.Context, id string) error {
	return a.c.do(ctx, http.MethodDelete, "/config_files/{id}", params{"id": id}, nil, nil)
}
