package resource

import "context"

// OrgLister lists the records of one kind owned by an organization.
type OrgLister[R any] interface {
	ListForOrg(ctx context.Context, org string) ([]R, error)
}

// TeamLister lists the records of one kind associated with a team.
type TeamLister[R any] interface {
	ListForTeam(ctx context.Context, teamID string) ([]R, error)
}

// OrgClient lists the organizations visible to the caller.
type OrgClient interface {
	List(ctx context.Context) ([]OrgRecord, error)
}

// TeamClient is the remote capability for teams.
type TeamClient interface {
	OrgLister[TeamRecord]
	ListForSharedConfig(ctx context.Context, configID string) ([]TeamRecord, error)
	CreateForOrg(ctx context.Context, org string, attrs TeamAttrs) (*TeamRecord, error)
	Update(ctx context.Context, id string, attrs TeamAttrs) (*TeamRecord, error)
	Delete(ctx context.Context, id string) error
}

// ProjectClient is the remote capability for projects.
type ProjectClient interface {
	OrgLister[ProjectRecord]
	TeamLister[ProjectRecord]
	ListForSharedConfig(ctx context.Context, configID string) ([]ProjectRecord, error)
	CreateForOrg(ctx context.Context, org string, attrs ProjectAttrs) (*ProjectRecord, error)
	Update(ctx context.Context, id string, attrs ProjectAttrs) (*ProjectRecord, error)
	Delete(ctx context.Context, id string) error
	AttachToTeam(ctx context.Context, teamID, projectID string) error
	DetachFromTeam(ctx context.Context, teamID, projectID string) error
	AttachSharedConfig(ctx context.Context, projectID, configID string) error
	DetachSharedConfig(ctx context.Context, projectID, configID string) error
}

// SharedConfigClient is the remote capability for shared configurations.
type SharedConfigClient interface {
	OrgLister[SharedConfigRecord]
	TeamLister[SharedConfigRecord]
	ListForProject(ctx context.Context, projectID string) ([]SharedConfigRecord, error)
	CreateForOrg(ctx context.Context, org string, attrs SharedConfigAttrs) (*SharedConfigRecord, error)
	Update(ctx context.Context, id string, attrs SharedConfigAttrs) (*SharedConfigRecord, error)
	Delete(ctx context.Context, id string) error
	AttachToTeam(ctx context.Context, teamID, configID string) error
	DetachFromTeam(ctx context.Context, teamID, configID string) error
}

// UserClient is the remote capability for users.
type UserClient interface {
	OrgLister[UserRecord]
	TeamLister[UserRecord]
	AttachToTeam(ctx context.Context, teamID, username string) error
	DetachFromTeam(ctx context.Context, teamID, username string) error
}

// EnvVarClient is the remote capability for environment variables.
type EnvVarClient interface {
	ListForSharedConfig(ctx context.Context, configID string) ([]EnvVarRecord, error)
	ListForProject(ctx context.Context, projectID string) ([]EnvVarRecord, error)
	CreateForSharedConfig(ctx context.Context, configID string, attrs EnvVarAttrs) (*EnvVarRecord, error)
	CreateForProject(ctx context.Context, projectID string, attrs EnvVarAttrs) (*EnvVarRecord, error)
	Delete(ctx context.Context, id string) error
}

// ConfigFileClient is the remote capability for configuration files.
type ConfigFileClient interface {
	ListForSharedConfig(ctx context.Context, configID string) ([]ConfigFileRecord, error)
	ListForProject(ctx context.Context, projectID string) ([]ConfigFileRecord, error)
	CreateForSharedConfig(ctx context.Context, configID string, attrs ConfigFileAttrs) (*ConfigFileRecord, error)
	CreateForProject(ctx context.Context, projectID string, attrs ConfigFileAttrs) (*ConfigFileRecord, error)
	Delete(ctx context.Context, id string) error
}

// Clients bundles one capability per resource kind. It is handed to New
// explicitly so tests can substitute in-memory doubles.
type Clients struct {
	Orgs          OrgClient
	Teams         TeamClient
	Projects      ProjectClient
	SharedConfigs SharedConfigClient
	Users         UserClient
	EnvVars       EnvVarClient
	ConfigFiles   ConfigFileClient
}
