package resource

import "time"

// Kind names a resource kind in errors and log lines.
type Kind string

const (
	KindOrganization Kind = "Organization"
	KindTeam         Kind = "Team"
	KindProject      Kind = "Project"
	KindSharedConfig Kind = "Shared Configuration"
	KindUser         Kind = "User"
	KindEnvVar       Kind = "Environment Variable"
	KindConfigFile   Kind = "Configuration File"
)

// OrgRecord is an organization as returned by the API.
type OrgRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamRecord is a team as returned by the API.
type TeamRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permission  string    `json:"permission"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectRecord is a project as returned by the API.
type ProjectRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	HTMLURL      string    `json:"html_url"`
	RepoProvider string    `json:"repo_provider"`
	RepoOwner    string    `json:"repo_owner"`
	RepoName     string    `json:"repo_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SharedConfigRecord is a shared configuration as returned by the API.
type SharedConfigRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EnvVarRecord is an environment variable owned by a shared configuration
// or by a project.
type EnvVarRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Encrypted bool   `json:"encrypted"`
}

// ConfigFileRecord is a configuration file owned by a shared configuration
// or by a project.
type ConfigFileRecord struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Content   string `json:"content"`
	Encrypted bool   `json:"encrypted"`
}

// UserRecord is a platform user.
type UserRecord struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TeamAttrs are the writable attributes of a team.
type TeamAttrs struct {
	Name        string     `json:"name,omitempty"`
	Permission  Permission `json:"permission,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ProjectAttrs are the writable attributes of a project.
type ProjectAttrs struct {
	Name         string `json:"name,omitempty"`
	RepoProvider string `json:"repo_provider,omitempty"`
	RepoOwner    string `json:"repo_owner,omitempty"`
	RepoName     string `json:"repo_name,omitempty"`
}

// SharedConfigAttrs are the writable attributes of a shared configuration.
type SharedConfigAttrs struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// EnvVarAttrs describe an environment variable to create.
type EnvVarAttrs struct {
	Name      string `json:"name"`
	Content   string `json:"content"`
	Encrypted bool   `json:"encrypted"`
}

// ConfigFileAttrs describe a configuration file to create.
type ConfigFileAttrs struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Encrypted bool   `json:"encrypted"`
}
