package resource

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Permission is a team's permission level inside its organization.
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
	PermissionAdmin Permission = "admin"
	PermissionOwner Permission = "owner"
)

// ParsePermission validates a permission level name.
func ParsePermission(value string) (Permission, error) {
	switch p := Permission(strings.ToLower(strings.TrimSpace(value))); p {
	case PermissionRead, PermissionWrite, PermissionAdmin, PermissionOwner:
		return p, nil
	}
	return "", &ValidationError{
		Message: fmt.Sprintf("invalid permission %q (must be read, write, admin, or owner)", value),
	}
}

// Organization is a tenant namespace.
type Organization struct {
	rec OrgRecord
}

func (o Organization) ID() string           { return o.rec.ID }
func (o Organization) Username() string     { return o.rec.Username }
func (o Organization) Name() string         { return o.rec.Name }
func (o Organization) CreatedAt() time.Time { return o.rec.CreatedAt }
func (o Organization) UpdatedAt() time.Time { return o.rec.UpdatedAt }

// Team is a team record together with the organization that owns it.
type Team struct {
	org     string
	rec     TeamRecord
	members int
}

func (t Team) ID() string             { return t.rec.ID }
func (t Team) Name() string           { return t.rec.Name }
func (t Team) Org() string            { return t.org }
func (t Team) FullName() string       { return JoinPath(t.org, t.rec.Name) }
func (t Team) Permission() Permission { return Permission(t.rec.Permission) }
func (t Team) Description() string    { return t.rec.Description }
func (t Team) MemberCount() int       { return t.members }
func (t Team) CreatedAt() time.Time   { return t.rec.CreatedAt }
func (t Team) UpdatedAt() time.Time   { return t.rec.UpdatedAt }

// Members is the member count rendered as a string.
func (t Team) Members() string { return strconv.Itoa(t.members) }

// Project is a project record together with the organization that owns it.
type Project struct {
	org string
	rec ProjectRecord
}

func (p Project) ID() string           { return p.rec.ID }
func (p Project) Name() string         { return p.rec.Name }
func (p Project) Org() string          { return p.org }
func (p Project) FullName() string     { return JoinPath(p.org, p.rec.Name) }
func (p Project) HTMLURL() string      { return p.rec.HTMLURL }
func (p Project) RepoProvider() string { return p.rec.RepoProvider }
func (p Project) RepoOwner() string    { return p.rec.RepoOwner }
func (p Project) RepoName() string     { return p.rec.RepoName }
func (p Project) CreatedAt() time.Time { return p.rec.CreatedAt }
func (p Project) UpdatedAt() time.Time { return p.rec.UpdatedAt }

// SharedConfig is a shared configuration record together with its owning
// organization.
type SharedConfig struct {
	org string
	rec SharedConfigRecord
}

func (c SharedConfig) ID() string           { return c.rec.ID }
func (c SharedConfig) Name() string         { return c.rec.Name }
func (c SharedConfig) Org() string          { return c.org }
func (c SharedConfig) FullName() string     { return JoinPath(c.org, c.rec.Name) }
func (c SharedConfig) Description() string  { return c.rec.Description }
func (c SharedConfig) CreatedAt() time.Time { return c.rec.CreatedAt }
func (c SharedConfig) UpdatedAt() time.Time { return c.rec.UpdatedAt }

// EnvVar is an environment variable owned by a shared configuration or a
// project.
type EnvVar struct {
	rec EnvVarRecord
}

func (e EnvVar) ID() string      { return e.rec.ID }
func (e EnvVar) Name() string    { return e.rec.Name }
func (e EnvVar) Content() string { return e.rec.Content }
func (e EnvVar) Encrypted() bool { return e.rec.Encrypted }

// Attrs returns the attributes needed to recreate the variable elsewhere.
func (e EnvVar) Attrs() EnvVarAttrs {
	return EnvVarAttrs{Name: e.rec.Name, Content: e.rec.Content, Encrypted: e.rec.Encrypted}
}

// ConfigFile is a configuration file owned by a shared configuration or a
// project.
type ConfigFile struct {
	rec ConfigFileRecord
}

func (f ConfigFile) ID() string      { return f.rec.ID }
func (f ConfigFile) Path() string    { return f.rec.Path }
func (f ConfigFile) Content() string { return f.rec.Content }
func (f ConfigFile) Encrypted() bool { return f.rec.Encrypted }

// Attrs returns the attributes needed to recreate the file elsewhere.
func (f ConfigFile) Attrs() ConfigFileAttrs {
	return ConfigFileAttrs{Path: f.rec.Path, Content: f.rec.Content, Encrypted: f.rec.Encrypted}
}

// User is a platform user.
type User struct {
	rec UserRecord
}

func (u User) Username() string { return u.rec.Username }
func (u User) Name() string     { return u.rec.Name }

func envVarsOf(recs []EnvVarRecord) []EnvVar {
	out := make([]EnvVar, 0, len(recs))
	for _, rec := range recs {
		out = append(out, EnvVar{rec: rec})
	}
	return out
}

func configFilesOf(recs []ConfigFileRecord) []ConfigFile {
	out := make([]ConfigFile, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ConfigFile{rec: rec})
	}
	return out
}

func usersOf(recs []UserRecord) []User {
	out := make([]User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, User{rec: rec})
	}
	return out
}
