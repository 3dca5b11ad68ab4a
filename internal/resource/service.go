// Package resource resolves "<org>/<name>" paths into platform resources and
// manages the associations between teams, projects and shared
// configurations.
//
// The package is stateless: every operation re-resolves its paths against
// the remote service through the Clients it was constructed with. Only List
// calls run concurrently (one call per organization); everything else,
// including the shared configuration cascade, is strictly sequential.
package resource

// Service groups the repositories and the association manager built over
// one set of Clients.
type Service struct {
	Orgs          *Orgs
	Teams         *Teams
	Projects      *Projects
	SharedConfigs *SharedConfigs
	Users         *Users
	Associations  *Associations
}

// Option customises Service construction.
type Option func(*options)

type options struct {
	concurrency int
}

// WithConcurrency bounds the number of per-organization list calls in flight.
// Values below one fall back to DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// New wires every repository to c.
func New(c Clients, opts ...Option) *Service {
	o := options{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}

	orgs := newOrgs(c.Orgs)
	teams := newTeams(c.Teams, c.Users, orgs, o.concurrency)
	projects := newProjects(c.Projects, c.EnvVars, c.ConfigFiles, orgs, o.concurrency)
	configs := newSharedConfigs(c.SharedConfigs, c.EnvVars, c.ConfigFiles, orgs, o.concurrency)
	users := newUsers(c.Users)

	return &Service{
		Orgs:          orgs,
		Teams:         teams,
		Projects:      projects,
		SharedConfigs: configs,
		Users:         users,
		Associations:  newAssociations(c, teams, projects, configs, users),
	}
}
