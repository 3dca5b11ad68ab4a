package resource

import "context"

// Users is the user repository. Users are addressed by bare username.
type Users struct {
	client UserClient
}

func newUsers(client UserClient) *Users {
	return &Users{client: client}
}

// ListForOrg returns the members of an organization.
func (u *Users) ListForOrg(ctx context.Context, org string) ([]User, error) {
	recs, err := u.client.ListForOrg(ctx, org)
	if err != nil {
		return nil, notFoundAs(err, KindOrganization, org)
	}
	return usersOf(recs), nil
}

// ListForTeam returns the members of a team.
func (u *Users) ListForTeam(ctx context.Context, team Team) ([]User, error) {
	recs, err := u.client.ListForTeam(ctx, team.ID())
	if err != nil {
		return nil, notFoundAs(err, KindTeam, team.FullName())
	}
	return usersOf(recs), nil
}
