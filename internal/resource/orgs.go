package resource

import "context"

// Orgs is the organization repository.
type Orgs struct {
	client OrgClient
}

func newOrgs(client OrgClient) *Orgs {
	return &Orgs{client: client}
}

// List returns the caller's organizations in server order.
func (o *Orgs) List(ctx context.Context) ([]Organization, error) {
	recs, err := o.client.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Organization, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Organization{rec: rec})
	}
	return out, nil
}

// Info returns the organization whose username is name.
func (o *Orgs) Info(ctx context.Context, name string) (Organization, error) {
	orgs, err := o.List(ctx)
	if err != nil {
		return Organization{}, err
	}
	for _, org := range orgs {
		if org.Username() == name {
			return org, nil
		}
	}
	return Organization{}, &NotFoundError{Kind: KindOrganization, Path: name}
}

// usernames returns the organization usernames in server order; it drives
// the List fan-out of every other repository.
func (o *Orgs) usernames(ctx context.Context) ([]string, error) {
	recs, err := o.client.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(recs))
	for _, rec := range recs {
		names = append(names, rec.Username)
	}
	return names, nil
}
