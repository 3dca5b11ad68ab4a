package resource

import (
	"context"
	"fmt"
)

// orgScope resolves "<org>/<name>" paths for one resource kind through an
// injected OrgLister. Repositories hold one instead of sharing methods.
type orgScope[R any] struct {
	kind   Kind
	lister OrgLister[R]
	nameOf func(R) string
}

func (s orgScope[R]) listForOrg(ctx context.Context, org string) ([]R, error) {
	recs, err := s.lister.ListForOrg(ctx, org)
	if err != nil {
		return nil, notFoundAs(err, KindOrganization, org)
	}
	return recs, nil
}

// find returns the first record in server order whose name is the path's leaf.
func (s orgScope[R]) find(ctx context.Context, path string) (string, R, error) {
	var zero R

	org, name, err := ParsePath(path)
	if err != nil {
		return "", zero, err
	}

	recs, err := s.lister.ListForOrg(ctx, org)
	if err != nil {
		return "", zero, notFoundAs(err, s.kind, path)
	}
	for _, rec := range recs {
		if s.nameOf(rec) == name {
			return org, rec, nil
		}
	}
	return "", zero, &NotFoundError{Kind: s.kind, Path: path}
}

// renameTarget checks that newPath stays in oldPath's organization and
// returns the new leaf name.
func renameTarget(kind Kind, oldPath, newPath string) (string, error) {
	oldOrg, _, err := ParsePath(oldPath)
	if err != nil {
		return "", err
	}
	newOrg, newName, err := ParsePath(newPath)
	if err != nil {
		return "", err
	}
	if oldOrg != newOrg {
		return "", &ValidationError{
			Message: fmt.Sprintf("cannot move %s %s to organization %s", kind, oldPath, newOrg),
		}
	}
	return newName, nil
}
