// Package gitremote reads and parses the origin remote of a local git
// checkout so a project can be created from the current directory.
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// ErrInvalidURL is returned for remotes that are not GitHub or Bitbucket
// repositories.
var ErrInvalidURL = errors.New("unsupported git url")

// Repo identifies a hosted repository.
type Repo struct {
	Provider string
	Owner    string
	Name     string
}

var providers = map[string]string{
	"github.com":    "github",
	"bitbucket.org": "bitbucket",
}

// Origin returns the url of the origin remote of the checkout in dir.
func Origin(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", "remote.origin.url")
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git config --get remote.origin.url failed: %w\n%s", err, output)
	}

	origin := strings.TrimSpace(string(output))
	if origin == "" {
		return "", fmt.Errorf("no origin remote configured in %s", dir)
	}
	return origin, nil
}

// Parse splits a GitHub or Bitbucket url into provider, owner and name.
// Accepted forms:
//
//	git@github.com:owner/name.git
//	ssh://git@github.com/owner/name.git
//	https://github.com/owner/name
func Parse(raw string) (Repo, error) {
	raw = strings.TrimSpace(raw)

	var host, path string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
		}
		switch u.Scheme {
		case "https", "http", "ssh", "git":
		default:
			return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
		}
		host, path = u.Hostname(), u.Path
	case strings.Contains(raw, "@") && strings.Contains(raw, ":"):
		// scp-like syntax: user@host:owner/name
		rest := raw[strings.Index(raw, "@")+1:]
		host, path, _ = strings.Cut(rest, ":")
	default:
		return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	provider, ok := providers[strings.ToLower(host)]
	if !ok {
		return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, name, ok := strings.Cut(path, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repo{}, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	return Repo{Provider: provider, Owner: owner, Name: name}, nil
}

// URL returns the canonical ssh url of the repository.
func (r Repo) URL() string {
	for host, provider := range providers {
		if provider == r.Provider {
			return fmt.Sprintf("git@%s:%s/%s.git", host, r.Owner, r.Name)
		}
	}
	return ""
}
