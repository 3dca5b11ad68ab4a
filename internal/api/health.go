package api

import (
	"context"
	"net/http"
)

// Status represents the reachability of the API for the configured token.
type Status int

const (
	StatusUnknown Status = iota
	StatusUp
	StatusUnauthorized
	StatusDown
)

func (s Status) String() string {
	switch s {
	case StatusUp:
		return "up"
	case StatusUnauthorized:
		return "unauthorized"
	case StatusDown:
		return "down"
	default:
		return "unknown"
	}
}

// Health probes the API with a cheap authenticated request.
func (c *Client) Health(ctx context.Context) Status {
	resp, err := c.http.R().SetContext(ctx).Get("/orgs")
	if err != nil || resp == nil {
		return StatusDown
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return StatusUp
	case http.StatusUnauthorized, http.StatusForbidden:
		return StatusUnauthorized
	}
	return StatusDown
}
