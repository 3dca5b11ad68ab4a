package resource

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantOrg  string
		wantName string
		wantErr  bool
	}{
		{name: "org and name", path: "renderedtext/developers", wantOrg: "renderedtext", wantName: "developers"},
		{name: "dashes", path: "z-fighters/cli", wantOrg: "z-fighters", wantName: "cli"},
		{name: "bare name", path: "developers", wantErr: true},
		{name: "empty", path: "", wantErr: true},
		{name: "empty org", path: "/developers", wantErr: true},
		{name: "empty name", path: "renderedtext/", wantErr: true},
		{name: "too many components", path: "renderedtext/developers/extra", wantErr: true},
		{name: "only separator", path: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, name, err := ParsePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPath) {
					t.Errorf("ParsePath(%q) error = %v, want ErrMalformedPath", tt.path, err)
				}
				return
			}
			if org != tt.wantOrg || name != tt.wantName {
				t.Errorf("ParsePath(%q) = (%q, %q), want (%q, %q)", tt.path, org, name, tt.wantOrg, tt.wantName)
			}
			if got := JoinPath(org, name); got != tt.path {
				t.Errorf("JoinPath(%q, %q) = %q, want %q", org, name, got, tt.path)
			}
		})
	}
}

func TestParsePermission(t *testing.T) {
	for _, valid := range []string{"read", "write", "admin", "owner", " Admin "} {
		if _, err := ParsePermission(valid); err != nil {
			t.Errorf("ParsePermission(%q) unexpected error: %v", valid, err)
		}
	}

	_, err := ParsePermission("superuser")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ParsePermission(superuser) error = %v, want ValidationError", err)
	}
}
