package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/sem-cli/internal/resource"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "secret", opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewNormalisesBaseURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty uses default", "", DefaultBaseURL},
		{"adds scheme", "api.example.com/v2", "https://api.example.com/v2"},
		{"trims slash", "http://localhost:9000/", "http://localhost:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.in, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id must be a uuid")
		writeJSON(w, http.StatusOK, []resource.OrgRecord{{ID: "1", Username: "rt", Name: "Rendered Text"}})
	})

	orgs, err := c.Clients().Orgs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "rt", orgs[0].Username)
}

func TestPathParamsAreEscaped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orgs/my org/teams", r.URL.Path)
		writeJSON(w, http.StatusOK, []resource.TeamRecord{})
	})

	teams, err := c.Clients().Teams.ListForOrg(context.Background(), "my org")
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   map[string]string{"message": "Not Found"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, resource.ErrNotFound)
			},
		},
		{
			name:   "unprocessable entity keeps message",
			status: http.StatusUnprocessableEntity,
			body:   map[string]string{"message": "Name has already been taken"},
			check: func(t *testing.T, err error) {
				var ve *resource.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "Name has already been taken", ve.Error())
			},
		},
		{
			name:   "bad request without body",
			status: http.StatusBadRequest,
			check: func(t *testing.T, err error) {
				var ve *resource.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "Bad Request", ve.Message)
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]string{"error": "boom"},
			check: func(t *testing.T, err error) {
				var te *resource.TransportError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, http.StatusInternalServerError, te.Status)
				assert.Contains(t, te.Error(), "boom")
				assert.False(t, errors.Is(err, resource.ErrNotFound))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.Clients().Projects.ListForOrg(context.Background(), "rt")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestCreateSendsAttrs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orgs/rt/teams", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var attrs resource.TeamAttrs
		require.NoError(t, json.NewDecoder(r.Body).Decode(&attrs))
		assert.Equal(t, "developers", attrs.Name)
		assert.Equal(t, resource.PermissionWrite, attrs.Permission)

		writeJSON(w, http.StatusCreated, resource.TeamRecord{ID: "t-1", Name: attrs.Name, Permission: string(attrs.Permission)})
	})

	rec, err := c.Clients().Teams.CreateForOrg(context.Background(), "rt", resource.TeamAttrs{
		Name:       "developers",
		Permission: resource.PermissionWrite,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "t-1", rec.ID)
}

func TestCreateWithEmptyBodyReturnsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rec, err := c.Clients().EnvVars.CreateForProject(context.Background(), "p-1", resource.EnvVarAttrs{Name: "TOKEN"})
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAttachAndDeleteRoutes(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()
	cl := c.Clients()

	require.NoError(t, cl.Projects.AttachSharedConfig(ctx, "p-1", "c-1"))
	require.NoError(t, cl.Projects.DetachSharedConfig(ctx, "p-1", "c-1"))
	require.NoError(t, cl.Users.AttachToTeam(ctx, "t-1", "ana"))
	require.NoError(t, cl.SharedConfigs.DetachFromTeam(ctx, "t-1", "c-1"))
	require.NoError(t, cl.ConfigFiles.Delete(ctx, "f-1"))

	assert.Equal(t, []string{
		"POST /projects/p-1/shared_configs/c-1",
		"DELETE /projects/p-1/shared_configs/c-1",
		"POST /teams/t-1/users/ana",
		"DELETE /teams/t-1/shared_configs/c-1",
		"DELETE /config_files/f-1",
	}, got)
}

func TestRetriesOnlyReads(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, WithRetries(2))
	ctx := context.Background()

	_, err := c.Clients().Orgs.List(ctx)
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())

	calls.Store(0)
	_, err = c.Clients().SharedConfigs.CreateForOrg(ctx, "rt", resource.SharedConfigAttrs{Name: "tokens"})
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestServiceOverHTTP(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orgs/rt/projects":
			writeJSON(w, http.StatusOK, []resource.ProjectRecord{
				{ID: "p-1", Name: "cli"},
				{ID: "p-2", Name: "web"},
			})
		case "/orgs/nope/projects":
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		default:
			http.NotFound(w, r)
		}
	})
	svc := resource.New(c.Clients())
	ctx := context.Background()

	p, err := svc.Projects.Info(ctx, "rt/web")
	require.NoError(t, err)
	assert.Equal(t, "p-2", p.ID())
	assert.Equal(t, "rt/web", p.FullName())

	_, err = svc.Projects.Info(ctx, "nope/web")
	assert.EqualError(t, err, "Project nope/web not found")
}

func TestExtractError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"message", `{"message":"Forbidden"}`, "Forbidden"},
		{"error field", `{"error":"bad token"}`, "bad token"},
		{"field errors", `{"message":"Validation Failed","errors":[{"field":"name","message":"is taken"}]}`, "Validation Failed: name is taken"},
		{"plain text", "upstream timeout\n", "upstream timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractError([]byte(tt.body)))
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Status
	}{
		{"ok", http.StatusOK, StatusUp},
		{"unauthorized", http.StatusUnauthorized, StatusUnauthorized},
		{"forbidden", http.StatusForbidden, StatusUnauthorized},
		{"server error", http.StatusBadGateway, StatusDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/orgs", r.URL.Path)
				w.WriteHeader(tt.status)
			})
			assert.Equal(t, tt.want, c.Health(context.Background()))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c, err := New(srv.URL, "secret")
		require.NoError(t, err)
		assert.Equal(t, StatusDown, c.Health(context.Background()))
	})

	assert.Equal(t, "unauthorized", StatusUnauthorized.String())
	assert.Equal(t, "unknown", Status(42).String())
}

func TestPlainHTTPStaysQuiet(t *testing.T) {
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	stderr := os.Stderr
	os.Stderr = pw
	t.Cleanup(func() { os.Stderr = stderr })

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{{"id": "o-1", "username": "rt"}})
	}, WithLogger(logger))
	os.Stderr = stderr

	_, err = c.Clients().Orgs.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, pw.Close())
	written, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Empty(t, string(written))
	assert.NotContains(t, logs.String(), "sensitive credentials")
}

func TestRestyLoggerWritesToSlog(t *testing.T) {
	var buf bytes.Buffer
	l := restyLogger{l: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Warnf("RESTY %s", "slow response")
	l.Errorf("broken pipe after %d bytes", 3)
	l.Debugf("trace\n")

	out := buf.String()
	assert.Contains(t, out, `level=WARN msg="slow response"`)
	assert.Contains(t, out, `level=ERROR msg="broken pipe after 3 bytes"`)
	assert.Contains(t, out, "level=DEBUG msg=trace")
}
