package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/blackwell-systems/sem-cli/internal/api"
	"github.com/blackwell-systems/sem-cli/internal/config"
	"github.com/blackwell-systems/sem-cli/internal/logging"
	"github.com/blackwell-systems/sem-cli/internal/resource"
)

var errNotLoggedIn = errors.New("not logged in: run `sem login` or set SEM_API_TOKEN")

// app lazily builds the configuration, logger, API client and resource
// service shared by every command of one invocation.
type app struct {
	version string
	stdin   io.Reader

	once   sync.Once
	err    error
	cfg    *config.Config
	logger *slog.Logger
	client *api.Client
	svc    *resource.Service
}

func newApp(version string, stdin io.Reader) *app {
	return &app{version: version, stdin: stdin}
}

func (a *app) ensure() error {
	a.once.Do(func() {
		a.err = a.load()
	})
	return a.err
}

func (a *app) load() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}

	a.logger = logger
	client, err := a.newClient(cfg, cfg.APIURL, cfg.APIToken)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.client = client
	a.svc = resource.New(client.Clients(), resource.WithConcurrency(cfg.OrgConcurrency))
	logger.Debug("configuration loaded", "api_url", client.BaseURL(), "org_concurrency", cfg.OrgConcurrency)
	return nil
}

func (a *app) newClient(cfg *config.Config, baseURL, token string) (*api.Client, error) {
	return api.New(baseURL, token,
		api.WithTimeout(cfg.Timeout),
		api.WithRetries(cfg.Retries),
		api.WithUserAgent("sem/"+a.version),
		api.WithLogger(a.logger),
	)
}

func (a *app) withLogger(ctx context.Context) context.Context {
	if a.logger == nil {
		return ctx
	}
	return logging.WithLogger(ctx, a.logger)
}

// service returns the resource service, refusing to run without a token.
func (a *app) service() (*resource.Service, error) {
	if err := a.ensure(); err != nil {
		return nil, err
	}
	if a.cfg.APIToken == "" {
		return nil, errNotLoggedIn
	}
	return a.svc, nil
}

func (a *app) jsonOutput() bool {
	return a.cfg != nil && a.cfg.Output == "json"
}
