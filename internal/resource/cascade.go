package resource

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/sem-cli/internal/logging"
)

// CascadeResult records the environment variables and configuration files
// created by a cascade. When the cascade fails part-way, it holds the copies
// that were created before the failing call; they are not rolled back.
type CascadeResult struct {
	// Attached is set once a shared configuration has been associated with
	// the project, whether or not the copies that follow succeed.
	Attached bool

	EnvVars     []EnvVar
	ConfigFiles []ConfigFile

	// Totals the cascade set out to create.
	EnvVarsTotal     int
	ConfigFilesTotal int
}

// Complete reports whether every planned copy was created.
func (r CascadeResult) Complete() bool {
	return len(r.EnvVars) == r.EnvVarsTotal && len(r.ConfigFiles) == r.ConfigFilesTotal
}

// Created is the number of copies that exist.
func (r CascadeResult) Created() int {
	return len(r.EnvVars) + len(r.ConfigFiles)
}

// Planned is the number of copies the cascade set out to create.
func (r CascadeResult) Planned() int {
	return r.EnvVarsTotal + r.ConfigFilesTotal
}

// cascade creates every environment variable, then every configuration file,
// one call at a time in the given order. It stops at the first failure and
// returns that error unmodified together with what was already created.
// target names the owner of the copies in errors and log lines.
func cascade(
	ctx context.Context,
	target string,
	envVars []EnvVarAttrs,
	files []ConfigFileAttrs,
	createEnvVar func(context.Context, EnvVarAttrs) (*EnvVarRecord, error),
	createFile func(context.Context, ConfigFileAttrs) (*ConfigFileRecord, error),
) (CascadeResult, error) {
	log := logging.FromContext(ctx).With("target", target)
	result := CascadeResult{EnvVarsTotal: len(envVars), ConfigFilesTotal: len(files)}

	for _, attrs := range envVars {
		rec, err := createEnvVar(ctx, attrs)
		if err == nil && rec == nil {
			err = &NotCreatedError{Kind: KindEnvVar, Path: fmt.Sprintf("%s:%s", target, attrs.Name), Attrs: attrs}
		}
		if err != nil {
			log.Warn("cascade stopped", "kind", KindEnvVar, "name", attrs.Name,
				"created", result.Created(), "planned", result.Planned(), "error", err)
			return result, err
		}
		log.Debug("copied", "kind", KindEnvVar, "name", attrs.Name, "id", rec.ID)
		result.EnvVars = append(result.EnvVars, EnvVar{rec: *rec})
	}

	for _, attrs := range files {
		rec, err := createFile(ctx, attrs)
		if err == nil && rec == nil {
			err = &NotCreatedError{Kind: KindConfigFile, Path: fmt.Sprintf("%s:%s", target, attrs.Path), Attrs: attrs}
		}
		if err != nil {
			log.Warn("cascade stopped", "kind", KindConfigFile, "path", attrs.Path,
				"created", result.Created(), "planned", result.Planned(), "error", err)
			return result, err
		}
		log.Debug("copied", "kind", KindConfigFile, "path", attrs.Path, "id", rec.ID)
		result.ConfigFiles = append(result.ConfigFiles, ConfigFile{rec: *rec})
	}

	return result, nil
}
