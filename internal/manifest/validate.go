package manifest

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var envVarName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationResult collects every problem found in a bundle.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func (r *ValidationResult) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Err folds the result into a single error, or nil when the bundle is valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("invalid bundle:\n  - %s", strings.Join(r.Errors, "\n  - "))
}

// Validate checks names, paths and duplicates without touching the disk.
func Validate(b *Bundle) *ValidationResult {
	result := &ValidationResult{Valid: true}

	names := make(map[string]bool, len(b.EnvVars))
	for i, e := range b.EnvVars {
		if err := validateEnvVarName(e.Name); err != nil {
			result.addError("env_vars[%d]: %v", i, err)
			continue
		}
		if names[e.Name] {
			result.addError("env_vars[%d]: duplicate name %s", i, e.Name)
		}
		names[e.Name] = true
	}

	paths := make(map[string]bool, len(b.Files))
	for i, f := range b.Files {
		if err := validateFilePath(f.Path); err != nil {
			result.addError("files[%d]: %v", i, err)
			continue
		}
		if f.Content != "" && f.Source != "" {
			result.addError("files[%d]: %s sets both content and source", i, f.Path)
		}
		if paths[f.Path] {
			result.addError("files[%d]: duplicate path %s", i, f.Path)
		}
		paths[f.Path] = true
	}

	return result
}

func validateEnvVarName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if !envVarName.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match %s", name, envVarName)
	}
	return nil
}

func validateFilePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path is required")
	}
	if strings.HasSuffix(p, "/") {
		return fmt.Errorf("invalid path %q: must name a file", p)
	}
	for _, part := range strings.Split(path.Clean(p), "/") {
		if part == ".." {
			return fmt.Errorf("invalid path %q: must not leave the working directory", p)
		}
	}
	return nil
}
