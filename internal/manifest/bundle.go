// Package manifest reads and writes shared configuration bundles: local files
// listing the environment variables and configuration files a shared
// configuration should hold.
//
// Bundles may be written as YAML (.yaml, .yml), JSON (.json), TOML (.toml) or
// HCL (.hcl). Unknown extensions are read and written as YAML.
//
// A YAML bundle looks like:
//
//	env_vars:
//	  - name: AWS_ACCESS_KEY_ID
//	    content: AKIA...
//	    encrypted: true
//	files:
//	  - path: .aws/config
//	    source: ./aws-config
//
// and the same bundle in HCL:
//
//	env_var "AWS_ACCESS_KEY_ID" {
//	  content   = "AKIA..."
//	  encrypted = true
//	}
//	file ".aws/config" {
//	  source = "./aws-config"
//	}
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/sem-cli/internal/resource"
)

// Bundle is the content of a shared configuration.
type Bundle struct {
	EnvVars []EnvVar `yaml:"env_vars,omitempty" json:"env_vars,omitempty" toml:"env_vars,omitempty" hcl:"env_var,block"`
	Files   []File   `yaml:"files,omitempty" json:"files,omitempty" toml:"files,omitempty" hcl:"file,block"`
}

// EnvVar is an environment variable entry.
type EnvVar struct {
	Name      string `yaml:"name" json:"name" toml:"name" hcl:"name,label"`
	Content   string `yaml:"content" json:"content" toml:"content" hcl:"content,optional"`
	Encrypted bool   `yaml:"encrypted,omitempty" json:"encrypted,omitempty" toml:"encrypted,omitempty" hcl:"encrypted,optional"`
}

// File is a configuration file entry. Content is taken verbatim; Source
// names a local file, relative to the bundle, to read the content from.
type File struct {
	Path      string `yaml:"path" json:"path" toml:"path" hcl:"path,label"`
	Content   string `yaml:"content,omitempty" json:"content,omitempty" toml:"content,omitempty" hcl:"content,optional"`
	Source    string `yaml:"source,omitempty" json:"source,omitempty" toml:"source,omitempty" hcl:"source,optional"`
	Encrypted bool   `yaml:"encrypted,omitempty" json:"encrypted,omitempty" toml:"encrypted,omitempty" hcl:"encrypted,optional"`
}

// Format identifies a bundle encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatOf picks the encoding from a file extension, defaulting to YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".hcl":
		return FormatHCL
	default:
		return FormatYAML
	}
}

// Load loads and parses a bundle file (format determined by file extension)
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}

	var b Bundle
	switch format := FormatOf(path); format {
	case FormatJSON:
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse bundle JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse bundle TOML: %w", err)
		}
	case FormatHCL:
		if err := hclsimple.Decode(filepath.Base(path), data, nil, &b); err != nil {
			return nil, fmt.Errorf("failed to parse bundle HCL: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse bundle YAML: %w", err)
		}
	}

	return &b, nil
}

// Marshal encodes the bundle in the given format.
func Marshal(b *Bundle, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bundle JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		data, err := toml.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bundle TOML: %w", err)
		}
		return data, nil
	case FormatHCL:
		f := hclwrite.NewEmptyFile()
		gohcl.EncodeIntoBody(b, f.Body())
		return f.Bytes(), nil
	default:
		data, err := yaml.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bundle YAML: %w", err)
		}
		return data, nil
	}
}

// Save saves the bundle to file (format determined by file extension). The
// file is private to the user since it may hold secrets.
func Save(b *Bundle, path string) error {
	data, err := Marshal(b, FormatOf(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write bundle file: %w", err)
	}
	return nil
}

// FromSharedConfig builds a bundle from the content of a shared
// configuration.
func FromSharedConfig(envVars []resource.EnvVar, files []resource.ConfigFile) *Bundle {
	b := &Bundle{}
	for _, e := range envVars {
		b.EnvVars = append(b.EnvVars, EnvVar{Name: e.Name(), Content: e.Content(), Encrypted: e.Encrypted()})
	}
	for _, f := range files {
		b.Files = append(b.Files, File{Path: f.Path(), Content: f.Content(), Encrypted: f.Encrypted()})
	}
	return b
}

// Attrs converts the bundle into create attributes. File sources are read
// relative to baseDir.
func (b *Bundle) Attrs(baseDir string) ([]resource.EnvVarAttrs, []resource.ConfigFileAttrs, error) {
	envVars := make([]resource.EnvVarAttrs, 0, len(b.EnvVars))
	for _, e := range b.EnvVars {
		envVars = append(envVars, resource.EnvVarAttrs{Name: e.Name, Content: e.Content, Encrypted: e.Encrypted})
	}

	files := make([]resource.ConfigFileAttrs, 0, len(b.Files))
	for _, f := range b.Files {
		content := f.Content
		if f.Source != "" {
			src := f.Source
			if !filepath.IsAbs(src) {
				src = filepath.Join(baseDir, src)
			}
			data, err := os.ReadFile(src)
			if err != nil {
				return nil, nil, fmt.Errorf("file %s: read source: %w", f.Path, err)
			}
			content = string(data)
		}
		files = append(files, resource.ConfigFileAttrs{Path: f.Path, Content: content, Encrypted: f.Encrypted})
	}
	return envVars, files, nil
}
