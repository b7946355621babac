// Package config provides the configuration loader for riagen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration schema version this loader understands.
const SupportedVersion = "1"

// DefaultGeneratedCodeDir is the folder below the client project receiving generated code.
const DefaultGeneratedCodeDir = "Generated_Code"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a loader reporting non-fatal problems to log.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the configuration at path. A directory is searched for riagen.yaml.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", abs)
	}

	var file Riagenfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", abs)
	}

	if file.Version != "" && file.Version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("config %s declares version %q, expected %q", abs, file.Version, SupportedVersion))
	}

	root := filepath.Dir(abs)
	cfg := &domain.Config{Version: file.Version, Root: root}
	if len(file.Projects) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoProjectsConfigured, "projects list is empty"), "path", abs)
	}

	seen := make(map[domain.ProjectKey]bool)
	for i, dto := range file.Projects {
		p, err := project(root, dto)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "path", abs), "project_index", i)
		}
		key := domain.NewProjectKey(p.ClientProject)
		if seen[key] {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "client project listed twice"), "client_project", p.ClientProject)
		}
		seen[key] = true
		cfg.Projects = append(cfg.Projects, p)
	}
	return cfg, nil
}

func project(root string, dto ProjectDTO) (domain.ProjectConfig, error) {
	if dto.ClientProject == "" {
		return domain.ProjectConfig{}, zerr.Wrap(domain.ErrConfigInvalid, "clientProject is required")
	}
	if len(dto.ServerAssemblies) == 0 {
		return domain.ProjectConfig{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "at least one server assembly is required"),
			"client_project", dto.ClientProject)
	}

	language := dto.Language
	if language == "" {
		language = string(domain.LanguageCSharp)
	}
	if _, err := domain.ParseLanguage(language); err != nil {
		return domain.ProjectConfig{}, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "language", dto.Language)
	}
	platform, err := domain.ParseTargetPlatform(dto.TargetPlatform)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	client := resolve(root, dto.ClientProject)
	p := domain.ProjectConfig{
		ClientProject:     client,
		Language:          language,
		RootNamespace:     dto.RootNamespace,
		UseFullTypeNames:  dto.UseFullTypeNames,
		TargetPlatform:    platform,
		ServerAssemblies:  resolveAll(root, dto.ServerAssemblies),
		ClientReferences:  resolveAll(root, dto.ClientReferences),
		SystemSearchPaths: resolveAll(root, dto.SystemSearchPaths),
		OutputDir:         filepath.Join(filepath.Dir(client), "obj"),
		GeneratedCodeDir:  DefaultGeneratedCodeDir,
	}
	if dto.OutputDir != "" {
		p.OutputDir = resolve(root, dto.OutputDir)
	}
	if dto.GeneratedCodeDir != "" {
		p.GeneratedCodeDir = filepath.Clean(filepath.FromSlash(dto.GeneratedCodeDir))
	}
	return p, nil
}

func resolve(root, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// resolveAll makes every path absolute, dropping duplicates while keeping the first occurrence.
func resolveAll(root string, paths []string) []string {
	var out []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs := resolve(root, p)
		if !slices.Contains(out, abs) {
			out = append(out, abs)
		}
	}
	return out
}
