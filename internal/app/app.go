// Package app implements the application layer for riagen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/riagen/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/metadata" //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/riagen/internal/engine/codegen"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	metadata     ports.MetadataReader
	resolver     ports.InputResolver
	hasher       ports.Hasher
	writer       ports.OutputWriter
	store        ports.GenerationStore
	watcher      ports.Watcher
	generator    *codegen.Dispatcher
	parallelism  int
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	metadata ports.MetadataReader,
	resolver ports.InputResolver,
	hasher ports.Hasher,
	writer ports.OutputWriter,
	store ports.GenerationStore,
	watcher ports.Watcher,
	generator *codegen.Dispatcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		metadata:     metadata,
		resolver:     resolver,
		hasher:       hasher,
		writer:       writer,
		store:        store,
		watcher:      watcher,
		generator:    generator,
		parallelism:  runtime.NumCPU(),
	}
}

// WithParallelism bounds the number of client projects generated at once.
func (a *App) WithParallelism(n int) *App {
	if n > 0 {
		a.parallelism = n
	}
	return a
}

// GenerateOptions configuration for the Generate and Watch methods.
// Non-zero overrides replace the value of every configured project.
type GenerateOptions struct {
	ConfigPath    string
	Language      string
	RootNamespace string
	FullTypeNames bool
	Force         bool
}

// Status is the outcome of one generation pass.
type Status string

const (
	// StatusWritten means the generated file was created or replaced.
	StatusWritten Status = "written"
	// StatusUnchanged means generation ran and produced the code already on disk.
	StatusUnchanged Status = "unchanged"
	// StatusUpToDate means generation was skipped because no input changed.
	StatusUpToDate Status = "up-to-date"
	// StatusFailed means the pass logged errors and wrote nothing.
	StatusFailed Status = "failed"
)

// PassResult describes the generation pass of one client project.
type PassResult struct {
	Project     string
	OutputFile  string
	Status      Status
	Inputs      []string
	Diagnostics []domain.Diagnostic
	Err         error
}

// Generate runs one independent pass per configured client project. Passes never share
// pass-scoped state, so they run concurrently. The returned error joins every failed pass.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) ([]PassResult, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	results := make([]PassResult, len(cfg.Projects))
	var g errgroup.Group
	g.SetLimit(a.parallelism)
	for i, p := range cfg.Projects {
		g.Go(func() error {
			results[i] = a.newPass(p).run(ctx, opts.Force)
			return results[i].Err
		})
	}
	if g.Wait() == nil {
		for _, r := range results {
			a.report(r)
		}
		return results, nil
	}

	var errs []error
	for _, r := range results {
		a.report(r)
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}

func (a *App) report(r PassResult) {
	switch r.Status {
	case StatusWritten:
		a.logger.Info(fmt.Sprintf("generated %s", r.OutputFile))
	case StatusUnchanged:
		a.logger.Info(fmt.Sprintf("%s is unchanged", r.OutputFile))
	case StatusUpToDate:
		a.logger.Info(fmt.Sprintf("%s is up to date", r.OutputFile))
	}
}

// Watch generates once, then regenerates whenever an input of any project changes.
// It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, opts GenerateOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	results, err := a.Generate(ctx, opts)
	if err != nil {
		a.logger.Error(err)
	}

	paths := watchedPaths(a.configFile(opts.ConfigPath), cfg, results)
	a.logger.Info(fmt.Sprintf("watching %d files for changes", len(paths)))

	return a.watcher.Watch(ctx, paths, func(changed []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed, regenerating", len(changed)))
		if _, err := a.Generate(ctx, opts); err != nil {
			a.logger.Error(err)
		}
	})
}

func watchedPaths(configFile string, cfg *domain.Config, results []PassResult) []string {
	seen := make(map[domain.ProjectKey]bool)
	var paths []string
	add := func(list ...string) {
		for _, p := range list {
			if p == "" {
				continue
			}
			if key := domain.NewProjectKey(p); !seen[key] {
				seen[key] = true
				paths = append(paths, p)
			}
		}
	}
	add(configFile)
	for _, p := range cfg.Projects {
		add(p.ClientProject)
		add(p.ServerAssemblies...)
		add(p.ClientReferences...)
	}
	for _, r := range results {
		add(r.Inputs...)
	}
	return paths
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
}

// Clean removes the generated files, breadcrumb files and generation state of every project.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	cfg, err := a.configLoader.Load(a.configPath(opts.ConfigPath))
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error
	remove := func(path string) {
		if err := os.Remove(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove generated file"), "path", path))
			}
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", path))
	}

	for _, p := range cfg.Projects {
		if err := ctx.Err(); err != nil {
			return err
		}
		ps := a.newPass(p)
		if out, err := ps.outputFile(); err == nil {
			remove(out)
		}

		record, err := a.store.Get(p.ClientProject)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if record != nil && record.OutputFile != "" {
			remove(record.OutputFile)
		}
		if err := ps.clearCaches(); err != nil {
			errs = errors.Join(errs, err)
		}
		if err := a.store.Delete(p.ClientProject); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// Inspect reads the metadata files at paths and writes them to w as they are seen by a pass,
// with source file paths resolved.
func (a *App) Inspect(w io.Writer, paths []string) error {
	asms, err := a.metadata.ReadAssemblies(paths)
	if err != nil {
		return err
	}
	return metadata.Encode(w, asms...)
}

func (a *App) loadConfig(opts GenerateOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(a.configPath(opts.ConfigPath))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Language != "" {
		if _, err := domain.ParseLanguage(opts.Language); err != nil {
			return nil, zerr.Wrap(domain.ErrConfigInvalid, err.Error())
		}
	}
	for i := range cfg.Projects {
		p := &cfg.Projects[i]
		if opts.Language != "" {
			p.Language = opts.Language
		}
		if opts.RootNamespace != "" {
			p.RootNamespace = opts.RootNamespace
		}
		if opts.FullTypeNames {
			p.UseFullTypeNames = true
		}
	}
	return cfg, nil
}

func (a *App) configPath(path string) string {
	if path == "" {
		return "."
	}
	return path
}

func (a *App) configFile(path string) string {
	path = a.configPath(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, config.DefaultFilename)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
