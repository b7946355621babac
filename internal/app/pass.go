package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/riagen/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/metadata" //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/project"  //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/engine/catalog"
	"go.trai.ch/riagen/internal/engine/shared"
	"go.trai.ch/zerr"
)

// Breadcrumb files written to the project output directory, prefixed with the client project name.
const (
	clientFilesBreadcrumb = ".RiaClientFiles.txt"
	serverFilesBreadcrumb = ".RiaServerFiles.txt"
	linksBreadcrumb       = ".RiaLinks.txt"
)

// pass generates the code of one client project. Everything it owns is scoped to the pass and
// used from a single goroutine.
type pass struct {
	app     *App
	project domain.ProjectConfig
	log     *logger.PassLog
	reader  *project.Reader

	clientFiles *project.SourceFileCache
	serverFiles *project.SourceFileCache
	links       *project.LinkedServerProjectCache
}

func (a *App) newPass(p domain.ProjectConfig) *pass {
	log := logger.NewPassLog(a.logger)
	reader := project.NewReader(a.resolver, log)
	ps := &pass{app: a, project: p, log: log, reader: reader}
	ps.clientFiles = project.NewSourceFileCache(p.ClientProject, ps.breadcrumb(clientFilesBreadcrumb), log, reader)
	ps.links = project.NewLinkedServerProjectCache(p.ClientProject, ps.breadcrumb(linksBreadcrumb), log, reader)
	return ps
}

func (ps *pass) breadcrumb(suffix string) string {
	name := strings.TrimSuffix(filepath.Base(ps.project.ClientProject), filepath.Ext(ps.project.ClientProject))
	return filepath.Join(ps.project.OutputDir, name+suffix)
}

func (ps *pass) run(ctx context.Context, force bool) PassResult {
	res := PassResult{Project: ps.project.ClientProject}
	res.OutputFile, res.Status, res.Err = ps.generate(ctx, force, &res.Inputs)
	res.Diagnostics = ps.log.Diagnostics()
	if res.Err != nil {
		res.Status = StatusFailed
		res.Err = zerr.With(res.Err, "project", ps.project.ClientProject)
	}
	return res
}

//nolint:cyclop // linear pipeline
func (ps *pass) generate(ctx context.Context, force bool, inputs *[]string) (string, Status, error) {
	if err := ctx.Err(); err != nil {
		return "", StatusFailed, err
	}

	ps.loadCaches()
	out, err := ps.outputFile()
	if err != nil {
		ps.log.Error(err)
		return "", StatusFailed, err
	}

	*inputs = ps.inputs()
	hash, err := ps.app.hasher.ComputeInputHash(&ps.project, *inputs)
	if err != nil {
		ps.log.Warn(fmt.Sprintf("failed to hash generation inputs: %v", err))
		hash = ""
	}
	if !force && hash != "" && ps.upToDate(hash, out) {
		return out, StatusUpToDate, nil
	}

	table, err := ps.serverTypes()
	if err != nil {
		ps.log.Error(err)
		return out, StatusFailed, err
	}

	share := shared.NewCodeService(
		table,
		shared.NewAssemblies(ps.project.ClientReferences, ps.project.SystemSearchPaths, ps.app.metadata, ps.log),
		shared.NewSourceFiles(ps.sharedSourceFiles()),
	)
	descriptions := catalog.New(catalog.Discover(table), table, ps.log).DomainServiceDescriptions()

	if err := ctx.Err(); err != nil {
		return out, StatusFailed, err
	}
	code, err := ps.app.generator.GenerateCode(ps.log, ps.project.Options(), descriptions, table, share)
	if err != nil {
		return out, StatusFailed, err
	}
	if code == "" || ps.log.HasLoggedErrors() {
		return out, StatusFailed, zerr.With(zerr.Wrap(domain.ErrGenerationFailed, "generation pass logged errors"),
			"errors", len(ps.log.Messages(domain.SeverityError)))
	}

	written, err := ps.app.writer.WriteIfChanged(out, code)
	if err != nil {
		ps.log.Error(err)
		return out, StatusFailed, err
	}

	ps.saveCaches()
	record := domain.GenerationRecord{
		Project:    ps.project.ClientProject,
		InputHash:  hash,
		OutputHash: ps.app.hasher.ComputeContentHash(code),
		OutputFile: out,
		Timestamp:  time.Now(),
	}
	if err := ps.app.store.Put(record); err != nil {
		ps.log.Warn(err.Error())
	}

	if written {
		return out, StatusWritten, nil
	}
	return out, StatusUnchanged, nil
}

// loadCaches trusts current breadcrumb files. Stale or missing ones fall back to the project files.
func (ps *pass) loadCaches() {
	ps.links.LoadCacheFromFile()
	ps.clientFiles.LoadCacheFromFile()
	if server := ps.links.RootLinkedServerProject(); server != "" {
		ps.serverFiles = project.NewSourceFileCache(server, ps.breadcrumb(serverFilesBreadcrumb), ps.log, ps.reader)
		ps.serverFiles.LoadCacheFromFile()
	}
}

func (ps *pass) saveCaches() {
	for _, save := range []func() error{ps.clientFiles.SaveCacheToFile, ps.links.SaveCacheToFile} {
		if err := save(); err != nil {
			ps.log.Warn(err.Error())
		}
	}
	if ps.serverFiles != nil {
		if err := ps.serverFiles.SaveCacheToFile(); err != nil {
			ps.log.Warn(err.Error())
		}
	}
}

func (ps *pass) clearCaches() error {
	server := project.NewSourceFileCache("", ps.breadcrumb(serverFilesBreadcrumb), ps.log, ps.reader)
	return errors.Join(ps.clientFiles.Clear(), ps.links.Clear(), server.Clear())
}

// outputFile returns <client dir>/<generated code dir>/<server name>.g<ext>. The server name is
// the linked server project, or the first server assembly when no project is linked.
func (ps *pass) outputFile() (string, error) {
	emitter, err := ps.app.generator.Emitter(ps.project.Language)
	if err != nil {
		return "", err
	}

	var name string
	if server := ps.links.RootLinkedServerProject(); server != "" {
		name = strings.TrimSuffix(filepath.Base(server), filepath.Ext(server))
	} else if len(ps.project.ServerAssemblies) > 0 {
		name = strings.TrimSuffix(filepath.Base(ps.project.ServerAssemblies[0]), metadata.FileSuffix)
	}
	if name == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "cannot name the generated file"),
			"client_project", ps.project.ClientProject)
	}

	dir := filepath.Join(filepath.Dir(ps.project.ClientProject), ps.project.GeneratedCodeDir)
	return filepath.Join(dir, name+".g"+emitter.FileExtension()), nil
}

// inputs lists every file whose content decides the generated code.
func (ps *pass) inputs() []string {
	files := make([]string, 0, len(ps.project.ServerAssemblies)+len(ps.project.ClientReferences))
	files = append(files, ps.project.ServerAssemblies...)
	files = append(files, ps.project.ClientReferences...)
	files = append(files, ps.clientFiles.AllKnownProjects()...)
	if ps.serverFiles != nil {
		files = append(files, ps.serverFiles.AllKnownProjects()...)
	}
	return files
}

func (ps *pass) upToDate(hash, out string) bool {
	record, err := ps.app.store.Get(ps.project.ClientProject)
	if err != nil {
		ps.log.Warn(err.Error())
		return false
	}
	if record == nil || record.InputHash != hash || !strings.EqualFold(record.OutputFile, out) {
		return false
	}
	exists, err := ps.app.writer.Exists(out)
	return err == nil && exists
}

// serverTypes reads every server assembly. Failures here are fatal for the pass.
func (ps *pass) serverTypes() (*domain.TypeTable, error) {
	asms, err := ps.app.metadata.ReadAssemblies(ps.project.ServerAssemblies)
	if err != nil {
		return nil, err
	}
	return domain.NewTypeTable(asms...)
}

// sharedSourceFiles returns the files the client compiles that the linked server also compiles.
func (ps *pass) sharedSourceFiles() []string {
	if ps.serverFiles == nil {
		return nil
	}
	collect := func(c *project.SourceFileCache) []string {
		var files []string
		for _, p := range c.AllKnownProjects() {
			files = append(files, c.SourceFiles(p)...)
		}
		return files
	}
	files := shared.Intersect(collect(ps.clientFiles), collect(ps.serverFiles))
	if len(files) > 0 {
		ps.log.Info(fmt.Sprintf("%d source file(s) shared with %s", len(files), ps.serverFiles.RootProject()))
	}
	return files
}
