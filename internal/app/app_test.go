package app_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/config"
	"go.trai.ch/riagen/internal/adapters/emit/csharp"
	"go.trai.ch/riagen/internal/adapters/emit/vb"
	"go.trai.ch/riagen/internal/adapters/fs"
	"go.trai.ch/riagen/internal/adapters/logger"
	"go.trai.ch/riagen/internal/adapters/metadata"
	"go.trai.ch/riagen/internal/adapters/state"
	"go.trai.ch/riagen/internal/app"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/riagen/internal/core/ports/mocks"
	"go.trai.ch/riagen/internal/engine/codegen"
	"go.uber.org/mock/gomock"
)

func newApp(t *testing.T, w ports.Watcher) *app.App {
	t.Helper()
	return newAppWithReader(t, w, metadata.NewReader())
}

func newAppWithReader(t *testing.T, w ports.Watcher, reader ports.MetadataReader) *app.App {
	t.Helper()
	log := logger.New()
	log.(*logger.Logger).SetOutput(io.Discard)

	store, err := state.NewStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	return app.New(
		config.NewLoader(log),
		log,
		reader,
		fs.NewResolver(fs.NewWalker()),
		fs.NewHasher(),
		fs.NewWriter(),
		store,
		w,
		codegen.NewDispatcher(nil, csharp.New(), vb.New()),
	).WithParallelism(2)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func writeAssembly(t *testing.T, path string, asm *domain.Assembly) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, metadata.Encode(&buf, asm))
	writeFile(t, path, buf.String())
}

func serverAssembly(sourceFiles ...string) *domain.Assembly {
	top := &domain.Type{
		Assembly: "Server", Namespace: "Sample", Name: "Top", Kind: domain.KindClass,
		SourceFiles: sourceFiles,
		Properties: []*domain.Property{
			{Name: "ID", Type: "System.Int32", Attributes: domain.Attributes{{Name: domain.AttrKey}}},
			{Name: "Label", Type: "System.String"},
		},
	}
	svc := &domain.Type{
		Assembly: "Server", Namespace: "Sample", Name: "TopService", Kind: domain.KindClass,
		BaseType:   domain.DomainServiceBaseType,
		Attributes: domain.Attributes{{Name: domain.AttrEnableClientAccess}},
		Methods:    []*domain.Method{{Name: "GetTops", ReturnType: "Sample.Top", Collection: true}},
	}
	return &domain.Assembly{Name: "Server", Types: []*domain.Type{top, svc}}
}

// workspace lays out a client project and a server assembly below dir and returns the config path.
func workspace(t *testing.T, dir string) string {
	t.Helper()
	writeAssembly(t, filepath.Join(dir, "Server", "bin", "Server.meta.yaml"), serverAssembly())
	writeFile(t, filepath.Join(dir, "Client", "Client.csproj"), `<Project><ItemGroup /></Project>`)
	writeFile(t, filepath.Join(dir, config.DefaultFilename), `
version: "1"
projects:
  - clientProject: Client/Client.csproj
    rootNamespace: Sample
    serverAssemblies: [Server/bin/Server.meta.yaml]
`)
	return dir
}

func TestGenerate_WritesThenSkips(t *testing.T) {
	dir := workspace(t, t.TempDir())
	a := newApp(t, nil)
	ctx := context.Background()
	out := filepath.Join(dir, "Client", "Generated_Code", "Server.g.cs")

	results, err := a.Generate(ctx, app.GenerateOptions{ConfigPath: dir})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, app.StatusWritten, results[0].Status)
	assert.Equal(t, out, results[0].OutputFile)

	code, err := os.ReadFile(out) //nolint:gosec // test fixture
	require.NoError(t, err)
	assert.Contains(t, string(code), "public sealed partial class Top : Entity")
	assert.Contains(t, string(code), "public sealed partial class TopContext : DomainContext")

	results, err = a.Generate(ctx, app.GenerateOptions{ConfigPath: dir})
	require.NoError(t, err)
	assert.Equal(t, app.StatusUpToDate, results[0].Status)

	results, err = a.Generate(ctx, app.GenerateOptions{ConfigPath: dir, Force: true})
	require.NoError(t, err)
	assert.Equal(t, app.StatusUnchanged, results[0].Status)

	asm := serverAssembly()
	asm.Types[0].Properties = append(asm.Types[0].Properties, &domain.Property{Name: "Extra", Type: "System.String"})
	writeAssembly(t, filepath.Join(dir, "Server", "bin", "Server.meta.yaml"), asm)

	results, err = a.Generate(ctx, app.GenerateOptions{ConfigPath: dir})
	require.NoError(t, err)
	assert.Equal(t, app.StatusWritten, results[0].Status)
	code, err = os.ReadFile(out) //nolint:gosec // test fixture
	require.NoError(t, err)
	assert.Contains(t, string(code), "Extra")
}

func TestGenerate_Overrides(t *testing.T) {
	dir := workspace(t, t.TempDir())
	a := newApp(t, nil)

	results, err := a.Generate(context.Background(), app.GenerateOptions{ConfigPath: dir, Language: "VB"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Client", "Generated_Code", "Server.g.vb"), results[0].OutputFile)

	_, err = a.Generate(context.Background(), app.GenerateOptions{ConfigPath: dir, Language: "F#"})
	require.ErrorIs(t, err, domain.ErrConfigInvalid)
}

func TestGenerate_FailedPassDoesNotStopOthers(t *testing.T) {
	dir := workspace(t, t.TempDir())
	writeFile(t, filepath.Join(dir, "Other", "Other.csproj"), `<Project />`)
	writeFile(t, filepath.Join(dir, config.DefaultFilename), `
projects:
  - clientProject: Client/Client.csproj
    serverAssemblies: [Server/bin/Server.meta.yaml]
  - clientProject: Other/Other.csproj
    serverAssemblies: [Server/bin/Missing.meta.yaml]
`)
	a := newApp(t, nil)

	results, err := a.Generate(context.Background(), app.GenerateOptions{ConfigPath: dir})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAssemblyLoadFailed)
	require.Len(t, results, 2)
	assert.Equal(t, app.StatusWritten, results[0].Status)
	assert.Equal(t, app.StatusFailed, results[1].Status)
	assert.NotEmpty(t, results[1].Diagnostics)
	assert.NoFileExists(t, filepath.Join(dir, "Other", "Generated_Code", "Missing.g.cs"))
}

func TestGenerate_ReadsServerAssembliesInConfigOrder(t *testing.T) {
	dir := workspace(t, t.TempDir())
	writeFile(t, filepath.Join(dir, "Server", "bin", "Extra.meta.yaml"), "name: Extra\n")
	writeFile(t, filepath.Join(dir, config.DefaultFilename), `
projects:
  - clientProject: Client/Client.csproj
    serverAssemblies: [Server/bin/Server.meta.yaml, Server/bin/Extra.meta.yaml]
`)
	paths := []string{
		filepath.Join(dir, "Server", "bin", "Server.meta.yaml"),
		filepath.Join(dir, "Server", "bin", "Extra.meta.yaml"),
	}
	extra := &domain.Assembly{Name: "Extra", Types: []*domain.Type{
		{Assembly: "Extra", Namespace: "Sample", Name: "Unused", Kind: domain.KindClass},
	}}

	t.Run("success", func(t *testing.T) {
		reader := mocks.NewMockMetadataReader(gomock.NewController(t))
		reader.EXPECT().ReadAssemblies(paths).Return([]*domain.Assembly{serverAssembly(), extra}, nil).Times(1)

		results, err := newAppWithReader(t, nil, reader).Generate(context.Background(), app.GenerateOptions{ConfigPath: dir, Force: true})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, filepath.Join(dir, "Client", "Generated_Code", "Server.g.cs"), results[0].OutputFile)
		assert.Contains(t, []app.Status{app.StatusWritten, app.StatusUnchanged}, results[0].Status)
	})

	t.Run("failure", func(t *testing.T) {
		reader := mocks.NewMockMetadataReader(gomock.NewController(t))
		reader.EXPECT().ReadAssemblies(paths).Return(nil, domain.ErrAssemblyLoadFailed).Times(1)

		results, err := newAppWithReader(t, nil, reader).Generate(context.Background(), app.GenerateOptions{ConfigPath: dir, Force: true})
		require.ErrorIs(t, err, domain.ErrAssemblyLoadFailed)
		require.Len(t, results, 1)
		assert.Equal(t, app.StatusFailed, results[0].Status)
	})
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin", "Server.meta.yaml")
	writeAssembly(t, path, serverAssembly("../Top.cs"))
	a := newApp(t, nil)

	var out bytes.Buffer
	require.NoError(t, a.Inspect(&out, []string{path}))
	assert.Contains(t, out.String(), "name: Server")
	assert.Contains(t, out.String(), "name: TopService")
	assert.Contains(t, out.String(), filepath.Join(dir, "Top.cs"), "source paths are resolved against the metadata file")

	err := a.Inspect(&out, []string{filepath.Join(dir, "Missing.meta.yaml")})
	assert.ErrorIs(t, err, domain.ErrAssemblyLoadFailed)
}

func TestGenerate_SharedSourceFiles(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "Server", "Top.shared.cs")
	writeFile(t, shared, "// shared")
	writeAssembly(t, filepath.Join(dir, "Server", "bin", "Server.meta.yaml"), serverAssembly(shared))
	writeFile(t, filepath.Join(dir, "Server", "Server.csproj"), `<Project>
  <ItemGroup><Compile Include="Top.shared.cs" /></ItemGroup>
</Project>`)
	writeFile(t, filepath.Join(dir, "Client", "Client.csproj"), `<Project>
  <PropertyGroup><LinkedOpenRiaServerProject>..\Server\Server.csproj</LinkedOpenRiaServerProject></PropertyGroup>
  <ItemGroup><Compile Include="..\Server\Top.shared.cs" /></ItemGroup>
</Project>`)
	writeFile(t, filepath.Join(dir, config.DefaultFilename), `
projects:
  - clientProject: Client/Client.csproj
    serverAssemblies: [Server/bin/Server.meta.yaml]
`)
	a := newApp(t, nil)

	results, err := a.Generate(context.Background(), app.GenerateOptions{ConfigPath: dir})
	require.NoError(t, err)

	code, err := os.ReadFile(results[0].OutputFile)
	require.NoError(t, err)
	assert.NotContains(t, string(code), "partial class Top :")
	assert.Contains(t, string(code), "partial class TopContext")
	assert.Contains(t, results[0].Inputs, filepath.Join(dir, "Server", "Server.csproj"))

	for _, name := range []string{"Client.RiaClientFiles.txt", "Client.RiaServerFiles.txt", "Client.RiaLinks.txt"} {
		assert.FileExists(t, filepath.Join(dir, "Client", "obj", name))
	}
}

func TestClean(t *testing.T) {
	dir := workspace(t, t.TempDir())
	a := newApp(t, nil)
	ctx := context.Background()

	results, err := a.Generate(ctx, app.GenerateOptions{ConfigPath: dir})
	require.NoError(t, err)
	require.FileExists(t, results[0].OutputFile)

	require.NoError(t, a.Clean(ctx, app.CleanOptions{ConfigPath: dir}))
	assert.NoFileExists(t, results[0].OutputFile)
	assert.NoFileExists(t, filepath.Join(dir, "Client", "obj", "Client.RiaLinks.txt"))

	results, err = a.Generate(ctx, app.GenerateOptions{ConfigPath: dir})
	require.NoError(t, err)
	assert.Equal(t, app.StatusWritten, results[0].Status, "state was removed")
}

func TestWatch_RegeneratesOnChange(t *testing.T) {
	dir := workspace(t, t.TempDir())
	meta := filepath.Join(dir, "Server", "bin", "Server.meta.yaml")
	out := filepath.Join(dir, "Client", "Generated_Code", "Server.g.cs")

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, paths []string, onChange func([]string)) error {
			assert.Contains(t, paths, meta)
			assert.Contains(t, paths, filepath.Join(dir, config.DefaultFilename))
			require.FileExists(t, out)

			require.NoError(t, os.Remove(out))
			onChange([]string{meta})
			return nil
		})

	require.NoError(t, newApp(t, w).Watch(context.Background(), app.GenerateOptions{ConfigPath: dir}))
	assert.FileExists(t, out)
}
