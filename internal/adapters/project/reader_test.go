package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/fs"
	"go.trai.ch/riagen/internal/adapters/logger"
	"go.trai.ch/riagen/internal/adapters/project"
	"go.trai.ch/riagen/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const legacyClient = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <RootNamespace>Client</RootNamespace>
    <ServerDir>..\Server</ServerDir>
    <LinkedOpenRiaServerProject>$(ServerDir)\Server.csproj</LinkedOpenRiaServerProject>
  </PropertyGroup>
  <ItemGroup>
    <Compile Include="App.cs" />
    <Compile Include="$(ServerDir)\Shared\*.shared.cs">
      <Link>Shared</Link>
    </Compile>
  </ItemGroup>
  <ItemGroup>
    <ProjectReference Include="..\Lib\Lib.csproj" />
  </ItemGroup>
</Project>
`

const sdkServer = `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <Compile Remove="Old.cs" />
  </ItemGroup>
</Project>
`

func newReader() (*project.Reader, *logger.PassLog) {
	log := logger.NewPassLog(nil)
	return project.NewReader(fs.NewResolver(fs.NewWalker()), log), log
}

func TestReader_LegacyProject(t *testing.T) {
	root := t.TempDir()
	client := filepath.Join(root, "Client", "Client.csproj")
	writeFile(t, client, legacyClient)
	writeFile(t, filepath.Join(root, "Client", "App.cs"), "")
	writeFile(t, filepath.Join(root, "Server", "Shared", "Top.shared.cs"), "")

	reader, log := newReader()

	assert.Equal(t, []string{
		filepath.Join(root, "Client", "App.cs"),
		filepath.Join(root, "Server", "Shared", "Top.shared.cs"),
	}, reader.SourceFiles(client))
	assert.Equal(t, []string{filepath.Join(root, "Lib", "Lib.csproj")}, reader.ProjectReferences(client))
	assert.Equal(t, `..\Server\Server.csproj`, reader.PropertyValue(client, "linkedopenriaserverproject"))
	assert.Empty(t, log.Diagnostics())
}

func TestReader_SdkProject(t *testing.T) {
	root := t.TempDir()
	server := filepath.Join(root, "Server.csproj")
	writeFile(t, server, sdkServer)
	writeFile(t, filepath.Join(root, "Top.cs"), "")
	writeFile(t, filepath.Join(root, "Old.cs"), "")
	writeFile(t, filepath.Join(root, "Model", "A.cs"), "")
	writeFile(t, filepath.Join(root, "obj", "Debug", "AssemblyInfo.cs"), "")
	writeFile(t, filepath.Join(root, "bin", "x.cs"), "")

	reader, _ := newReader()

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "Top.cs"),
		filepath.Join(root, "Model", "A.cs"),
	}, reader.SourceFiles(server))
}

func TestReader_MissingAndMalformed(t *testing.T) {
	root := t.TempDir()
	broken := filepath.Join(root, "Broken.csproj")
	writeFile(t, broken, "<Project><ItemGroup>")

	reader, log := newReader()

	assert.Empty(t, reader.SourceFiles(filepath.Join(root, "Missing.csproj")))
	assert.Empty(t, reader.ProjectReferences(broken))
	assert.Empty(t, reader.PropertyValue(broken, "RootNamespace"))

	warnings := log.Messages(domain.SeverityWarning)
	require.Len(t, warnings, 2, "each project is parsed once")
	assert.Contains(t, warnings[0], "Missing.csproj")
	assert.Contains(t, warnings[1], "Broken.csproj")
	assert.False(t, log.HasLoggedErrors())
}
