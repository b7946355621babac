package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/fs"
	"go.trai.ch/riagen/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "git config")
	writeFile(t, filepath.Join(root, "obj", "Debug", "gen.cs"), "")
	writeFile(t, filepath.Join(root, "src", "Top.cs"), "")
	writeFile(t, filepath.Join(root, "README.md"), "")

	got := slices.Collect(fs.NewWalker().WalkFiles(root, []string{"OBJ"}))

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "src", "Top.cs"),
		filepath.Join(root, "README.md"),
	}, got)
}

func TestResolver_ResolveInputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Top.cs"), "")
	writeFile(t, filepath.Join(root, "Shared", "A.shared.cs"), "")
	writeFile(t, filepath.Join(root, "Shared", "Deep", "B.shared.cs"), "")
	writeFile(t, filepath.Join(root, "Shared", "notes.txt"), "")

	r := fs.NewResolver(fs.NewWalker())

	t.Run("single segment wildcard", func(t *testing.T) {
		got, err := r.ResolveInputs([]string{`Shared\*.cs`}, root)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "Shared", "A.shared.cs")}, got)
	})

	t.Run("recursive wildcard", func(t *testing.T) {
		got, err := r.ResolveInputs([]string{"**/*.shared.cs", "Top.cs", "Shared/**/*.CS"}, root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "Shared", "A.shared.cs"),
			filepath.Join(root, "Shared", "Deep", "B.shared.cs"),
			filepath.Join(root, "Top.cs"),
		}, got)
	})

	t.Run("literal missing file is kept", func(t *testing.T) {
		got, err := r.ResolveInputs([]string{"Missing.cs"}, root)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "Missing.cs")}, got)
	})

	t.Run("no matches", func(t *testing.T) {
		got, err := r.ResolveInputs([]string{"*.vb"}, root)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestHasher_ComputeInputHash(t *testing.T) {
	root := t.TempDir()
	meta := filepath.Join(root, "Server.meta.yaml")
	writeFile(t, meta, "name: Server\n")
	project := &domain.ProjectConfig{ClientProject: filepath.Join(root, "Client.csproj"), Language: "C#"}

	h := fs.NewHasher()
	first, err := h.ComputeInputHash(project, []string{meta, filepath.Join(root, "missing.cs")})
	require.NoError(t, err)

	again, err := h.ComputeInputHash(project, []string{filepath.Join(root, "missing.cs"), meta})
	require.NoError(t, err)
	assert.Equal(t, first, again, "order of inputs must not matter")

	writeFile(t, meta, "name: Server2\n")
	changed, err := h.ComputeInputHash(project, []string{meta})
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)

	project.UseFullTypeNames = true
	flagged, err := h.ComputeInputHash(project, []string{meta})
	require.NoError(t, err)
	assert.NotEqual(t, changed, flagged)

	assert.Equal(t, h.ComputeContentHash("x"), h.ComputeContentHash("x"))
	assert.Len(t, h.ComputeContentHash("x"), 16)
}

func TestWriter_WriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Generated_Code", "Server.g.cs")
	w := fs.NewWriter()

	ok, err := w.Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	written, err := w.WriteIfChanged(path, "code")
	require.NoError(t, err)
	assert.True(t, written)

	written, err = w.WriteIfChanged(path, "code")
	require.NoError(t, err)
	assert.False(t, written)

	written, err = w.WriteIfChanged(path, "other")
	require.NoError(t, err)
	assert.True(t, written)

	ok, err = w.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}
