package state_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.trai.ch/riagen/internal/adapters/state"
	"go.trai.ch/riagen/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	record := domain.GenerationRecord{
		Project:    "/src/Client/Client.csproj",
		InputHash:  "abc",
		OutputHash: "def",
		OutputFile: "/src/Client/Generated_Code/Server.g.cs",
		Timestamp:  time.Now(),
	}
	if err := store.Put(record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("/SRC/client/Client.csproj")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a project path differing only in case")
	}
	if got.InputHash != record.InputHash || got.OutputFile != record.OutputFile {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestStore_Missing(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := store.Get("/src/Unknown.csproj")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil record, got %+v", got)
	}
	if err := store.Delete("/src/Unknown.csproj"); err != nil {
		t.Errorf("Delete of a missing record failed: %v", err)
	}
}

func TestStore_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	store1, err := state.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore 1 failed: %v", err)
	}
	if err := store1.Put(domain.GenerationRecord{Project: "/src/A.csproj", InputHash: "xyz"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store2, err := state.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore 2 failed: %v", err)
	}
	got, err := store2.Get("/src/A.csproj")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.InputHash != "xyz" {
		t.Fatalf("expected persisted record, got %+v", got)
	}

	if err := store2.Delete("/src/A.csproj"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = store1.Get("/src/A.csproj")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected deleted record, got %+v", got)
	}
}

func TestStore_OmitZero(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	store, err := state.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Put(domain.GenerationRecord{Project: "/src/Zero.csproj"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one record file, got %d", len(entries))
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	jsonStr := string(content)

	for _, field := range []string{"input_hash", "output_hash", "output_file", "timestamp"} {
		if strings.Contains(jsonStr, field) {
			t.Errorf("JSON should not contain %q for zero value", field)
		}
	}
	if !strings.Contains(jsonStr, "project") {
		t.Error("JSON should contain 'project'")
	}
}

func TestStore_CorruptRecord(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	store, err := state.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Put(domain.GenerationRecord{Project: "/src/Bad.csproj"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if err := os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err = store.Get("/src/Bad.csproj")
	if !errors.Is(err, domain.ErrStoreReadFailed) {
		t.Errorf("expected ErrStoreReadFailed, got %v", err)
	}
}

func TestNewStore_EmptyDir(t *testing.T) {
	if _, err := state.NewStore(""); err == nil {
		t.Error("expected an error for an empty directory")
	}
}
