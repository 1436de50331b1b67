// # internal/history/history_test.go
package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoadRuns(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveRun(Snapshot{
		ProjectKey:    "demo",
		ModuleCount:   4,
		ClassCount:    2,
		FunctionCount: 3,
		ImportCount:   5,
		CallCount:     2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" {
		t.Fatal("Expected generated run id")
	}

	runs, err := store.LoadRuns("demo", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID != runID || got.ModuleCount != 4 || got.CallCount != 2 {
		t.Errorf("Unexpected snapshot: %+v", got)
	}
	if got.SchemaVersion != SchemaVersion {
		t.Errorf("Schema version = %d", got.SchemaVersion)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp must be assigned on save")
	}
}

func TestSnapshotDelta(t *testing.T) {
	prev := Snapshot{ModuleCount: 4, ClassCount: 2, FunctionCount: 3, ImportCount: 5, CallCount: 2}
	cur := Snapshot{ModuleCount: 5, ClassCount: 2, FunctionCount: 2, ImportCount: 7, CallCount: 4}

	got := cur.Delta(prev)
	want := Change{ModuleCount: 1, ClassCount: 0, FunctionCount: -1, ImportCount: 2, CallCount: 2}
	if got != want {
		t.Errorf("Delta = %+v, want %+v", got, want)
	}
}

func TestLoadRunsSince(t *testing.T) {
	store := openTestStore(t)

	old := Snapshot{ProjectKey: "demo", Timestamp: time.Now().UTC().Add(-time.Hour)}
	recent := Snapshot{ProjectKey: "demo", Timestamp: time.Now().UTC()}
	if _, err := store.SaveRun(old); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(recent); err != nil {
		t.Fatal(err)
	}

	runs, err := store.LoadRuns("demo", time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 recent run, got %d", len(runs))
	}
}

func TestProjectKeyDefault(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Snapshot{}); err != nil {
		t.Fatal(err)
	}

	runs, err := store.LoadRuns("", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ProjectKey != "default" {
		t.Errorf("Expected default project key, got %+v", runs)
	}
}

func TestOpenRejectsEmptyAndDirPaths(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Empty path must fail")
	}
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Directory path must fail")
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.SaveRun(Snapshot{ProjectKey: "x"}); err != nil {
		t.Fatal(err)
	}
}

func TestUnsupportedSchemaVersion(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Snapshot{SchemaVersion: 99}); err == nil {
		t.Error("Unsupported schema version must fail")
	}
}
