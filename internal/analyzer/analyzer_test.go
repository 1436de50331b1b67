// # internal/analyzer/analyzer_test.go
package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func sampleProject(t *testing.T) string {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"mypackage/__init__.py": "",
		"mypackage/a.py": `
import os
from mypackage.b import Child

class Base:
    """A base class."""

    kind = "base"

    def greet(self):
        return "hi"

def top_level(x):
    return helper(x)

def helper(x):
    return x
`,
		"mypackage/b.py": `
from mypackage.a import Base

class Child(Base):
    def run(self):
        return top_level(1)
`,
		"script.py": `
def lone():
    return 1
`,
	})
	return tmpDir
}

func TestAnalyzeBuildsModel(t *testing.T) {
	root := sampleProject(t)

	model, err := New().Analyze(root, nil)
	require.NoError(t, err)

	names := model.ModuleNames()
	assert.Equal(t, []string{"mypackage", "mypackage.a", "mypackage.b", "script"}, names)

	classes := model.Classes["mypackage.a"]
	require.Len(t, classes, 1)
	assert.Equal(t, "Base", classes[0].Name)
	assert.Equal(t, "A base class.", classes[0].Docstring)
	assert.Equal(t, []string{"kind"}, classes[0].Attributes)

	childClasses := model.Classes["mypackage.b"]
	require.Len(t, childClasses, 1)
	assert.Equal(t, []string{"Base"}, childClasses[0].Bases)

	assert.Len(t, model.Functions["mypackage.a"], 2)
	assert.Len(t, model.Imports["mypackage.a"], 2)

	// helper is called from top_level; run calls top_level.
	callers := make(map[string]string)
	for _, edge := range model.Calls {
		callers[edge.Callee] = edge.Caller
	}
	assert.Equal(t, "mypackage.a.top_level", callers["helper"])
	assert.Equal(t, "mypackage.b.run", callers["top_level"])
}

func TestAnalyzeDeterministic(t *testing.T) {
	root := sampleProject(t)
	a := New()

	first, err := a.Analyze(root, nil)
	require.NoError(t, err)
	second, err := a.Analyze(root, nil)
	require.NoError(t, err)

	assert.Equal(t, first.ModuleNames(), second.ModuleNames())
	assert.Equal(t, first.Calls, second.Calls)
	assert.Equal(t, first.Stats(), second.Stats())
}

func TestAnalyzeSkipsBrokenFiles(t *testing.T) {
	root := sampleProject(t)
	writeTree(t, root, map[string]string{
		"mypackage/broken.py": "def broken(:\n",
	})

	model, err := New().Analyze(root, nil)
	require.NoError(t, err)

	_, ok := model.Modules["mypackage.broken"]
	assert.False(t, ok, "broken module must be omitted entirely")
	assert.Contains(t, model.ModuleNames(), "mypackage.a")
}

func TestAnalyzeExcludePatterns(t *testing.T) {
	root := sampleProject(t)

	model, err := New().Analyze(root, []string{"script.py", "mypackage/b.py"})
	require.NoError(t, err)

	assert.NotContains(t, model.ModuleNames(), "script")
	assert.NotContains(t, model.ModuleNames(), "mypackage.b")
	assert.Contains(t, model.ModuleNames(), "mypackage.a")
}

func TestAnalyzeExcludeDirectoryName(t *testing.T) {
	root := sampleProject(t)
	writeTree(t, root, map[string]string{
		"migrations/0001_initial.py":    "def forward():\n    return 1\n",
		"mypackage/migrations/later.py": "def later():\n    return 1\n",
	})

	// A bare directory name prunes that subtree wherever it appears.
	model, err := New().Analyze(root, []string{"migrations"})
	require.NoError(t, err)

	assert.NotContains(t, model.ModuleNames(), "migrations.0001_initial")
	assert.NotContains(t, model.ModuleNames(), "mypackage.migrations.later")
	assert.Contains(t, model.ModuleNames(), "mypackage.a")
}

func TestAnalyzeInvalidExcludePattern(t *testing.T) {
	root := sampleProject(t)

	// A malformed glob is ignored, not fatal.
	model, err := New().Analyze(root, []string{"[unclosed"})
	require.NoError(t, err)
	assert.Contains(t, model.ModuleNames(), "mypackage.a")
}

func TestAnalyzeSkipDirs(t *testing.T) {
	root := sampleProject(t)
	writeTree(t, root, map[string]string{
		"__pycache__/cached.py": "def cached():\n    return 1\n",
		".venv/lib/pkg.py":      "def pkg():\n    return 1\n",
	})

	model, err := New().Analyze(root, nil)
	require.NoError(t, err)

	for _, name := range model.ModuleNames() {
		assert.NotContains(t, name, "cached")
		assert.NotContains(t, name, "pkg")
	}
}

func TestAnalyzeRootMissing(t *testing.T) {
	_, err := New().Analyze(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestAnalyzeEmptyRoot(t *testing.T) {
	model, err := New().Analyze(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, model.ModuleNames())
	assert.Empty(t, model.Calls)
}

func TestDeriveModuleName(t *testing.T) {
	cases := []struct {
		rel  string
		want string
	}{
		{"pkg/mod.py", "pkg.mod"},
		{"pkg/__init__.py", "pkg"},
		{"mod.py", "mod"},
		{"__init__.py", "__main__"},
	}
	root := "/project"
	for _, tc := range cases {
		got := deriveModuleName(root, filepath.Join(root, filepath.FromSlash(tc.rel)))
		if got != tc.want {
			t.Errorf("deriveModuleName(%s) = %s, want %s", tc.rel, got, tc.want)
		}
	}
}

func TestStats(t *testing.T) {
	root := sampleProject(t)

	model, err := New().Analyze(root, nil)
	require.NoError(t, err)

	stats := model.Stats()
	assert.Equal(t, 4, stats.ModuleCount)
	assert.Equal(t, 2, stats.ClassCount)
	assert.Equal(t, 3, stats.FunctionCount)
	assert.Equal(t, len(model.Calls), stats.CallCount)
	require.Len(t, stats.PerModule, 4)
	assert.Equal(t, "mypackage", stats.PerModule[0].Module)
}