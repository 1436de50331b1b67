// # internal/analyzer/analyzer.go
package analyzer

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"archview/internal/errors"
	"archview/internal/parser"
)

// Directories never worth descending into: caches, virtual environments,
// VCS metadata.
var skipDirs = map[string]bool{
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".git":          true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"node_modules":  true,
}

// RootModuleName is used for a source file sitting directly at the project
// root whose derived module path would otherwise be empty.
const RootModuleName = "__main__"

type Analyzer struct {
	parser *parser.Parser
}

func New() *Analyzer {
	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterDefaultExtractors()
	return &Analyzer{parser: p}
}

// Analyze walks every Python file under root and builds the code model.
// Exclude patterns are matched against file and directory names as well as
// root-relative paths, so a bare directory name skips that subtree. Files
// that fail to parse are logged and omitted entirely. The only fatal
// condition is a missing root path.
func (a *Analyzer) Analyze(root string, excludePatterns []string) (*Model, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeNotFound, "analysis root does not exist"),
			errors.CtxPath, root)
	}
	if !info.IsDir() {
		return nil, errors.AddContext(
			errors.New(errors.CodeValidationError, "analysis root is not a directory"),
			errors.CtxPath, root)
	}

	globs := compilePatterns(excludePatterns)

	files, err := a.findSourceFiles(root, globs)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "source tree walk failed")
	}
	sort.Strings(files)

	model := newModel(root)
	for _, path := range files {
		a.analyzeFile(model, root, path)
	}
	return model, nil
}

// compilePatterns compiles exclude globs; an invalid pattern is dropped
// with a warning rather than failing the run.
func compilePatterns(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			slog.Warn("ignoring invalid exclude pattern", "pattern", p, "error", err)
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

func (a *Analyzer) findSourceFiles(root string, excludes []glob.Glob) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			if path == root {
				return nil
			}
			if skipDirs[base] || matchesExclude(excludes, root, path, base) {
				return filepath.SkipDir
			}
			return nil
		}

		if !a.parser.IsSupportedPath(path) {
			return nil
		}
		if matchesExclude(excludes, root, path, base) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// matchesExclude tests a walk entry against the exclude globs, both by its
// bare name and by its root-relative path. Matching a directory prunes the
// whole subtree.
func matchesExclude(excludes []glob.Glob, root, path, base string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, g := range excludes {
		if g.Match(base) || g.Match(rel) {
			return true
		}
	}
	return false
}

// analyzeFile parses one file and merges it into the model. A failed file
// leaves no trace in any map.
func (a *Analyzer) analyzeFile(model *Model, root, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("could not read source file", "path", path, "error", err)
		return
	}

	file, err := a.parser.ParseFile(path, content)
	if err != nil {
		slog.Warn("could not analyze file", "path", path, "error", err)
		return
	}

	moduleName := deriveModuleName(root, path)
	file.Module = moduleName

	model.Modules[moduleName] = file
	model.Classes[moduleName] = file.Classes
	model.Functions[moduleName] = file.Functions
	model.Imports[moduleName] = file.Imports

	for _, call := range file.Calls {
		model.Calls = append(model.Calls, CallEdge{
			Caller: moduleName + "." + call.Caller,
			Callee: call.Callee,
		})
	}
}

// deriveModuleName turns a file path into a dotted module name relative to
// the analysis root. A trailing __init__ segment is stripped so packages
// are named after their directory.
func deriveModuleName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return RootModuleName
	}
	name := strings.Join(parts, ".")
	if name == "" {
		return RootModuleName
	}
	return name
}
