// # internal/resolver/resolver_test.go
package resolver

import (
	"testing"

	"archview/internal/analyzer"
	"archview/internal/parser"
)

func testModel() *analyzer.Model {
	return &analyzer.Model{
		Root: "/project",
		Modules: map[string]*parser.File{
			"app":        {Module: "app"},
			"app.models": {Module: "app.models"},
			"app.views":  {Module: "app.views"},
		},
		Classes: map[string][]parser.Class{
			"app.models": {{Name: "Base"}, {Name: "User", Bases: []string{"Base"}}},
			"app.views":  {{Name: "UserView", Bases: []string{"User"}}},
		},
		Functions: map[string][]parser.Function{
			"app.views": {{Name: "render"}},
		},
		Imports: map[string][]parser.Import{
			"app.views": {
				{Name: "app.models.User"},
				{Name: "os"},
				{Name: "collections.abc", Alias: "abc_mod"},
			},
			"app.models": {{Name: "dataclasses"}},
		},
	}
}

func TestResolveClassNameSameModule(t *testing.T) {
	r := New(testModel())

	resolved, ok := r.ResolveClassName("Base", "app.models")
	if !ok || resolved != "app.models.Base" {
		t.Errorf("Expected app.models.Base, got %q (ok=%v)", resolved, ok)
	}
}

func TestResolveClassNameQualifiedPassthrough(t *testing.T) {
	r := New(testModel())

	resolved, ok := r.ResolveClassName("other.Thing", "app.views")
	if !ok || resolved != "other.Thing" {
		t.Errorf("Qualified names pass through, got %q (ok=%v)", resolved, ok)
	}
}

func TestResolveClassNameViaImport(t *testing.T) {
	r := New(testModel())

	// Suffix match on the import table.
	resolved, ok := r.ResolveClassName("User", "app.views")
	if !ok || resolved != "app.models.User" {
		t.Errorf("Expected app.models.User, got %q (ok=%v)", resolved, ok)
	}

	// Alias match.
	resolved, ok = r.ResolveClassName("abc_mod", "app.views")
	if !ok || resolved != "collections.abc" {
		t.Errorf("Expected collections.abc, got %q (ok=%v)", resolved, ok)
	}
}

func TestResolveClassNameMiss(t *testing.T) {
	r := New(testModel())

	if _, ok := r.ResolveClassName("Unknown", "app.views"); ok {
		t.Error("Unknown name must not resolve")
	}
	if _, ok := r.ResolveClassName("", "app.views"); ok {
		t.Error("Empty name must not resolve")
	}
}

func TestDependencies(t *testing.T) {
	r := New(testModel())

	deps := r.Dependencies()
	views := deps["app.views"]
	if len(views) != 3 {
		t.Fatalf("Expected 3 deps for app.views, got %v", views)
	}
	for _, want := range []string{"app", "os", "collections"} {
		if !views[want] {
			t.Errorf("Missing dep %s in %v", want, views)
		}
	}

	models := deps["app.models"]
	if len(models) != 1 || !models["dataclasses"] {
		t.Errorf("Unexpected deps for app.models: %v", models)
	}
}

func TestIsInternal(t *testing.T) {
	r := New(testModel())

	if !r.IsInternal("app") {
		t.Error("app is internal")
	}
	if r.IsInternal("os") {
		t.Error("os is not internal")
	}
	// Substring matching is deliberately loose: any fragment of a module
	// name counts as internal.
	if !r.IsInternal("models") {
		t.Error("models matches app.models by substring")
	}
}

func TestIsInternalCallee(t *testing.T) {
	r := New(testModel())

	if !r.IsInternalCallee("models") {
		t.Error("models matches app.models")
	}
	if r.IsInternalCallee("helper") {
		t.Error("helper matches nothing")
	}
}

func TestPackageStructure(t *testing.T) {
	r := New(testModel())

	root := r.PackageStructure()
	app, ok := root.Children["app"]
	if !ok {
		t.Fatal("app missing from structure")
	}
	if got := app.ChildNames(); len(got) != 2 || got[0] != "models" || got[1] != "views" {
		t.Fatalf("Unexpected app children: %v", got)
	}

	models := app.Children["models"]
	if len(models.Classes) != 2 {
		t.Errorf("Expected 2 classes on models leaf, got %v", models.Classes)
	}
	views := app.Children["views"]
	if len(views.Functions) != 1 || views.Functions[0] != "render" {
		t.Errorf("Unexpected functions on views leaf: %v", views.Functions)
	}
}
