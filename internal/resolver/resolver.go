// # internal/resolver/resolver.go
package resolver

import (
	"sort"
	"strings"

	"archview/internal/analyzer"
)

// Resolver answers best-effort name lookups against a code model. A miss is
// never an error; callers simply emit no edge.
type Resolver struct {
	model *analyzer.Model
}

func New(model *analyzer.Model) *Resolver {
	return &Resolver{model: model}
}

// ResolveClassName resolves a class name as written in the source to a
// fully qualified name. Lookup order: already-qualified names pass through,
// then classes of the context module, then the module's import table
// (alias match or last-segment match).
func (r *Resolver) ResolveClassName(className, contextModule string) (string, bool) {
	if className == "" {
		return "", false
	}

	if strings.Contains(className, ".") {
		return className, true
	}

	for _, cls := range r.model.Classes[contextModule] {
		if cls.Name == className {
			return contextModule + "." + className, true
		}
	}

	for _, imp := range r.model.Imports[contextModule] {
		if imp.Alias == className || strings.HasSuffix(imp.Name, "."+className) {
			return imp.Name, true
		}
	}

	return "", false
}

// Dependencies maps every module to the set of base packages it imports:
// the first dot-segment of each imported name, deduplicated.
func (r *Resolver) Dependencies() map[string]map[string]bool {
	deps := make(map[string]map[string]bool, len(r.model.Imports))
	for moduleName, imports := range r.model.Imports {
		set := make(map[string]bool)
		for _, imp := range imports {
			base := imp.Name
			if idx := strings.Index(base, "."); idx >= 0 {
				base = base[:idx]
			}
			if base != "" {
				set[base] = true
			}
		}
		deps[moduleName] = set
	}
	return deps
}

// IsInternal reports whether a dependency name refers to a discovered
// module. The match is deliberately loose (prefix or substring), mirroring
// how dotted module paths relate to their packages; it can produce false
// positives on short names.
func (r *Resolver) IsInternal(dep string) bool {
	for name := range r.model.Modules {
		if strings.HasPrefix(name, dep) || strings.Contains(name, dep) {
			return true
		}
	}
	return false
}

// IsInternalCallee reports whether a callee name matches a discovered
// module by substring or trailing segment. Same looseness as IsInternal.
func (r *Resolver) IsInternalCallee(callee string) bool {
	for name := range r.model.Modules {
		if strings.Contains(name, callee) || strings.HasSuffix(name, "."+callee) {
			return true
		}
	}
	return false
}

// PackageNode is one segment in the nested package tree. Leaf modules
// carry their class and function names.
type PackageNode struct {
	Name      string
	Children  map[string]*PackageNode
	Classes   []string
	Functions []string
}

func newPackageNode(name string) *PackageNode {
	return &PackageNode{
		Name:     name,
		Children: make(map[string]*PackageNode),
	}
}

// ChildNames returns the child segment names in sorted order.
func (n *PackageNode) ChildNames() []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PackageStructure nests every module by dot-segment. The returned root is
// an anonymous node whose children are the top-level packages.
func (r *Resolver) PackageStructure() *PackageNode {
	root := newPackageNode("")

	for _, moduleName := range r.model.ModuleNames() {
		parts := strings.Split(moduleName, ".")
		current := root
		for _, part := range parts {
			child, ok := current.Children[part]
			if !ok {
				child = newPackageNode(part)
				current.Children[part] = child
			}
			current = child
		}
		for _, cls := range r.model.Classes[moduleName] {
			current.Classes = append(current.Classes, cls.Name)
		}
		for _, fn := range r.model.Functions[moduleName] {
			current.Functions = append(current.Functions, fn.Name)
		}
	}

	return root
}
