// # internal/generator/dependency.go
package generator

import (
	"sort"
	"strings"

	"archview/internal/analyzer"
	"archview/internal/diagram"
	"archview/internal/resolver"
)

// DependencyOptions controls the import graph projection. MaxDepth filters
// the modules being described by their dot-depth; it does not filter their
// dependencies. Zero means unlimited.
type DependencyOptions struct {
	GroupByPackage  bool
	IncludeExternal bool
	MaxDepth        int
}

// Dependency projects the per-module import tables into an imports graph,
// optionally collapsed to top-level packages.
type Dependency struct {
	model    *analyzer.Model
	resolver *resolver.Resolver
}

func NewDependency(model *analyzer.Model) *Dependency {
	return &Dependency{
		model:    model,
		resolver: resolver.New(model),
	}
}

func (g *Dependency) Generate(opts DependencyOptions) *diagram.Graph {
	graph := diagram.New()
	dependencies := g.resolver.Dependencies()

	moduleNames := make([]string, 0, len(dependencies))
	for name := range dependencies {
		moduleNames = append(moduleNames, name)
	}
	sort.Strings(moduleNames)

	for _, moduleName := range moduleNames {
		if opts.MaxDepth > 0 && len(strings.Split(moduleName, ".")) > opts.MaxDepth {
			continue
		}

		moduleDisplay := moduleName
		if opts.GroupByPackage {
			moduleDisplay = packageName(moduleName)
		}

		if !graph.HasNode(moduleDisplay) {
			graph.AddNode(diagram.Node{
				Key:    moduleDisplay,
				Type:   diagram.NodeModule,
				Name:   moduleDisplay,
				Module: moduleName,
			})
		}

		deps := make([]string, 0, len(dependencies[moduleName]))
		for dep := range dependencies[moduleName] {
			deps = append(deps, dep)
		}
		sort.Strings(deps)

		for _, dep := range deps {
			internal := g.resolver.IsInternal(dep)
			if !opts.IncludeExternal && !internal {
				continue
			}

			depDisplay := dep
			if opts.GroupByPackage {
				depDisplay = packageName(dep)
			}

			if !graph.HasNode(depDisplay) {
				graph.AddNode(diagram.Node{
					Key:        depDisplay,
					Type:       diagram.NodeModule,
					Name:       depDisplay,
					Module:     dep,
					IsExternal: !internal,
				})
			}

			graph.AddEdge(moduleDisplay, depDisplay, diagram.RelImports)
		}
	}

	return graph
}

// packageName keeps only the first dot-segment.
func packageName(moduleName string) string {
	if idx := strings.Index(moduleName, "."); idx >= 0 {
		return moduleName[:idx]
	}
	return moduleName
}
