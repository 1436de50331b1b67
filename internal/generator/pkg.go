// # internal/generator/pkg.go
package generator

import (
	"sort"

	"archview/internal/analyzer"
	"archview/internal/diagram"
	"archview/internal/resolver"
)

// PackageStructureOptions controls the hierarchy projection. MaxDepth 0
// means unlimited; a positive value stops descent below that depth
// (top-level packages sit at depth 0).
type PackageStructureOptions struct {
	MaxDepth  int
	ShowEmpty bool
}

// PackageStructure renders the nested package tree as contains edges.
// Segments starting with an underscore are pruned, which also drops the
// synthetic root module bucket.
type PackageStructure struct {
	model    *analyzer.Model
	resolver *resolver.Resolver
}

func NewPackageStructure(model *analyzer.Model) *PackageStructure {
	return &PackageStructure{
		model:    model,
		resolver: resolver.New(model),
	}
}

func (g *PackageStructure) Generate(opts PackageStructureOptions) *diagram.Graph {
	graph := diagram.New()
	root := g.resolver.PackageStructure()
	g.addChildren(graph, root, "", 0, opts)
	return graph
}

func (g *PackageStructure) addChildren(graph *diagram.Graph, node *resolver.PackageNode, parent string, depth int, opts PackageStructureOptions) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return
	}

	for _, name := range node.ChildNames() {
		if len(name) > 0 && name[0] == '_' {
			continue
		}
		child := node.Children[name]

		fullName := name
		if parent != "" {
			fullName = parent + "." + name
		}

		if !opts.ShowEmpty && !hasContent(child) {
			continue
		}

		classes := append([]string(nil), child.Classes...)
		functions := append([]string(nil), child.Functions...)
		sort.Strings(classes)
		sort.Strings(functions)

		graph.AddNode(diagram.Node{
			Key:       fullName,
			Type:      diagram.NodePackage,
			Name:      name,
			Classes:   classes,
			Functions: functions,
			Depth:     depth,
		})

		if parent != "" {
			graph.AddEdge(parent, fullName, diagram.RelContains)
		}

		g.addChildren(graph, child, fullName, depth+1, opts)
	}
}

// hasContent reports whether a package node holds any classes, functions,
// or non-private children.
func hasContent(node *resolver.PackageNode) bool {
	if len(node.Classes) > 0 || len(node.Functions) > 0 {
		return true
	}
	for name := range node.Children {
		if len(name) > 0 && name[0] != '_' {
			return true
		}
	}
	return false
}
