// # internal/generator/class.go
package generator

import (
	"strings"

	"archview/internal/analyzer"
	"archview/internal/diagram"
	"archview/internal/parser"
	"archview/internal/resolver"
)

// ClassHierarchyOptions controls the class diagram projection. MaxDepth is
// accepted for interface symmetry with the other generators but is not
// applied during generation; depth trimming is left to the caller.
type ClassHierarchyOptions struct {
	IncludeMethods    bool
	IncludeAttributes bool
	IncludePrivate    bool
	MaxDepth          int
}

// ClassHierarchy emits one node per top-level class and an inherits edge
// for every base class the resolver can place.
type ClassHierarchy struct {
	model    *analyzer.Model
	resolver *resolver.Resolver
}

func NewClassHierarchy(model *analyzer.Model) *ClassHierarchy {
	return &ClassHierarchy{
		model:    model,
		resolver: resolver.New(model),
	}
}

func (g *ClassHierarchy) Generate(opts ClassHierarchyOptions) *diagram.Graph {
	graph := diagram.New()

	for _, moduleName := range g.model.ModuleNames() {
		for _, cls := range g.model.Classes[moduleName] {
			info, ok := g.model.GetClassInfo(moduleName, cls.Name)
			if !ok {
				continue
			}

			fullName := moduleName + "." + cls.Name

			methods := info.Methods
			attributes := info.Attributes
			if !opts.IncludePrivate {
				methods = filterMethods(methods)
				attributes = filterNames(attributes)
			}

			node := diagram.Node{
				Key:       fullName,
				Type:      diagram.NodeClass,
				Name:      cls.Name,
				Module:    moduleName,
				Docstring: info.Docstring,
				Bases:     info.Bases,
			}
			if opts.IncludeMethods {
				node.Methods = toMethodInfos(methods)
			}
			if opts.IncludeAttributes {
				node.Attributes = attributes
			}
			graph.AddNode(node)

			for _, base := range info.Bases {
				resolved, ok := g.resolver.ResolveClassName(base, moduleName)
				if !ok {
					continue
				}
				// The base node may not exist in the graph; exporters
				// tolerate dangling edge endpoints.
				graph.AddEdge(fullName, resolved, diagram.RelInherits)
			}
		}
	}

	return graph
}

func filterMethods(methods []parser.Method) []parser.Method {
	out := make([]parser.Method, 0, len(methods))
	for _, m := range methods {
		if strings.HasPrefix(m.Name, "_") {
			continue
		}
		out = append(out, m)
	}
	return out
}

func toMethodInfos(methods []parser.Method) []diagram.MethodInfo {
	out := make([]diagram.MethodInfo, 0, len(methods))
	for _, m := range methods {
		out = append(out, diagram.MethodInfo{
			Name:    m.Name,
			Params:  m.Params,
			Returns: m.Returns,
		})
	}
	return out
}

func filterNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasPrefix(n, "_") {
			continue
		}
		out = append(out, n)
	}
	return out
}
