// # internal/generator/call.go
package generator

import (
	"strings"

	"archview/internal/analyzer"
	"archview/internal/diagram"
	"archview/internal/resolver"
)

// CallGraphOptions controls the call graph projection. MaxDepth is
// accepted for interface symmetry but the flat caller/callee pairs carry
// no depth to limit, so it has no effect.
type CallGraphOptions struct {
	FocusModule     string
	IncludeExternal bool
	MaxDepth        int
}

// CallGraph projects the recorded caller/callee pairs into a calls graph.
// Callees are simple names, so edges into shared helper names can merge.
type CallGraph struct {
	model    *analyzer.Model
	resolver *resolver.Resolver
}

func NewCallGraph(model *analyzer.Model) *CallGraph {
	return &CallGraph{
		model:    model,
		resolver: resolver.New(model),
	}
}

func (g *CallGraph) Generate(opts CallGraphOptions) *diagram.Graph {
	graph := diagram.New()

	for _, edge := range g.model.Calls {
		if opts.FocusModule != "" && !strings.HasPrefix(edge.Caller, opts.FocusModule) {
			continue
		}

		internal := g.resolver.IsInternalCallee(edge.Callee)
		if !opts.IncludeExternal && !internal {
			continue
		}

		if !graph.HasNode(edge.Caller) {
			graph.AddNode(diagram.Node{
				Key:  edge.Caller,
				Type: diagram.NodeFunction,
				Name: edge.Caller,
			})
		}
		if !graph.HasNode(edge.Callee) {
			graph.AddNode(diagram.Node{
				Key:        edge.Callee,
				Type:       diagram.NodeFunction,
				Name:       edge.Callee,
				IsExternal: !internal,
			})
		}

		graph.AddEdge(edge.Caller, edge.Callee, diagram.RelCalls)
	}

	return graph
}
