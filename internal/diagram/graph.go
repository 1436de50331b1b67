// # internal/diagram/graph.go
package diagram

import (
	"sort"
)

// NodeType tags what a node stands for. These values are part of the
// exporter contract and must stay stable.
type NodeType string

const (
	NodeClass     NodeType = "class"
	NodeModule    NodeType = "module"
	NodePackage   NodeType = "package"
	NodeFunction  NodeType = "function"
	NodeComponent NodeType = "component"
)

// Relationship tags an edge. Also part of the exporter contract.
type Relationship string

const (
	RelInherits Relationship = "inherits"
	RelUses     Relationship = "uses"
	RelImports  Relationship = "imports"
	RelCalls    Relationship = "calls"
	RelContains Relationship = "contains"
)

type MethodInfo struct {
	Name    string
	Params  []string
	Returns string
}

// Node is one vertex of a generated diagram graph. Key is the identity;
// Name is the display label. The remaining fields are type-specific extras
// and are zero-valued when they do not apply.
type Node struct {
	Key        string
	Type       NodeType
	Name       string
	Module     string
	Methods    []MethodInfo
	Attributes []string
	Docstring  string
	Bases      []string
	Classes    []string
	Functions  []string
	IsExternal bool
	Depth      int
}

type Edge struct {
	From         string
	To           string
	Relationship Relationship
}

// Graph is a directed attributed graph produced by one generator call.
// Edges may point at keys with no corresponding node; consumers must
// tolerate that. Self-edges are suppressed on insert.
type Graph struct {
	nodes map[string]Node
	edges []Edge
	seen  map[Edge]bool
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]Node),
		seen:  make(map[Edge]bool),
	}
}

// AddNode inserts or replaces the node with the same key.
func (g *Graph) AddNode(n Node) {
	g.nodes[n.Key] = n
}

func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

func (g *Graph) GetNode(key string) (Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// AddEdge records a directed edge. Self-edges and exact duplicates are
// dropped silently.
func (g *Graph) AddEdge(from, to string, rel Relationship) {
	if from == to {
		return
	}
	e := Edge{From: from, To: to, Relationship: rel}
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all nodes sorted by key, so output is stable run to run.
func (g *Graph) Nodes() []Node {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Node, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.nodes[k])
	}
	return out
}

// Edges returns all edges sorted by (from, to, relationship).
func (g *Graph) Edges() []Edge {
	out := append([]Edge(nil), g.edges...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].Relationship < out[j].Relationship
	})
	return out
}
