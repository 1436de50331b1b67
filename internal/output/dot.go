// # internal/output/dot.go
package output

import (
	"fmt"
	"strings"

	"archview/internal/diagram"
)

// DOTOptions controls Graphviz output. Rankdir defaults to "TB";
// ShowDetails expands class nodes into record labels with their members.
type DOTOptions struct {
	Rankdir     string
	ShowDetails bool
}

type DOTExporter struct {
	opts DOTOptions
}

func NewDOTExporter(opts DOTOptions) *DOTExporter {
	if opts.Rankdir == "" {
		opts.Rankdir = "TB"
	}
	return &DOTExporter{opts: opts}
}

func (d *DOTExporter) Export(g *diagram.Graph, path string) error {
	content, err := d.String(g)
	if err != nil {
		return err
	}
	return writeDiagram(path, content)
}

func (d *DOTExporter) String(g *diagram.Graph) (string, error) {
	var b strings.Builder

	b.WriteString("digraph architecture {\n")
	b.WriteString(fmt.Sprintf("  rankdir=%s;\n", d.opts.Rankdir))
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"lightblue\", fontname=\"Helvetica\", fontsize=10];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=8];\n\n")

	for _, node := range g.Nodes() {
		attrs := ""
		switch {
		case node.Type == diagram.NodeClass:
			attrs = ", shape=record, fillcolor=\"lightgreen\""
		case node.Type == diagram.NodePackage:
			attrs = ", shape=folder, fillcolor=\"lightyellow\""
		case node.Type == diagram.NodeModule:
			attrs = ", shape=component, fillcolor=\"lightblue\""
		case node.IsExternal:
			attrs = ", fillcolor=\"lightgray\", style=\"dashed,filled\""
		}
		b.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\"%s];\n", escapeDOT(node.Key), d.nodeLabel(node), attrs))
	}

	b.WriteString("\n")
	for _, edge := range g.Edges() {
		attrs := fmt.Sprintf("label=\"%s\"", edge.Relationship)
		switch edge.Relationship {
		case diagram.RelInherits:
			attrs += ", arrowhead=empty"
		case diagram.RelImports:
			attrs += ", style=dashed"
		}
		b.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [%s];\n", escapeDOT(edge.From), escapeDOT(edge.To), attrs))
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// nodeLabel renders a record label for classes when details are on, and a
// plain name otherwise.
func (d *DOTExporter) nodeLabel(node diagram.Node) string {
	name := escapeDOT(nodeLabel(node))
	if node.Type != diagram.NodeClass || !d.opts.ShowDetails {
		return name
	}

	parts := []string{name}
	if len(node.Attributes) > 0 {
		attrs := make([]string, 0, len(node.Attributes))
		for _, attr := range node.Attributes {
			attrs = append(attrs, fmt.Sprintf("+ %s", escapeDOT(attr)))
		}
		parts = append(parts, "|"+strings.Join(attrs, "\\l")+"\\l")
	}
	if len(node.Methods) > 0 {
		methods := make([]string, 0, len(node.Methods))
		for _, method := range node.Methods {
			methods = append(methods, fmt.Sprintf("+ %s(%s)", escapeDOT(method.Name), escapeDOT(strings.Join(method.Params, ", "))))
		}
		parts = append(parts, "|"+strings.Join(methods, "\\l")+"\\l")
	}
	return "{" + strings.Join(parts, "") + "}"
}

func escapeDOT(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
