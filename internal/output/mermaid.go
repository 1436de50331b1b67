package output

import (
	"fmt"
	"strings"

	"archview/internal/diagram"
)

// MermaidOptions selects the Mermaid dialect. DiagramType is one of
// "class", "flowchart" or "graph"; anything else falls back to "graph".
type MermaidOptions struct {
	DiagramType string
}

type MermaidExporter struct {
	opts MermaidOptions
}

func NewMermaidExporter(opts MermaidOptions) *MermaidExporter {
	return &MermaidExporter{opts: opts}
}

func (m *MermaidExporter) Export(g *diagram.Graph, path string) error {
	content, err := m.String(g)
	if err != nil {
		return err
	}
	return writeDiagram(path, content)
}

func (m *MermaidExporter) String(g *diagram.Graph) (string, error) {
	switch m.opts.DiagramType {
	case "class":
		return m.classDiagram(g), nil
	case "flowchart":
		return m.flowchart(g), nil
	default:
		return m.graphDiagram(g), nil
	}
}

func (m *MermaidExporter) classDiagram(g *diagram.Graph) string {
	var b strings.Builder
	b.WriteString("classDiagram\n")

	for _, node := range g.Nodes() {
		if node.Type != diagram.NodeClass {
			continue
		}
		b.WriteString(fmt.Sprintf("    class %s {\n", sanitizeMermaidID(node.Key)))
		for _, attr := range node.Attributes {
			b.WriteString(fmt.Sprintf("        +%s\n", attr))
		}
		for _, method := range node.Methods {
			returns := ""
			if method.Returns != "" {
				returns = " " + method.Returns
			}
			b.WriteString(fmt.Sprintf("        +%s(%s)%s\n", method.Name, strings.Join(method.Params, ", "), returns))
		}
		b.WriteString("    }\n")
	}

	for _, edge := range g.Edges() {
		from := sanitizeMermaidID(edge.From)
		to := sanitizeMermaidID(edge.To)
		switch edge.Relationship {
		case diagram.RelInherits:
			b.WriteString(fmt.Sprintf("    %s --|> %s\n", from, to))
		case diagram.RelUses:
			b.WriteString(fmt.Sprintf("    %s ..> %s\n", from, to))
		default:
			b.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		}
	}

	return b.String()
}

func (m *MermaidExporter) flowchart(g *diagram.Graph) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	for _, node := range g.Nodes() {
		b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(node.Key), escapeMermaidLabel(nodeLabel(node))))
	}
	writeMermaidEdges(&b, g)

	return b.String()
}

func (m *MermaidExporter) graphDiagram(g *diagram.Graph) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, node := range g.Nodes() {
		id := sanitizeMermaidID(node.Key)
		label := escapeMermaidLabel(nodeLabel(node))
		switch {
		case node.Type == diagram.NodePackage:
			b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, label))
		case node.Type == diagram.NodeModule:
			b.WriteString(fmt.Sprintf("    %s(\"%s\")\n", id, label))
		case node.IsExternal:
			b.WriteString(fmt.Sprintf("    %s{\"%s\"}\n", id, label))
		default:
			b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", id, label))
		}
	}
	writeMermaidEdges(&b, g)

	return b.String()
}

func writeMermaidEdges(b *strings.Builder, g *diagram.Graph) {
	for _, edge := range g.Edges() {
		label := ""
		if edge.Relationship != "" {
			label = fmt.Sprintf("|%s|", edge.Relationship)
		}
		b.WriteString(fmt.Sprintf("    %s -->%s %s\n", sanitizeMermaidID(edge.From), label, sanitizeMermaidID(edge.To)))
	}
}

func nodeLabel(node diagram.Node) string {
	if node.Name != "" {
		return node.Name
	}
	return node.Key
}

var mermaidIDReplacer = strings.NewReplacer(".", "_", "-", "_", " ", "_")

func sanitizeMermaidID(name string) string {
	return mermaidIDReplacer.Replace(name)
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
