package output

import (
	"fmt"
	"strings"

	"archview/internal/diagram"
)

// PlantUMLOptions selects the PlantUML dialect. DiagramType is "class" or
// "component"; anything else falls back to "component".
type PlantUMLOptions struct {
	DiagramType string
}

type PlantUMLExporter struct {
	opts PlantUMLOptions
}

func NewPlantUMLExporter(opts PlantUMLOptions) *PlantUMLExporter {
	return &PlantUMLExporter{opts: opts}
}

func (p *PlantUMLExporter) Export(g *diagram.Graph, path string) error {
	content, err := p.String(g)
	if err != nil {
		return err
	}
	return writeDiagram(path, content)
}

func (p *PlantUMLExporter) String(g *diagram.Graph) (string, error) {
	if p.opts.DiagramType == "class" {
		return p.classDiagram(g), nil
	}
	return p.componentDiagram(g), nil
}

func (p *PlantUMLExporter) classDiagram(g *diagram.Graph) string {
	var b strings.Builder
	b.WriteString("@startuml\n\n")

	for _, node := range g.Nodes() {
		if node.Type != diagram.NodeClass {
			continue
		}
		b.WriteString(fmt.Sprintf("class %s {\n", nodeLabel(node)))
		for _, attr := range node.Attributes {
			b.WriteString(fmt.Sprintf("  +%s\n", attr))
		}
		if len(node.Attributes) > 0 && len(node.Methods) > 0 {
			b.WriteString("  --\n")
		}
		for _, method := range node.Methods {
			returns := ""
			if method.Returns != "" {
				returns = ": " + method.Returns
			}
			b.WriteString(fmt.Sprintf("  +%s(%s)%s\n", method.Name, strings.Join(method.Params, ", "), returns))
		}
		b.WriteString("}\n\n")
	}

	for _, edge := range g.Edges() {
		from := p.displayName(g, edge.From)
		to := p.displayName(g, edge.To)
		switch edge.Relationship {
		case diagram.RelInherits:
			b.WriteString(fmt.Sprintf("%s --|> %s\n", from, to))
		case diagram.RelUses:
			b.WriteString(fmt.Sprintf("%s ..> %s\n", from, to))
		default:
			b.WriteString(fmt.Sprintf("%s --> %s\n", from, to))
		}
	}

	b.WriteString("\n@enduml\n")
	return b.String()
}

func (p *PlantUMLExporter) componentDiagram(g *diagram.Graph) string {
	var b strings.Builder
	b.WriteString("@startuml\n\n")

	for _, node := range g.Nodes() {
		switch node.Type {
		case diagram.NodePackage:
			b.WriteString(fmt.Sprintf("package \"%s\" {\n}\n", nodeLabel(node)))
		case diagram.NodeModule:
			b.WriteString(fmt.Sprintf("component \"%s\"\n", nodeLabel(node)))
		default:
			b.WriteString(fmt.Sprintf("[%s]\n", nodeLabel(node)))
		}
	}

	b.WriteString("\n")
	for _, edge := range g.Edges() {
		label := ""
		if edge.Relationship != "" {
			label = fmt.Sprintf(" : %s", edge.Relationship)
		}
		b.WriteString(fmt.Sprintf("%s --> %s%s\n", edge.From, edge.To, label))
	}

	b.WriteString("\n@enduml\n")
	return b.String()
}

// displayName translates an edge endpoint key to the node's label when a
// node exists; dangling endpoints keep their raw key.
func (p *PlantUMLExporter) displayName(g *diagram.Graph, key string) string {
	if node, ok := g.GetNode(key); ok {
		return nodeLabel(node)
	}
	return key
}
