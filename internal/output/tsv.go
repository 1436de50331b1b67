// # internal/output/tsv.go
package output

import (
	"fmt"
	"strings"

	"archview/internal/diagram"
)

// TSVExporter emits the edge list only, one relationship per row. Handy
// for loading diagrams into spreadsheets or ad-hoc scripts.
type TSVExporter struct{}

func NewTSVExporter() *TSVExporter {
	return &TSVExporter{}
}

func (t *TSVExporter) Export(g *diagram.Graph, path string) error {
	content, err := t.String(g)
	if err != nil {
		return err
	}
	return writeDiagram(path, content)
}

func (t *TSVExporter) String(g *diagram.Graph) (string, error) {
	var buf strings.Builder

	buf.WriteString("From\tTo\tRelationship\n")
	for _, edge := range g.Edges() {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\n", edge.From, edge.To, edge.Relationship))
	}

	return buf.String(), nil
}
