// # internal/output/output.go
package output

import (
	"os"
	"path/filepath"
	"strings"

	"archview/internal/diagram"
	"archview/internal/errors"
)

// Format identifies a diagram text format.
type Format string

const (
	FormatMermaid  Format = "mermaid"
	FormatPlantUML Format = "plantuml"
	FormatDOT      Format = "dot"
	FormatTSV      Format = "tsv"
)

// ParseFormat maps a user-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMermaid:
		return FormatMermaid, nil
	case FormatPlantUML:
		return FormatPlantUML, nil
	case FormatDOT:
		return FormatDOT, nil
	case FormatTSV:
		return FormatTSV, nil
	}
	return "", errors.AddContext(errors.New(errors.CodeNotSupported, "unknown output format: "+s), errors.CtxFormat, s)
}

// Exporter renders a generated graph as diagram text.
type Exporter interface {
	String(g *diagram.Graph) (string, error)
	Export(g *diagram.Graph, path string) error
}

// Options bundles the per-format settings so callers can configure every
// exporter from one decoded config block.
type Options struct {
	Mermaid  MermaidOptions
	PlantUML PlantUMLOptions
	DOT      DOTOptions
}

// For returns the exporter for a format.
func For(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatMermaid:
		return NewMermaidExporter(opts.Mermaid), nil
	case FormatPlantUML:
		return NewPlantUMLExporter(opts.PlantUML), nil
	case FormatDOT:
		return NewDOTExporter(opts.DOT), nil
	case FormatTSV:
		return NewTSVExporter(), nil
	}
	return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "unknown output format: "+string(format)), errors.CtxFormat, string(format))
}

// writeDiagram creates parent directories before writing, so callers can
// point output at paths that do not exist yet.
func writeDiagram(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "create output directory"), errors.CtxPath, path)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write diagram"), errors.CtxPath, path)
	}
	return nil
}
