package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Version   int       `toml:"version"`
	Root      string    `toml:"root"`
	Project   string    `toml:"project"`
	Exclude   Exclude   `toml:"exclude"`
	Diagrams  Diagrams  `toml:"diagrams"`
	Output    Output    `toml:"output"`
	Narrative Narrative `toml:"narrative"`
	History   History   `toml:"history"`

	// raw keeps every decoded key for dotted Get lookups, including keys
	// the typed struct does not know about.
	raw map[string]interface{}
}

type Exclude struct {
	Dirs     []string `toml:"dirs"`
	Patterns []string `toml:"patterns"`
}

type Diagrams struct {
	Class      ClassDiagram      `toml:"class"`
	Dependency DependencyDiagram `toml:"dependency"`
	Call       CallDiagram       `toml:"call"`
	Package    PackageDiagram    `toml:"package"`
}

type ClassDiagram struct {
	IncludeMethods    *bool `toml:"include_methods"`
	IncludeAttributes *bool `toml:"include_attributes"`
	IncludePrivate    bool  `toml:"include_private"`
	MaxDepth          int   `toml:"max_depth"`
}

type DependencyDiagram struct {
	GroupByPackage  *bool `toml:"group_by_package"`
	IncludeExternal *bool `toml:"include_external"`
	MaxDepth        int   `toml:"max_depth"`
}

type CallDiagram struct {
	FocusModule     string `toml:"focus_module"`
	IncludeExternal bool   `toml:"include_external"`
	MaxDepth        int    `toml:"max_depth"`
}

type PackageDiagram struct {
	MaxDepth  int  `toml:"max_depth"`
	ShowEmpty bool `toml:"show_empty"`
}

type Output struct {
	Format   string         `toml:"format"`
	Path     string         `toml:"path"`
	Mermaid  MermaidOutput  `toml:"mermaid"`
	PlantUML PlantUMLOutput `toml:"plantuml"`
	DOT      DOTOutput      `toml:"dot"`
}

type MermaidOutput struct {
	DiagramType string `toml:"diagram_type"`
}

type PlantUMLOutput struct {
	DiagramType string `toml:"diagram_type"`
}

type DOTOutput struct {
	Rankdir     string `toml:"rankdir"`
	ShowDetails *bool  `toml:"show_details"`
}

type Narrative struct {
	Enabled bool    `toml:"enabled"`
	Host    string  `toml:"host"`
	Model   string  `toml:"model"`
	Rate    float64 `toml:"rate"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, err
	}
	cfg.raw = raw

	applyDefaults(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateOutput(&cfg); err != nil {
		return nil, err
	}
	if err := validateDiagrams(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = "."
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"__pycache__", ".venv", ".git"}
	}
	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "mermaid"
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		cfg.Output.Path = "docs/diagrams"
	}
	if strings.TrimSpace(cfg.Output.Mermaid.DiagramType) == "" {
		cfg.Output.Mermaid.DiagramType = "graph"
	}
	if strings.TrimSpace(cfg.Output.PlantUML.DiagramType) == "" {
		cfg.Output.PlantUML.DiagramType = "component"
	}
	if strings.TrimSpace(cfg.Output.DOT.Rankdir) == "" {
		cfg.Output.DOT.Rankdir = "TB"
	}
	if strings.TrimSpace(cfg.Narrative.Host) == "" {
		cfg.Narrative.Host = "http://localhost:11434"
	}
	if strings.TrimSpace(cfg.Narrative.Model) == "" {
		cfg.Narrative.Model = "qwen2.5-coder:7b"
	}
	if cfg.Narrative.Rate <= 0 {
		cfg.Narrative.Rate = 1
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "archview.db"
	}
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Output.Format {
	case "mermaid", "plantuml", "dot", "tsv":
	default:
		return fmt.Errorf("output.format must be one of mermaid, plantuml, dot, tsv; got %q", cfg.Output.Format)
	}
	switch cfg.Output.Mermaid.DiagramType {
	case "class", "flowchart", "graph":
	default:
		return fmt.Errorf("output.mermaid.diagram_type must be one of class, flowchart, graph; got %q", cfg.Output.Mermaid.DiagramType)
	}
	switch cfg.Output.PlantUML.DiagramType {
	case "class", "component":
	default:
		return fmt.Errorf("output.plantuml.diagram_type must be class or component; got %q", cfg.Output.PlantUML.DiagramType)
	}
	return nil
}

func validateDiagrams(cfg *Config) error {
	if cfg.Diagrams.Class.MaxDepth < 0 {
		return fmt.Errorf("diagrams.class.max_depth must be >= 0, got %d", cfg.Diagrams.Class.MaxDepth)
	}
	if cfg.Diagrams.Dependency.MaxDepth < 0 {
		return fmt.Errorf("diagrams.dependency.max_depth must be >= 0, got %d", cfg.Diagrams.Dependency.MaxDepth)
	}
	if cfg.Diagrams.Call.MaxDepth < 0 {
		return fmt.Errorf("diagrams.call.max_depth must be >= 0, got %d", cfg.Diagrams.Call.MaxDepth)
	}
	if cfg.Diagrams.Package.MaxDepth < 0 {
		return fmt.Errorf("diagrams.package.max_depth must be >= 0, got %d", cfg.Diagrams.Package.MaxDepth)
	}
	return nil
}

// Get looks up a dotted path like "output.mermaid.diagram_type" in the raw
// decoded document and returns fallback when any segment is missing. It
// answers for keys the typed struct does not model.
func (c *Config) Get(path string, fallback interface{}) interface{} {
	if c.raw == nil {
		return fallback
	}
	current := interface{}(c.raw)
	for _, segment := range strings.Split(path, ".") {
		table, ok := current.(map[string]interface{})
		if !ok {
			return fallback
		}
		current, ok = table[segment]
		if !ok {
			return fallback
		}
	}
	return current
}

// Bool resolves an optional flag with its default.
func Bool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
