// # cmd/archview/run.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"archview/internal/analyzer"
	"archview/internal/config"
	"archview/internal/diagram"
	"archview/internal/errors"
	"archview/internal/generator"
	"archview/internal/history"
	narrativepkg "archview/internal/narrative"
	"archview/internal/output"
	"archview/internal/resolver"
)

var formatExtensions = map[output.Format]string{
	output.FormatMermaid:  "mmd",
	output.FormatPlantUML: "puml",
	output.FormatDOT:      "dot",
	output.FormatTSV:      "tsv",
}

func run(cfg *config.Config, diagramNames []string) error {
	outFormat, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	exporter, err := output.For(outFormat, exporterOptions(cfg))
	if err != nil {
		return err
	}

	patterns := append(append([]string(nil), cfg.Exclude.Patterns...), cfg.Exclude.Dirs...)

	model, err := analyzer.New().Analyze(cfg.Root, patterns)
	if err != nil {
		return err
	}
	stats := model.Stats()
	slog.Info("analysis complete",
		"modules", stats.ModuleCount,
		"classes", stats.ClassCount,
		"functions", stats.FunctionCount)

	for _, name := range diagramNames {
		g, err := generate(model, cfg, name)
		if err != nil {
			return err
		}

		path := filepath.Join(cfg.Output.Path, fmt.Sprintf("%s.%s", name, formatExtensions[outFormat]))
		if err := exporter.Export(g, path); err != nil {
			return err
		}
		slog.Info("diagram written", "diagram", name, "path", path,
			"nodes", g.NodeCount(), "edges", g.EdgeCount())
	}

	if cfg.Narrative.Enabled {
		if err := narrate(cfg, model); err != nil {
			slog.Warn("narrative generation failed", "error", err)
		}
	}

	if cfg.History.Enabled {
		if err := record(cfg, stats); err != nil {
			slog.Warn("history snapshot failed", "error", err)
		}
	}

	return nil
}

func generate(model *analyzer.Model, cfg *config.Config, name string) (*diagram.Graph, error) {
	switch name {
	case "class":
		opts := generator.ClassHierarchyOptions{
			IncludeMethods:    config.Bool(cfg.Diagrams.Class.IncludeMethods, true),
			IncludeAttributes: config.Bool(cfg.Diagrams.Class.IncludeAttributes, true),
			IncludePrivate:    cfg.Diagrams.Class.IncludePrivate,
			MaxDepth:          cfg.Diagrams.Class.MaxDepth,
		}
		return generator.NewClassHierarchy(model).Generate(opts), nil
	case "dependency":
		opts := generator.DependencyOptions{
			GroupByPackage:  config.Bool(cfg.Diagrams.Dependency.GroupByPackage, true),
			IncludeExternal: config.Bool(cfg.Diagrams.Dependency.IncludeExternal, true),
			MaxDepth:        cfg.Diagrams.Dependency.MaxDepth,
		}
		return generator.NewDependency(model).Generate(opts), nil
	case "call":
		opts := generator.CallGraphOptions{
			FocusModule:     cfg.Diagrams.Call.FocusModule,
			IncludeExternal: cfg.Diagrams.Call.IncludeExternal,
			MaxDepth:        cfg.Diagrams.Call.MaxDepth,
		}
		return generator.NewCallGraph(model).Generate(opts), nil
	case "package":
		opts := generator.PackageStructureOptions{
			MaxDepth:  cfg.Diagrams.Package.MaxDepth,
			ShowEmpty: cfg.Diagrams.Package.ShowEmpty,
		}
		return generator.NewPackageStructure(model).Generate(opts), nil
	}
	return nil, errors.New(errors.CodeNotSupported, "unknown diagram type: "+name)
}

func exporterOptions(cfg *config.Config) output.Options {
	return output.Options{
		Mermaid: output.MermaidOptions{
			DiagramType: cfg.Output.Mermaid.DiagramType,
		},
		PlantUML: output.PlantUMLOptions{
			DiagramType: cfg.Output.PlantUML.DiagramType,
		},
		DOT: output.DOTOptions{
			Rankdir:     cfg.Output.DOT.Rankdir,
			ShowDetails: config.Bool(cfg.Output.DOT.ShowDetails, true),
		},
	}
}

func narrate(cfg *config.Config, model *analyzer.Model) error {
	narrator, err := narrativepkg.New(narrativepkg.Options{
		Host:  cfg.Narrative.Host,
		Model: cfg.Narrative.Model,
		Rate:  cfg.Narrative.Rate,
	})
	if err != nil {
		return err
	}

	summary, err := narrator.Summarize(context.Background(), model.Stats())
	if err != nil {
		return err
	}
	fmt.Println(summary)

	deps := resolver.New(model).Dependencies()
	explanation, err := narrator.ExplainDependencies(context.Background(), deps)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(explanation)
	return nil
}

func record(cfg *config.Config, stats analyzer.Stats) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	previous, err := store.LoadRuns(cfg.Project, time.Time{})
	if err != nil {
		return err
	}

	snapshot := history.Snapshot{
		ProjectKey:    cfg.Project,
		ModuleCount:   stats.ModuleCount,
		ClassCount:    stats.ClassCount,
		FunctionCount: stats.FunctionCount,
		ImportCount:   stats.ImportCount,
		CallCount:     stats.CallCount,
	}
	runID, err := store.SaveRun(snapshot)
	if err != nil {
		return err
	}
	slog.Debug("history snapshot recorded", "run_id", runID)

	if n := len(previous); n > 0 {
		change := snapshot.Delta(previous[n-1])
		slog.Info("change since previous run",
			"modules", change.ModuleCount,
			"classes", change.ClassCount,
			"functions", change.FunctionCount,
			"imports", change.ImportCount,
			"calls", change.CallCount)
	}
	return nil
}
