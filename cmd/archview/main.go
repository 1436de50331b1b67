// # cmd/archview/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"archview/internal/config"
)

var (
	configPath = flag.String("config", "./archview.toml", "Path to config file")
	root       = flag.String("root", "", "Source tree root (overrides config)")
	diagrams   = flag.String("diagram", "all", "Diagrams to generate: class, dependency, call, package or all (comma separated)")
	format     = flag.String("format", "", "Output format: mermaid, plantuml, dot, tsv (overrides config)")
	outDir     = flag.String("out", "", "Output directory (overrides config)")
	exclude    = flag.String("exclude", "", "Extra exclude glob patterns, comma separated")
	narrative  = flag.Bool("narrative", false, "Generate an architecture summary via Ollama")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("archview v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) && *configPath == "./archview.toml" {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if *root != "" {
		cfg.Root = *root
	} else if flag.NArg() > 0 {
		cfg.Root = flag.Arg(0)
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *outDir != "" {
		cfg.Output.Path = *outDir
	}
	if *exclude != "" {
		for _, pattern := range strings.Split(*exclude, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, pattern)
			}
		}
	}
	if *narrative {
		cfg.Narrative.Enabled = true
	}

	if err := run(cfg, parseDiagramList(*diagrams)); err != nil {
		slog.Error("archview failed", "error", err)
		os.Exit(1)
	}
}

func parseDiagramList(s string) []string {
	if strings.TrimSpace(s) == "" || s == "all" {
		return []string{"class", "dependency", "call", "package"}
	}
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
