// # internal/narrative/narrative.go
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	ollama "github.com/JexSrs/go-ollama"
	"golang.org/x/time/rate"

	"archview/internal/analyzer"
	"archview/internal/errors"
)

const maxPromptLen = 16000

// Options configures the Ollama endpoint and request pacing. Rate is
// requests per second against the local model server.
type Options struct {
	Host  string
	Model string
	Rate  float64
}

// Narrator turns model statistics into prose through a local Ollama
// instance. All calls block on the rate limiter before hitting the API.
type Narrator struct {
	client  *ollama.Ollama
	model   string
	limiter *rate.Limiter
}

func New(opts Options) (*Narrator, error) {
	host, err := url.Parse(opts.Host)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid ollama host")
	}
	if opts.Rate <= 0 {
		opts.Rate = 1
	}

	slog.Debug("narrative client ready", "host", opts.Host, "model", opts.Model)

	return &Narrator{
		client:  ollama.New(*host),
		model:   opts.Model,
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), 1),
	}, nil
}

// Summarize describes the overall architecture of an analyzed tree.
func (n *Narrator) Summarize(ctx context.Context, stats analyzer.Stats) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this Python codebase architecture:\n\n")
	fmt.Fprintf(&b, "Modules: %d\nClasses: %d\nFunctions: %d\nImports: %d\nCall sites: %d\n\n", stats.ModuleCount, stats.ClassCount, stats.FunctionCount, stats.ImportCount, stats.CallCount)
	b.WriteString("Module breakdown:\n")
	for _, ms := range stats.PerModule {
		fmt.Fprintf(&b, "- %s: %d classes, %d functions, %d imports\n", ms.Module, len(ms.Classes), len(ms.Functions), ms.Imports)
	}
	b.WriteString("\nProvide:\n1. High-level architecture summary\n2. Detected design patterns\n3. Potential architectural issues\n4. Suggested improvements\n")

	return n.generate(ctx,
		"You are an expert software architect analyzing Python codebases. Provide insightful, actionable analysis.",
		b.String())
}

// AnalyzeClass reviews the design of one class.
func (n *Narrator) AnalyzeClass(ctx context.Context, info analyzer.ClassInfo) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this Python class design:\n\nClass: %s\nModule: %s\n\n", info.Name, info.Module)
	fmt.Fprintf(&b, "Base Classes: %s\n\n", orNone(strings.Join(info.Bases, ", ")))
	b.WriteString("Methods:\n")
	if len(info.Methods) == 0 {
		b.WriteString("None\n")
	}
	for _, method := range info.Methods {
		fmt.Fprintf(&b, "- %s(%s)", method.Name, strings.Join(method.Params, ", "))
		if method.Returns != "" {
			fmt.Fprintf(&b, " -> %s", method.Returns)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nAttributes:\n%s\n\n", orNone(strings.Join(info.Attributes, ", ")))
	fmt.Fprintf(&b, "Docstring:\n%s\n\n", orNone(info.Docstring))
	b.WriteString("Provide:\n1. Design pattern(s) used (if any)\n2. SOLID principles adherence\n3. Potential issues or code smells\n4. Specific recommendations for improvement\n")

	return n.generate(ctx,
		"You are an expert in object-oriented design and Python best practices.",
		b.String())
}

// ExplainDependencies narrates the module import structure.
func (n *Narrator) ExplainDependencies(ctx context.Context, deps map[string]map[string]bool) (string, error) {
	modules := make([]string, 0, len(deps))
	for name := range deps {
		modules = append(modules, name)
	}
	sort.Strings(modules)

	var b strings.Builder
	b.WriteString("Explain the dependency structure of this Python codebase in natural language:\n\n")
	for _, name := range modules {
		targets := make([]string, 0, len(deps[name]))
		for dep := range deps[name] {
			targets = append(targets, dep)
		}
		sort.Strings(targets)
		fmt.Fprintf(&b, "- %s -> %s\n", name, orNone(strings.Join(targets, ", ")))
	}
	b.WriteString("\nProvide:\n1. Overview of module organization\n2. Key dependency patterns\n3. Potential coupling issues\n4. Suggestions for better modularity\n\nWrite in clear, accessible language.\n")

	return n.generate(ctx,
		"You are an expert at software documentation and architecture visualization.",
		b.String())
}

func (n *Narrator) generate(ctx context.Context, system, prompt string) (string, error) {
	if len(prompt) > maxPromptLen {
		slog.Warn("truncating narrative prompt", "from", len(prompt), "to", maxPromptLen)
		prompt = prompt[:maxPromptLen]
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return "", err
	}

	res, err := n.client.Generate(
		n.client.Generate.WithModel(n.model),
		n.client.Generate.WithSystem(system),
		n.client.Generate.WithPrompt(prompt),
	)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "ollama generate")
	}
	if !res.Done {
		return "", errors.New(errors.CodeInternal, "ollama response not complete")
	}
	if res.Response == "" {
		return "", errors.New(errors.CodeInternal, "ollama response empty")
	}

	// Models sometimes wrap prose in code fences.
	return strings.TrimSpace(strings.Trim(res.Response, "`")), nil
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
