// # internal/analyzer/model.go
package analyzer

import (
	"sort"

	"archview/internal/parser"
)

// Model holds everything one analysis pass recovered from a source tree.
// It is populated by Analyze and read-only afterwards.
type Model struct {
	Root      string
	Modules   map[string]*parser.File
	Classes   map[string][]parser.Class
	Functions map[string][]parser.Function
	Imports   map[string][]parser.Import
	Calls     []CallEdge
}

// CallEdge links a qualified caller (module.scope) to a callee name as
// written at the call site.
type CallEdge struct {
	Caller string
	Callee string
}

// ClassInfo is the derived view of a single class declaration.
type ClassInfo struct {
	Name       string
	Module     string
	Bases      []string
	Methods    []parser.Method
	Attributes []string
	Docstring  string
}

func newModel(root string) *Model {
	return &Model{
		Root:      root,
		Modules:   make(map[string]*parser.File),
		Classes:   make(map[string][]parser.Class),
		Functions: make(map[string][]parser.Function),
		Imports:   make(map[string][]parser.Import),
	}
}

// ModuleNames returns all module names in sorted order.
func (m *Model) ModuleNames() []string {
	names := make([]string, 0, len(m.Modules))
	for name := range m.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetClassInfo looks up a class by module and name. The second return is
// false when either is unknown; callers treat that as an empty result.
func (m *Model) GetClassInfo(moduleName, className string) (ClassInfo, bool) {
	for _, cls := range m.Classes[moduleName] {
		if cls.Name != className {
			continue
		}
		return ClassInfo{
			Name:       cls.Name,
			Module:     moduleName,
			Bases:      append([]string(nil), cls.Bases...),
			Methods:    append([]parser.Method(nil), cls.Methods...),
			Attributes: append([]string(nil), cls.Attributes...),
			Docstring:  cls.Docstring,
		}, true
	}
	return ClassInfo{}, false
}

type Stats struct {
	ModuleCount   int
	ClassCount    int
	FunctionCount int
	ImportCount   int
	CallCount     int
	PerModule     []ModuleStats
}

type ModuleStats struct {
	Module    string
	Classes   []string
	Functions []string
	Imports   int
}

// Stats summarizes the model for read-only consumers (narrative, history).
func (m *Model) Stats() Stats {
	s := Stats{
		ModuleCount: len(m.Modules),
		CallCount:   len(m.Calls),
	}
	for _, name := range m.ModuleNames() {
		ms := ModuleStats{Module: name, Imports: len(m.Imports[name])}
		for _, cls := range m.Classes[name] {
			ms.Classes = append(ms.Classes, cls.Name)
		}
		for _, fn := range m.Functions[name] {
			ms.Functions = append(ms.Functions, fn.Name)
		}
		s.ClassCount += len(ms.Classes)
		s.FunctionCount += len(ms.Functions)
		s.ImportCount += ms.Imports
		s.PerModule = append(s.PerModule, ms)
	}
	return s
}
