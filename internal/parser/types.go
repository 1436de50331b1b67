// # internal/parser/types.go
package parser

import (
	"time"
)

type File struct {
	Path      string
	Language  string
	Module    string // Fully qualified module name, set by the analyzer
	Classes   []Class
	Functions []Function
	Imports   []Import
	Calls     []Call
	ParsedAt  time.Time
}

type Class struct {
	Name       string
	Bases      []string // As written in the source, unresolved
	Methods    []Method
	Attributes []string // Assignment targets at class body level
	Docstring  string
	Location   Location
}

type Method struct {
	Name    string
	Params  []string
	Returns string // Return annotation text, "" when absent
}

type Function struct {
	Name      string
	Params    []string
	Returns   string
	Docstring string
	Location  Location
}

type Import struct {
	Name     string // Dotted module name; from-imports store base.item
	Alias    string // Optional alias
	Location Location
}

type Call struct {
	Caller   string // Lexically enclosing function or class name
	Callee   string
	Location Location
}

type Location struct {
	File   string
	Line   int
	Column int
}
