// # internal/parser/python.go
package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "python",
	}

	// Only module-level statements contribute classes, functions and imports.
	for i := uint(0); i < root.ChildCount(); i++ {
		e.extractTopLevel(root.Child(i), source, file)
	}

	// Call sites are gathered from the whole tree.
	e.walkCalls(root, source, file, "")

	return file, nil
}

func (e *PythonExtractor) extractTopLevel(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, file)
	case "import_from_statement":
		e.extractFromImport(node, source, file)
	case "function_definition":
		file.Functions = append(file.Functions, e.extractFunction(node, source, file))
	case "class_definition":
		file.Classes = append(file.Classes, e.extractClass(node, source, file))
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			e.extractTopLevel(def, source, file)
		}
	}
}

func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		if child.Kind() == "dotted_name" || child.Kind() == "identifier" {
			file.Imports = append(file.Imports, Import{
				Name:     e.getText(child, source),
				Location: e.getLocation(child, file.Path),
			})
		} else if child.Kind() == "aliased_import" {
			name := e.getText(child.ChildByFieldName("name"), source)
			alias := e.getText(child.ChildByFieldName("alias"), source)
			file.Imports = append(file.Imports, Import{
				Name:     name,
				Alias:    alias,
				Location: e.getLocation(child, file.Path),
			})
		}
	}
}

func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, file *File) {
	base := ""
	if mod := node.ChildByFieldName("module_name"); mod != nil {
		// Relative imports keep only the named part; the leading dots
		// are dropped the same way the module base is derived elsewhere.
		base = strings.TrimLeft(e.getText(mod, source), ".")
	}

	// Imported names are the dotted_name/identifier/aliased_import children
	// after the `import` keyword; everything before it belongs to the module.
	afterImport := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "import" {
			afterImport = true
			continue
		}
		if !afterImport {
			continue
		}

		name := ""
		alias := ""
		switch child.Kind() {
		case "dotted_name", "identifier":
			name = e.getText(child, source)
		case "aliased_import":
			name = e.getText(child.ChildByFieldName("name"), source)
			alias = e.getText(child.ChildByFieldName("alias"), source)
		default:
			continue
		}

		full := name
		if base != "" {
			full = base + "." + name
		}
		file.Imports = append(file.Imports, Import{
			Name:     full,
			Alias:    alias,
			Location: e.getLocation(child, file.Path),
		})
	}
}

func (e *PythonExtractor) extractFunction(node *sitter.Node, source []byte, file *File) Function {
	fn := Function{
		Name:     e.getText(node.ChildByFieldName("name"), source),
		Params:   e.extractParams(node, source),
		Returns:  e.getText(node.ChildByFieldName("return_type"), source),
		Location: e.getLocation(node, file.Path),
	}
	fn.Docstring = e.extractDocstring(node.ChildByFieldName("body"), source)
	return fn
}

func (e *PythonExtractor) extractClass(node *sitter.Node, source []byte, file *File) Class {
	cls := Class{
		Name:     e.getText(node.ChildByFieldName("name"), source),
		Location: e.getLocation(node, file.Path),
	}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := uint(0); i < supers.ChildCount(); i++ {
			child := supers.Child(i)
			// Positional bases only; keyword arguments (metaclass=...) are not bases.
			if child.Kind() == "identifier" || child.Kind() == "attribute" {
				cls.Bases = append(cls.Bases, e.getText(child, source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	cls.Docstring = e.extractDocstring(body, source)

	for i := uint(0); i < body.ChildCount(); i++ {
		stmt := body.Child(i)

		switch stmt.Kind() {
		case "function_definition":
			cls.Methods = append(cls.Methods, e.extractMethod(stmt, source))
		case "decorated_definition":
			if def := stmt.ChildByFieldName("definition"); def != nil && def.Kind() == "function_definition" {
				cls.Methods = append(cls.Methods, e.extractMethod(def, source))
			}
		case "expression_statement":
			for j := uint(0); j < stmt.ChildCount(); j++ {
				e.collectAssignTargets(stmt.Child(j), source, &cls.Attributes)
			}
		}
	}

	return cls
}

func (e *PythonExtractor) extractMethod(node *sitter.Node, source []byte) Method {
	return Method{
		Name:    e.getText(node.ChildByFieldName("name"), source),
		Params:  e.extractParams(node, source),
		Returns: e.getText(node.ChildByFieldName("return_type"), source),
	}
}

// collectAssignTargets records plain-name assignment targets. Annotated
// assignments (`x: int = 0`) carry a type field and are skipped, matching
// how attribute lists leave typed declarations out. Chained assignments
// (`a = b = 0`) nest on the right side.
func (e *PythonExtractor) collectAssignTargets(node *sitter.Node, source []byte, targets *[]string) {
	if node == nil || node.Kind() != "assignment" {
		return
	}
	if node.ChildByFieldName("type") != nil {
		return
	}
	if left := node.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
		*targets = append(*targets, e.getText(left, source))
	}
	e.collectAssignTargets(node.ChildByFieldName("right"), source, targets)
}

func (e *PythonExtractor) extractParams(node *sitter.Node, source []byte) []string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var out []string
	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		switch child.Kind() {
		case "identifier":
			out = append(out, e.getText(child, source))
		case "typed_parameter":
			for j := uint(0); j < child.ChildCount(); j++ {
				if sub := child.Child(j); sub.Kind() == "identifier" {
					out = append(out, e.getText(sub, source))
					break
				}
			}
		case "default_parameter", "typed_default_parameter":
			if name := child.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				out = append(out, e.getText(name, source))
			}
		}
	}
	return out
}

func (e *PythonExtractor) extractDocstring(body *sitter.Node, source []byte) string {
	if body == nil {
		return ""
	}
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	str := first.NamedChild(0)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	return trimPythonString(e.getText(str, source))
}

// walkCalls records every simple-name call site together with the name of
// the innermost enclosing function or class. A call in decorator position
// is attributed to the definition it wraps. Attribute calls (obj.method())
// are not recorded; call sites outside any definition are dropped.
func (e *PythonExtractor) walkCalls(node *sitter.Node, source []byte, file *File, scope string) {
	switch node.Kind() {
	case "function_definition", "class_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			scope = e.getText(name, source)
		}
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			if name := def.ChildByFieldName("name"); name != nil {
				scope = e.getText(name, source)
			}
		}
	case "call":
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Kind() == "identifier" && scope != "" {
			file.Calls = append(file.Calls, Call{
				Caller:   scope,
				Callee:   e.getText(fn, source),
				Location: e.getLocation(node, file.Path),
			})
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walkCalls(node.Child(i), source, file, scope)
	}
}

func (e *PythonExtractor) getLocation(node *sitter.Node, filePath string) Location {
	return Location{
		File:   filePath,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

func (e *PythonExtractor) getText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

func trimPythonString(s string) string {
	s = strings.TrimLeft(s, "rRbBuUfF")
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
