// Package patch threads a generated variant into its parent module.
//
// The parent source is scanned into a minimal model (import statements, the
// component library import, the field-set interface name and the default
// export line). Edits are recorded against that model and applied when the
// model is serialised back to text. The scanner is tolerant: anything it does
// not recognise is kept verbatim and the edit that needed it becomes a no-op.
package patch

import (
	"regexp"
	"sort"
	"strings"
)

var (
	importPathPattern    = regexp.MustCompile(`(?:from\s+|^import\s+)(['"])([^'"]+)['"]`)
	importNamesPattern   = regexp.MustCompile(`\{([^}]*)\}`)
	fieldsTypePattern    = regexp.MustCompile(`^\s*export\s+interface\s+(\w+)Fields\b`)
	defaultExportPattern = regexp.MustCompile(`^export\s+default\s+withDatasourceCheck\(\)<(\w+)>\((\w+)\);?\s*$`)
)

// Import is one import statement, possibly spanning several lines.
type Import struct {
	Start int
	End   int
	Names []string
	Path  string
	Quote string
}

// Module is the scanned model of a parent module.
type Module struct {
	lines []string
	eol   string

	Imports []Import
	// Library indexes Imports for the component library import, or -1.
	Library int
	// FieldsType is the exported field-set interface name, e.g. "HeroFields".
	FieldsType string
	// DefaultExport is the line index of the datasource-checked default
	// export, or -1.
	DefaultExport int
	// Component is the component wrapped by the default export.
	Component string

	replaced     map[int]replacement
	insertBefore map[int][]string
	insertAfter  map[int][]string
}

type replacement struct {
	end   int
	lines []string
}

// Scan builds the module model. library identifies the combined component
// library import.
func Scan(source, library string) *Module {
	eol := "\n"
	if strings.Contains(source, "\r\n") {
		eol = "\r\n"
	}

	m := &Module{
		lines:         strings.Split(source, eol),
		eol:           eol,
		Library:       -1,
		DefaultExport: -1,
		replaced:      make(map[int]replacement),
		insertBefore:  make(map[int][]string),
		insertAfter:   make(map[int][]string),
	}

	for idx := 0; idx < len(m.lines); idx++ {
		line := m.lines[idx]
		trimmed := strings.TrimSpace(line)

		if isImportStart(trimmed) {
			imp := m.scanImport(idx)
			if imp.Path == library && m.Library < 0 {
				m.Library = len(m.Imports)
			}
			m.Imports = append(m.Imports, imp)
			idx = imp.End
			continue
		}

		if m.FieldsType == "" {
			if match := fieldsTypePattern.FindStringSubmatch(line); match != nil {
				m.FieldsType = match[1] + "Fields"
			}
		}
		if m.DefaultExport < 0 {
			if match := defaultExportPattern.FindStringSubmatch(trimmed); match != nil {
				m.DefaultExport = idx
				m.Component = match[2]
			}
		}
	}

	return m
}

func isImportStart(trimmed string) bool {
	return strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import{")
}

// scanImport reads the statement starting at start. Statements end at the
// first line carrying the module specifier or a terminating semicolon; an
// unterminated statement is treated as a single line.
func (m *Module) scanImport(start int) Import {
	end := start
	for idx := start; idx < len(m.lines); idx++ {
		trimmed := strings.TrimSpace(m.lines[idx])
		if importPathPattern.MatchString(trimmed) || strings.HasSuffix(trimmed, ";") {
			end = idx
			break
		}
	}

	statement := strings.Join(trimLines(m.lines[start:end+1]), " ")
	imp := Import{Start: start, End: end, Quote: "'"}
	if match := importPathPattern.FindStringSubmatch(statement); match != nil {
		imp.Quote = match[1]
		imp.Path = match[2]
	}
	if match := importNamesPattern.FindStringSubmatch(statement); match != nil {
		for _, name := range strings.Split(match[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				imp.Names = append(imp.Names, name)
			}
		}
	}
	return imp
}

// Body returns the module text outside import statements.
func (m *Module) Body() string {
	skip := make(map[int]struct{})
	for _, imp := range m.Imports {
		for idx := imp.Start; idx <= imp.End; idx++ {
			skip[idx] = struct{}{}
		}
	}
	var b strings.Builder
	for idx, line := range m.lines {
		if _, ok := skip[idx]; ok {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// LastImport returns the final import statement in source order.
func (m *Module) LastImport() (Import, bool) {
	if len(m.Imports) == 0 {
		return Import{}, false
	}
	return m.Imports[len(m.Imports)-1], true
}

// ReplaceImport rewrites the statement at Imports[index] as a single line
// importing names.
func (m *Module) ReplaceImport(index int, names []string) {
	if index < 0 || index >= len(m.Imports) {
		return
	}
	imp := m.Imports[index]
	line := "import { " + strings.Join(names, ", ") + " } from " + imp.Quote + imp.Path + imp.Quote + ";"
	m.replaced[imp.Start] = replacement{end: imp.End, lines: []string{line}}
	m.Imports[index].Names = append([]string(nil), names...)
}

// InsertAfter queues lines after line idx.
func (m *Module) InsertAfter(idx int, lines ...string) {
	if idx < 0 || idx >= len(m.lines) {
		return
	}
	m.insertAfter[idx] = append(m.insertAfter[idx], lines...)
}

// InsertBefore queues lines before line idx.
func (m *Module) InsertBefore(idx int, lines ...string) {
	if idx < 0 || idx >= len(m.lines) {
		return
	}
	m.insertBefore[idx] = append(m.insertBefore[idx], lines...)
}

// String serialises the module with all queued edits applied.
func (m *Module) String() string {
	out := make([]string, 0, len(m.lines)+8)
	for idx := 0; idx < len(m.lines); idx++ {
		out = append(out, m.insertBefore[idx]...)

		last := idx
		if rep, ok := m.replaced[idx]; ok {
			out = append(out, rep.lines...)
			last = rep.end
		} else {
			out = append(out, m.lines[idx])
		}

		for _, at := range m.afterPositions(idx, last) {
			out = append(out, m.insertAfter[at]...)
		}
		idx = last
	}
	return strings.Join(out, m.eol)
}

// afterPositions lists queued insert-after anchors within [from, to] so
// anchors inside a replaced span still fire once, in line order.
func (m *Module) afterPositions(from, to int) []int {
	var positions []int
	for at := range m.insertAfter {
		if at >= from && at <= to {
			positions = append(positions, at)
		}
	}
	sort.Ints(positions)
	return positions
}

func trimLines(lines []string) []string {
	out := make([]string, len(lines))
	for idx, line := range lines {
		out[idx] = strings.TrimSpace(line)
	}
	return out
}
