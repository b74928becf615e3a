// Package scanner finds per-parameter override functions in Go source and
// extracts the `@editor` annotations from their doc comments.
package scanner

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/toyz/editorschema/internal/annotations"
	"github.com/toyz/editorschema/internal/inflector"
	"github.com/toyz/editorschema/internal/utils"
	"github.com/toyz/editorschema/pkg/editor"
)

const paramMarker = "ActionParam"

// Finding is one override function carrying editor annotations
type Finding struct {
	Action      string
	Param       string
	Func        string
	Position    token.Position
	Fields      []editor.Field
	Diagnostics []annotations.Diagnostic
}

// Result is the outcome of scanning a set of packages
type Result struct {
	Module   string
	Findings []Finding
}

// Overrides groups the findings by action and parameter
func (r *Result) Overrides() map[string]map[string][]editor.Field {
	out := make(map[string]map[string][]editor.Field)
	for _, f := range r.Findings {
		if out[f.Action] == nil {
			out[f.Action] = make(map[string][]editor.Field)
		}
		out[f.Action][f.Param] = append(out[f.Action][f.Param], f.Fields...)
	}
	return out
}

// Scanner loads Go packages and scans them for annotated override functions
type Scanner struct {
	dir    string
	logger editor.Logger
}

// New creates a scanner resolving patterns relative to dir
func New(dir string, logger editor.Logger) *Scanner {
	if logger == nil {
		logger = editor.NopLogger{}
	}
	return &Scanner{dir: dir, logger: logger}
}

// Scan loads the packages matching patterns and scans their syntax
func (s *Scanner) Scan(patterns ...string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  s.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, utils.WrapLoadError("packages", err)
	}

	result := &Result{}
	if module, err := utils.ModuleNameFor(s.dir); err == nil {
		result.Module = module
	} else {
		s.logger.Debug("no module found for %s: %v", s.dir, err)
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			s.logger.Warn("%s: %v", pkg.PkgPath, e)
		}

		findings := ScanFiles(pkg.Fset, pkg.Syntax...)
		for _, f := range findings {
			for _, d := range f.Diagnostics {
				s.logger.Warn("%s (%s): %v", f.Func, f.Position, d)
			}
		}
		result.Findings = append(result.Findings, findings...)
	}

	sort.SliceStable(result.Findings, func(i, j int) bool {
		a, b := result.Findings[i], result.Findings[j]
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		return a.Param < b.Param
	})

	return result, nil
}

// ScanFiles returns the annotated override functions declared in files.
// Functions without annotations are skipped.
func ScanFiles(fset *token.FileSet, files ...*ast.File) []Finding {
	var findings []Finding

	for _, file := range files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Doc == nil {
				continue
			}

			action, param, ok := SplitOverrideName(fn.Name.Name)
			if !ok {
				continue
			}

			fields, diagnostics := annotations.Parse(fn.Doc.Text())
			if len(fields) == 0 && len(diagnostics) == 0 {
				continue
			}

			finding := Finding{
				Action:      action,
				Param:       param,
				Func:        fn.Name.Name,
				Fields:      make([]editor.Field, 0, len(fields)),
				Diagnostics: diagnostics,
			}
			if fset != nil {
				finding.Position = fset.Position(fn.Pos())
			}
			for _, field := range fields {
				finding.Fields = append(finding.Fields, editor.Field{Key: field.Key, Value: field.Value})
			}

			findings = append(findings, finding)
		}
	}

	return findings
}

// SplitOverrideName splits "<actionId>ActionParam<Param>" into the action id
// and the lower-first parameter name. The full-schema override
// "<actionId>ActionParamSchema" is not a parameter override.
func SplitOverrideName(name string) (action, param string, ok bool) {
	i := strings.Index(name, paramMarker)
	if i <= 0 {
		return "", "", false
	}

	action = name[:i]
	rest := name[i+len(paramMarker):]
	if rest == "" || rest == "Schema" {
		return "", "", false
	}

	return editor.NormalizeActionID(action), inflector.LowercaseFirstLetter(rest), true
}
