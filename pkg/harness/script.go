package harness

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

const (
	entrypoint     = "Run"
	entrypointExpr = "main." + entrypoint
	paramsName     = "params"
)

// runFunc is the compiled shape of a script unit.
type runFunc = func(unit.Params) any

// voidCalls are calls known to produce no value, so a trailing call to one
// of them is kept as a statement instead of becoming the return value. Other
// calls without results are found by the trial compile.
var voidCalls = map[string]bool{
	HostPackage + ".Return": true,
	HostPackage + ".Log":    true,
	"fmt.Print":             true,
	"fmt.Println":           true,
	"fmt.Printf":            true,
}

type scriptEngine struct {
	src string
	// imports are the allowed packages the source imports. Only these get
	// symbol tables in a run's interpreter.
	imports []string
}

// prepareScript checks text against the allow-list and returns a complete
// package main source. Body-form text is wrapped into Run; valueTail decides
// whether a trailing call becomes the return value.
func prepareScript(text string, allowed []string, valueTail bool) (string, error) {
	if isFileForm(text) {
		return checkFile(text, allowed)
	}
	return wrapBody(text, allowed, valueTail)
}

func checkFile(text string, allowed []string) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "unit.go", text, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if file.Name.Name != "main" {
		return "", fmt.Errorf("%w: package %s", ErrMissingEntrypoint, file.Name.Name)
	}
	if err := checkImports(file, allowed); err != nil {
		return "", err
	}
	if err := checkStatements(file); err != nil {
		return "", err
	}

	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil && fn.Name.Name == entrypoint {
			return text, nil
		}
	}
	return "", ErrMissingEntrypoint
}

func checkImports(file *ast.File, allowed []string) error {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCompile, err)
		}
		if p != HostPackage && !slices.Contains(allowed, p) {
			return fmt.Errorf("%w: %q", ErrForbiddenImport, p)
		}
	}
	return nil
}

// checkStatements rejects go statements, empty selects and for loops with
// no condition and no way out. Units run synchronously and must not leave
// work behind, and a cancelled run cannot stop a spinning interpreter.
func checkStatements(file *ast.File) error {
	var bad error
	labeled := map[*ast.ForStmt]bool{}
	ast.Inspect(file, func(n ast.Node) bool {
		if bad != nil {
			return false
		}
		switch s := n.(type) {
		case *ast.GoStmt:
			bad = fmt.Errorf("%w: go statement", ErrForbiddenStatement)
		case *ast.SelectStmt:
			if len(s.Body.List) == 0 {
				bad = fmt.Errorf("%w: empty select", ErrForbiddenStatement)
			}
		case *ast.LabeledStmt:
			if loop, ok := s.Stmt.(*ast.ForStmt); ok {
				labeled[loop] = true
				if endless(loop, s.Label.Name) {
					bad = fmt.Errorf("%w: for loop never exits", ErrForbiddenStatement)
				}
			}
		case *ast.ForStmt:
			if !labeled[s] && endless(s, "") {
				bad = fmt.Errorf("%w: for loop never exits", ErrForbiddenStatement)
			}
		}
		return bad == nil
	})
	return bad
}

// endless reports whether loop has no condition and its body has no return,
// goto, panic or break that leaves it.
func endless(loop *ast.ForStmt, label string) bool {
	if loop.Cond != nil {
		return false
	}
	exits := false
	var walk func(root ast.Node, inner bool)
	walk = func(root ast.Node, inner bool) {
		ast.Inspect(root, func(n ast.Node) bool {
			if exits {
				return false
			}
			switch s := n.(type) {
			case *ast.FuncLit:
				return false
			case *ast.ReturnStmt:
				exits = true
			case *ast.CallExpr:
				if id, ok := s.Fun.(*ast.Ident); ok && id.Name == "panic" {
					exits = true
				}
			case *ast.BranchStmt:
				switch {
				case s.Tok == token.GOTO:
					exits = true
				case s.Tok == token.BREAK && s.Label != nil:
					exits = s.Label.Name == label
				case s.Tok == token.BREAK:
					exits = !inner
				}
			case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
				if n != root {
					walk(n, true)
					return false
				}
			}
			return !exits
		})
	}
	walk(loop.Body, false)
	return !exits
}

// stdImports lists the imports of a prepared source other than the host
// package.
func stdImports(src string) ([]string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), "unit.go", src, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	var out []string
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCompile, err)
		}
		if p != HostPackage {
			out = append(out, p)
		}
	}
	return out, nil
}

// wrapBody turns statements into package main with func Run. Allowed packages
// referenced by the body are imported, and a trailing expression becomes the
// return value. With valueTail false a trailing call stays a statement, for
// calls to functions without results.
func wrapBody(text string, allowed []string, valueTail bool) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptySource
	}

	wrapped := "package main\n\nfunc " + entrypoint + "(" + paramsName + " " + HostPackage + ".Params) any {\n" + text + "\n}\n"

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "unit.go", wrapped, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if err := checkStatements(file); err != nil {
		return "", err
	}

	byName := make(map[string]string, len(allowed))
	for _, p := range allowed {
		byName[path.Base(p)] = p
	}

	imports := []string{HostPackage}
	for _, ident := range file.Unresolved {
		if p, ok := byName[ident.Name]; ok && !slices.Contains(imports, p) {
			imports = append(imports, p)
		}
	}
	slices.Sort(imports)

	run := file.Decls[len(file.Decls)-1].(*ast.FuncDecl)
	run.Body.List = explicitReturn(run.Body.List, run.Body.Rbrace, valueTail)

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompile, err)
	}

	var out strings.Builder
	out.WriteString("package main\n\nimport (\n")
	for _, p := range imports {
		out.WriteString("\t" + strconv.Quote(p) + "\n")
	}
	out.WriteString(")\n")
	out.WriteString(strings.TrimPrefix(buf.String(), "package main\n"))
	return out.String(), nil
}

// explicitReturn rewrites a trailing value expression into a return and
// makes every other body end in return nil.
func explicitReturn(body []ast.Stmt, end token.Pos, valueTail bool) []ast.Stmt {
	if n := len(body); n > 0 {
		switch last := body[n-1].(type) {
		case *ast.ReturnStmt:
			return body
		case *ast.ExprStmt:
			_, isCall := last.X.(*ast.CallExpr)
			if !isVoidCall(last.X) && (valueTail || !isCall) {
				body[n-1] = &ast.ReturnStmt{Return: last.Pos(), Results: []ast.Expr{last.X}}
				return body
			}
		}
	}
	return append(body, &ast.ReturnStmt{Return: end, Results: []ast.Expr{&ast.Ident{NamePos: end, Name: "nil"}}})
}

func isVoidCall(e ast.Expr) bool {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return false
	}
	if id, ok := call.Fun.(*ast.Ident); ok {
		return id.Name == "panic"
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && voidCalls[pkg.Name+"."+sel.Sel.Name]
}

// interpreter builds a fresh yaegi interpreter for one run. Output of the
// unit goes to the run logger at debug level.
func (e *scriptEngine) interpreter(rt *runtime, p unit.Params, c *capture) (*interp.Interpreter, []*logger.Writer, error) {
	stdout := logger.NewWriter(rt.log, slog.LevelDebug, "unit output", logger.Stream("stdout"))
	stderr := logger.NewWriter(rt.log, slog.LevelDebug, "unit output", logger.Stream("stderr"))

	i := interp.New(interp.Options{Stdout: stdout, Stderr: stderr})
	if err := i.Use(allowedSymbols(e.imports)); err != nil {
		return nil, nil, err
	}
	if err := i.Use(hostSymbols(rt, p, c)); err != nil {
		return nil, nil, err
	}
	return i, []*logger.Writer{stdout, stderr}, nil
}

// compile evaluates the source and resolves Run to its Go function value.
func (e *scriptEngine) compile(rt *runtime, p unit.Params, c *capture) (runFunc, []*logger.Writer, error) {
	i, writers, err := e.interpreter(rt, p, c)
	if err != nil {
		return nil, nil, err
	}
	if _, err := i.Eval(e.src); err != nil {
		return nil, writers, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	v, err := i.Eval(entrypointExpr)
	if err != nil {
		return nil, writers, fmt.Errorf("%w: %w", ErrMissingEntrypoint, err)
	}
	fn, ok := v.Interface().(runFunc)
	if !ok {
		return nil, writers, fmt.Errorf("%w: Run has type %s", ErrMissingEntrypoint, v.Type())
	}
	return fn, writers, nil
}

// exec compiles the unit into a fresh interpreter and calls Run on its own
// goroutine so a cancelled context returns promptly.
func (e *scriptEngine) exec(ctx context.Context, rt *runtime, p unit.Params) (any, error) {
	c := &capture{}
	fn, writers, err := e.compile(rt, p, c)
	defer func() {
		for _, w := range writers {
			w.Flush()
		}
	}()
	if err != nil {
		return nil, err
	}

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()
		v := fn(p)
		if c.called {
			v = c.value
		}
		done <- outcome{value: v}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
