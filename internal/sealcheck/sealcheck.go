// Package sealcheck reports Go-side mutation of types whose values are
// meant to stay frozen.
//
// A type opts in through the seal:immutable directive in its doc comment:
//
//	//seal:immutable
//	type Config struct{ ... }
//
// The analyzer reports writes to fields of marked values, writes through
// pointers captured from their fields, increments and decrements, and
// reassignment of whole marked values. Copies read out of containers stay
// writable, matching the runtime rule that Copy and DeepCopy return plain
// containers. A finding is waived by an inline seal:allow comment on the
// offending line.
package sealcheck

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

const (
	markDirective  = "//seal:immutable"
	allowDirective = "//seal:allow"
)

var Analyzer = &analysis.Analyzer{
	Name: "sealcheck",
	Doc:  "report mutations of types marked //seal:immutable",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	c := &checker{
		pass:    pass,
		marked:  make(map[string]token.Pos),
		copies:  make(map[types.Object]bool),
		aliases: make(map[types.Object]string),
	}
	c.collectMarked()
	c.collectCopiesAndAliases()
	c.report()
	return nil, nil
}

type checker struct {
	pass   *analysis.Pass
	marked map[string]token.Pos

	// copies holds variables assigned by value out of a container; writing
	// to one touches nothing shared.
	copies map[types.Object]bool

	// aliases maps pointer variables captured from a marked value's field
	// to that value's type name.
	aliases map[types.Object]string
}

func (c *checker) collectMarked() {
	for _, file := range c.pass.Files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if hasDirective(gen.Doc, markDirective) || hasDirective(ts.Doc, markDirective) {
					c.marked[ts.Name.Name] = ts.Pos()
				}
			}
		}
	}
}

func hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}
	for _, cmt := range doc.List {
		if strings.HasPrefix(strings.TrimSpace(cmt.Text), directive) {
			return true
		}
	}
	return false
}

func (c *checker) collectCopiesAndAliases() {
	for _, file := range c.pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			assign, ok := n.(*ast.AssignStmt)
			if !ok || (assign.Tok != token.DEFINE && assign.Tok != token.ASSIGN) {
				return true
			}
			for i, rhs := range assign.Rhs {
				if i >= len(assign.Lhs) {
					break
				}
				ident, ok := assign.Lhs[i].(*ast.Ident)
				if !ok {
					continue
				}
				obj := c.pass.TypesInfo.ObjectOf(ident)
				if obj == nil {
					continue
				}
				if _, isIndex := stripParens(rhs).(*ast.IndexExpr); isIndex {
					if _, isPtr := obj.Type().(*types.Pointer); !isPtr && c.markedType(obj.Type()) != "" {
						c.copies[obj] = true
					}
					continue
				}
				if name := c.addressedField(rhs); name != "" {
					c.aliases[obj] = name
				}
			}
			return true
		})
	}
}

// addressedField matches &v.Field, possibly behind parens or a pointer
// conversion, where v is of a marked type.
func (c *checker) addressedField(expr ast.Expr) string {
	expr = stripParens(expr)
	if call, ok := expr.(*ast.CallExpr); ok && len(call.Args) == 1 {
		return c.addressedField(call.Args[0])
	}
	unary, ok := expr.(*ast.UnaryExpr)
	if !ok || unary.Op != token.AND {
		return ""
	}
	sel, ok := stripParens(unary.X).(*ast.SelectorExpr)
	if !ok {
		return ""
	}
	return c.markedType(c.pass.TypesInfo.TypeOf(sel.X))
}

func (c *checker) report() {
	for _, file := range c.pass.Files {
		comments := file.Comments
		ast.Inspect(file, func(n ast.Node) bool {
			switch stmt := n.(type) {
			case *ast.AssignStmt:
				if stmt.Tok == token.DEFINE || c.allowed(stmt.Pos(), comments) {
					return true
				}
				for _, lhs := range stmt.Lhs {
					c.checkWrite(stmt.Pos(), lhs)
				}
			case *ast.IncDecStmt:
				if c.allowed(stmt.Pos(), comments) {
					return true
				}
				if name := c.mutated(stmt.X); name != "" {
					c.pass.Reportf(stmt.Pos(), "write to immutable %s value", name)
				}
			}
			return true
		})
	}
}

func (c *checker) checkWrite(pos token.Pos, lhs ast.Expr) {
	if ident, ok := lhs.(*ast.Ident); ok {
		obj := c.pass.TypesInfo.ObjectOf(ident)
		if obj == nil || c.copies[obj] {
			return
		}
		// Repointing a pointer variable reads nothing and writes nothing
		// through it.
		if _, isPtr := obj.Type().(*types.Pointer); isPtr {
			return
		}
		if name := c.markedType(obj.Type()); name != "" {
			c.pass.Reportf(pos, "reassignment of immutable %s value", name)
		}
		return
	}
	if name := c.mutated(lhs); name != "" {
		c.pass.Reportf(pos, "write to immutable %s value", name)
	}
}

// mutated reports the marked type a write to expr would modify, or "" when
// the write is fine. The walk follows the base of selectors, indexes and
// dereferences, so writes reached through containers and pointers are
// caught wherever a marked type sits on the path.
func (c *checker) mutated(expr ast.Expr) string {
	expr = stripParens(expr)
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		if base, ok := stripParens(e.X).(*ast.Ident); ok {
			if obj := c.pass.TypesInfo.ObjectOf(base); obj != nil && c.copies[obj] {
				return ""
			}
		}
		if name := c.markedType(c.pass.TypesInfo.TypeOf(e.X)); name != "" {
			return name
		}
		return c.mutated(e.X)
	case *ast.IndexExpr:
		if name := c.markedType(c.pass.TypesInfo.TypeOf(e)); name != "" {
			return name
		}
		return c.mutated(e.X)
	case *ast.StarExpr:
		if ident, ok := stripParens(e.X).(*ast.Ident); ok {
			if obj := c.pass.TypesInfo.ObjectOf(ident); obj != nil {
				if name, ok := c.aliases[obj]; ok {
					return name
				}
			}
		}
		if name := c.markedType(c.pass.TypesInfo.TypeOf(e)); name != "" {
			return name
		}
		return c.mutated(e.X)
	}
	return ""
}

func (c *checker) allowed(pos token.Pos, comments []*ast.CommentGroup) bool {
	line := c.pass.Fset.Position(pos).Line
	for _, cg := range comments {
		for _, cmt := range cg.List {
			if strings.HasPrefix(cmt.Text, allowDirective) && c.pass.Fset.Position(cmt.Pos()).Line == line {
				return true
			}
		}
	}
	return false
}

// markedType names the marked type typ resolves to, looking through one
// level of pointer, or "" when typ is not marked.
func (c *checker) markedType(typ types.Type) string {
	if typ == nil {
		return ""
	}
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = ptr.Elem()
	}
	named, ok := typ.(*types.Named)
	if !ok {
		return ""
	}
	name := named.Obj().Name()
	if _, ok := c.marked[name]; ok {
		return name
	}
	return ""
}

func stripParens(expr ast.Expr) ast.Expr {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = paren.X
	}
}
