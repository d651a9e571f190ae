package ast

import (
	"fmt"
	"strings"
)

// Print renders expr as a fully-parenthesized Lisp-style string, e.g.
// `(+ 1 (* 2 3))`. It exists for debugging (the CLI's --dump-ast flag)
// and is grounded in the original implementation's AstPrinter, adapted
// from visitor dispatch to the type-switch style this AST uses elsewhere.
func Print(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *Grouping:
		return parenthesize("group", e.Inner)
	case *Unary:
		return parenthesize(e.Op.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Op.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
	case *Get:
		return parenthesize("."+e.Name.Lexeme, e.Obj)
	case *Set:
		return parenthesize("set-."+e.Name.Lexeme, e.Obj, e.Value)
	case *This:
		return "this"
	case *Super:
		return "super." + e.Method.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", expr)
	}
}

// DumpProgram renders a parsed program's top-level statements, each
// starting on its own line (compound statements span several lines, with
// nested statements indented), using Print for each statement's
// constituent expressions. It
// backs the CLI's --dump-ast debug flag.
func DumpProgram(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(dumpStmt(s, 0))
	}
	return b.String()
}

func dumpStmt(stmt Stmt, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return indent + Print(s.Expr) + "\n"
	case *PrintStmt:
		return indent + "(print " + Print(s.Expr) + ")\n"
	case *VarStmt:
		if s.Initializer == nil {
			return indent + "(var " + s.Name.Lexeme + ")\n"
		}
		return indent + "(var " + s.Name.Lexeme + " " + Print(s.Initializer) + ")\n"
	case *BlockStmt:
		var b strings.Builder
		b.WriteString(indent + "(block\n")
		for _, inner := range s.Stmts {
			b.WriteString(dumpStmt(inner, depth+1))
		}
		b.WriteString(indent + ")\n")
		return b.String()
	case *IfStmt:
		var b strings.Builder
		b.WriteString(indent + "(if " + Print(s.Cond) + "\n")
		b.WriteString(dumpStmt(s.Then, depth+1))
		if s.Else != nil {
			b.WriteString(dumpStmt(s.Else, depth+1))
		}
		b.WriteString(indent + ")\n")
		return b.String()
	case *WhileStmt:
		var b strings.Builder
		b.WriteString(indent + "(while " + Print(s.Cond) + "\n")
		b.WriteString(dumpStmt(s.Body, depth+1))
		b.WriteString(indent + ")\n")
		return b.String()
	case *FunctionStmt:
		var b strings.Builder
		b.WriteString(indent + "(fun " + s.Name.Lexeme + "\n")
		for _, inner := range s.Body {
			b.WriteString(dumpStmt(inner, depth+1))
		}
		b.WriteString(indent + ")\n")
		return b.String()
	case *ReturnStmt:
		if s.Value == nil {
			return indent + "(return)\n"
		}
		return indent + "(return " + Print(s.Value) + ")\n"
	case *ClassStmt:
		var b strings.Builder
		b.WriteString(indent + "(class " + s.Name.Lexeme + "\n")
		for _, m := range s.Methods {
			b.WriteString(dumpStmt(m, depth+1))
		}
		b.WriteString(indent + ")\n")
		return b.String()
	default:
		return indent + fmt.Sprintf("<unknown stmt %T>\n", stmt)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		b.WriteString(Print(e))
	}
	b.WriteByte(')')
	return b.String()
}
