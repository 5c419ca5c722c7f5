// Package ast defines the syntax tree produced by the ember parser.
//
// The tree is owned: every Expr exclusively owns its operands and nothing is
// shared between nodes. Variant sets (Node, Stmt, Expr) are Go interfaces so
// that new declaration and statement kinds can be added without touching the
// existing ones.
package ast
