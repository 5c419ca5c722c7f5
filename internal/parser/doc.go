// Package parser turns the ember token stream into an ast.Program.
//
// The parser pulls tokens from a lexer.Lexer on demand and keeps at most a
// couple of them in a lookahead buffer; the lexer itself never rewinds.
// Every failure is returned as *Error. ParseProgram stops at the first one;
// ParseFile with Options.KeepGoing skips to the next top-level item instead.
package parser
