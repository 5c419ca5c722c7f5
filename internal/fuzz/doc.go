// Package fuzztests houses Go fuzz harnesses for the ember front end
// (source -> lexer -> parser). They guard against panics, hangs and
// inconsistent results on arbitrary input.
//
// Запуск: go test ./internal/fuzz -fuzz=FuzzLexerTokens
package fuzztests
