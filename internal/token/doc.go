// Package token defines lexical token kinds for the ember front end.
// Invariants:
//   - Token.Text holds the literal: the exact source slice for identifiers,
//     keywords, numbers and punctuation, the unescaped contents for string
//     and char literals (delimiters excluded).
//   - Token.Loc is captured before the first byte of the token is consumed.
//   - Token.Span covers every source byte of the token, delimiters included.
//   - Comments and whitespace never appear in the token stream.
//   - The keyword set is closed: adding a keyword means extending Kind and
//     the keywords table together.
package token
