package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number represents a decimal integer literal.
	Number
	// StringLit represents a double-quoted string literal.
	StringLit
	// CharLit represents a single-quoted char literal.
	CharLit

	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwLoop represents the 'loop' keyword.
	KwLoop // loop
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwInclude represents the 'include' keyword.
	KwInclude // include
	// KwTo represents the 'to' keyword.
	KwTo // to
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwFun represents the 'fun' keyword (also spelled 'func').
	KwFun // fun
	// At introduces a variable declaration.
	At // @

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Amp     // &
	Pipe    // |
	Caret   // ^
	Bang    // !
	Shl     // <<
	Shr     // >>
	AndAnd  // &&
	OrOr    // ||
	// CaretCaret is the logical xor operator.
	CaretCaret // ^^

	Lt   // <
	LtEq // <=
	Gt   // >
	GtEq // >=
	EqEq // ==
	// BangEq represents the not-equal operator token.
	BangEq // !=

	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=

	kindCount
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Number:        "Number",
	StringLit:     "StringLit",
	CharLit:       "CharLit",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwFor:         "KwFor",
	KwWhile:       "KwWhile",
	KwLoop:        "KwLoop",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwReturn:      "KwReturn",
	KwInclude:     "KwInclude",
	KwTo:          "KwTo",
	KwIn:          "KwIn",
	KwEnum:        "KwEnum",
	KwStruct:      "KwStruct",
	KwFun:         "KwFun",
	At:            "At",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Comma:         "Comma",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	Dot:           "Dot",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Caret:         "Caret",
	Bang:          "Bang",
	Shl:           "Shl",
	Shr:           "Shr",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	CaretCaret:    "CaretCaret",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	AmpAssign:     "AmpAssign",
	PipeAssign:    "PipeAssign",
	CaretAssign:   "CaretAssign",
}

// String returns the Go-style name of the kind, e.g. "Semicolon".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether the kind is the end-of-input sentinel.
func (k Kind) IsEOF() bool { return k == EOF }

// IsKeyword reports whether the kind belongs to the keyword set.
func (k Kind) IsKeyword() bool { return k >= KwIf && k <= At }

// IsAssignOp reports whether the kind is '=' or a compound assignment.
func (k Kind) IsAssignOp() bool { return k >= Assign && k <= CaretAssign }

// IsLiteral reports whether the kind carries a literal value.
func (k Kind) IsLiteral() bool {
	switch k {
	case Number, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the kind is punctuation or an operator.
func (k Kind) IsPunctOrOp() bool { return k >= LParen && k < kindCount }
