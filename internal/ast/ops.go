package ast

import "fmt"

// Op is a binary operator.
type Op uint8

const (
	OpAdd Op = iota + 1 // +
	OpSub               // -
	OpMul               // *
	OpDiv               // /
	OpMod               // %
	OpBitAnd            // &
	OpBitOr             // |
	OpBitXor            // ^
	OpShl               // <<
	OpShr               // >>
	OpLogicalAnd        // &&
	OpLogicalOr         // ||
	OpLogicalXor        // ^^
)

var opText = [...]string{
	OpAdd:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpMod:        "%",
	OpBitAnd:     "&",
	OpBitOr:      "|",
	OpBitXor:     "^",
	OpShl:        "<<",
	OpShr:        ">>",
	OpLogicalAnd: "&&",
	OpLogicalOr:  "||",
	OpLogicalXor: "^^",
}

func (op Op) String() string {
	if int(op) < len(opText) && opText[op] != "" {
		return opText[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// ParseOp maps operator text to Op.
// Unknown text is an internal consistency failure and panics.
func ParseOp(text string) Op {
	for op, s := range opText {
		if s != "" && s == text {
			return Op(op)
		}
	}
	panic(fmt.Sprintf("ast: unknown binary operator %q", text))
}

// AssignOp is '=' or a compound assignment operator.
type AssignOp uint8

const (
	AssignEq     AssignOp = iota + 1 // =
	AssignAdd                        // +=
	AssignSub                        // -=
	AssignMul                        // *=
	AssignDiv                        // /=
	AssignMod                        // %=
	AssignBitAnd                     // &=
	AssignBitOr                      // |=
	AssignBitXor                     // ^=
)

var assignOpText = [...]string{
	AssignEq:     "=",
	AssignAdd:    "+=",
	AssignSub:    "-=",
	AssignMul:    "*=",
	AssignDiv:    "/=",
	AssignMod:    "%=",
	AssignBitAnd: "&=",
	AssignBitOr:  "|=",
	AssignBitXor: "^=",
}

func (op AssignOp) String() string {
	if int(op) < len(assignOpText) && assignOpText[op] != "" {
		return assignOpText[op]
	}
	return fmt.Sprintf("AssignOp(%d)", uint8(op))
}

// Binary returns the arithmetic operator a compound assignment applies,
// and false for plain '='.
func (op AssignOp) Binary() (Op, bool) {
	switch op {
	case AssignAdd:
		return OpAdd, true
	case AssignSub:
		return OpSub, true
	case AssignMul:
		return OpMul, true
	case AssignDiv:
		return OpDiv, true
	case AssignMod:
		return OpMod, true
	case AssignBitAnd:
		return OpBitAnd, true
	case AssignBitOr:
		return OpBitOr, true
	case AssignBitXor:
		return OpBitXor, true
	default:
		return 0, false
	}
}

// ParseAssignOp maps assignment operator text to AssignOp; panics on unknown text.
func ParseAssignOp(text string) AssignOp {
	for op, s := range assignOpText {
		if s != "" && s == text {
			return AssignOp(op)
		}
	}
	panic(fmt.Sprintf("ast: unknown assignment operator %q", text))
}

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota + 1 // -
	UnaryNot                    // !
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return fmt.Sprintf("UnaryOp(%d)", uint8(op))
	}
}

// ParseUnaryOp maps "-" and "!"; panics on anything else.
func ParseUnaryOp(text string) UnaryOp {
	switch text {
	case "-":
		return UnaryNeg
	case "!":
		return UnaryNot
	}
	panic(fmt.Sprintf("ast: unknown unary operator %q", text))
}
