// Package lang implements the lexer, AST, and parser for the turtle-graphics
// language: source text in, a tree of Commands out.
package lang

import "fmt"

// Kind classifies a Token.
type Kind int

// The kinds of token produced by the Lexer.
const (
	Err Kind = iota // lexical error; Text carries the message
	EOF             // end of input

	Number   // numeric literal
	Variable // :name
	Ident    // bare procedure name, not a keyword

	Plus  // +
	Minus // -
	Star  // *
	Slash // /
	Lt    // <
	Eq    // =

	ParenOpen
	ParenClose
	BracketOpen
	BracketClose

	// Control flow keywords
	KwRepeat
	KwStop
	KwIf
	KwIfElse
	KwTo
	KwEnd

	// Built-in procedures
	KwShow
	KwWait
	KwPick
	KwRandom

	// Colors
	KwRed
	KwOrange
	KwYellow
	KwGreen
	KwBlue
	KwViolet
	KwBlack

	// Canvas / pen
	KwClearscreen
	KwSetcolor
	KwForward
	KwBackward
	KwLeft
	KwRight
	KwPenUp
	KwPenDown
	KwShowTurtle
	KwHideTurtle
	KwSetTurtle
)

// keywords maps the lowercase spelling of every keyword (and alias) to its Kind.
// Longest-alias-wins is irrelevant here because each entry is matched whole —
// the lexer only consults this table once it has already scanned a full run
// of letters (see lexWord).
var keywords = map[string]Kind{
	"repeat": KwRepeat,
	"stop":   KwStop,
	"if":     KwIf,
	"ifelse": KwIfElse,
	"to":     KwTo,
	"end":    KwEnd,

	"show":   KwShow,
	"wait":   KwWait,
	"pick":   KwPick,
	"random": KwRandom,

	"red":    KwRed,
	"orange": KwOrange,
	"yellow": KwYellow,
	"green":  KwGreen,
	"blue":   KwBlue,
	"violet": KwViolet,
	"black":  KwBlack,

	"clearscreen": KwClearscreen,
	"setcolor":    KwSetcolor,

	"forward": KwForward,
	"fd":      KwForward,
	"backward": KwBackward,
	"bk":       KwBackward,
	"back":     KwBackward,
	"left":     KwLeft,
	"lt":       KwLeft,
	"right":    KwRight,
	"rt":       KwRight,

	"penup":      KwPenUp,
	"pu":         KwPenUp,
	"pendown":    KwPenDown,
	"pd":         KwPenDown,
	"showturtle": KwShowTurtle,
	"st":         KwShowTurtle,
	"hideturtle": KwHideTurtle,
	"ht":         KwHideTurtle,
	"setturtle":  KwSetTurtle,
}

// colorNames is the fixed palette recognized by setcolor and color literals.
var colorNames = map[Kind]string{
	KwRed:    "red",
	KwOrange: "orange",
	KwYellow: "yellow",
	KwGreen:  "green",
	KwBlue:   "blue",
	KwViolet: "violet",
	KwBlack:  "black",
}

// A Token is a lexical item with position information.
type Token struct {
	Kind Kind
	Text string  // original spelling; error message for Err
	Num  float64 // populated for Number
	Line int     // zero-based
	Col  int     // zero-based
}

func (t Token) String() string {
	return fmt.Sprintf("%v %q (%d:%d)", t.Kind, t.Text, t.Line, t.Col)
}

func (k Kind) String() string {
	switch k {
	case Err:
		return "error"
	case EOF:
		return "eof"
	case Number:
		return "number"
	case Variable:
		return "variable"
	case Ident:
		return "identifier"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Lt:
		return "<"
	case Eq:
		return "="
	case ParenOpen:
		return "("
	case ParenClose:
		return ")"
	case BracketOpen:
		return "["
	case BracketClose:
		return "]"
	case KwEnd:
		return "end"
	default:
		if name, ok := keywordName(k); ok {
			return name
		}
		return "token"
	}
}

func keywordName(k Kind) (string, bool) {
	for name, kind := range keywords {
		if kind == k {
			return name, true
		}
	}
	return "", false
}

// startsExpr reports whether a token of this kind can begin an expression.
// This is the predicate that drives greedy argument gathering for procedure
// calls (spec §4.2): a call consumes expressions for as long as the next
// token could start one.
func (k Kind) startsExpr() bool {
	switch k {
	case Number, Variable, ParenOpen, KwRandom, KwPick,
		KwRed, KwOrange, KwYellow, KwGreen, KwBlue, KwViolet, KwBlack:
		return true
	default:
		return false
	}
}
