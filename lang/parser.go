package lang

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// A Parser consumes a token stream and builds a command tree. It performs
// one-token putback, buffering re-inserted tokens at the front the way the
// statement parser needs to push back a closing bracket or `end` for its
// caller to consume (spec §4.2).
type Parser struct {
	toks <-chan Token
	buf  []Token // pushback stack, top = most recently pushed
}

// NewParser constructs a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{toks: Lex(r)}
}

func (p *Parser) next() Token {
	if n := len(p.buf); n > 0 {
		t := p.buf[n-1]
		p.buf = p.buf[:n-1]
		return t
	}
	return <-p.toks
}

func (p *Parser) pushback(t Token) {
	p.buf = append(p.buf, t)
}

func (p *Parser) peek() Token {
	t := p.next()
	p.pushback(t)
	return t
}

func perr(tok Token, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Errorf("%d:%d: %s", tok.Line+1, tok.Col+1, msg)
}

// ParseProgram parses a full program: a sequence of commands running to EOF.
func (p *Parser) ParseProgram() (Body, error) {
	body, tok, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if tok.Kind != EOF {
		return nil, perr(tok, "unexpected %v %q", tok.Kind, tok.Text)
	}
	return body, nil
}

// parseBody parses commands until it hits a BracketClose, KwEnd, or EOF. The
// terminating token is pushed back and also returned so the caller can
// validate which terminator it expected.
func (p *Parser) parseBody() (Body, Token, error) {
	var body Body
	for {
		tok := p.peek()
		if tok.Kind == BracketClose || tok.Kind == KwEnd || tok.Kind == EOF {
			return body, tok, nil
		}
		cmd, err := p.parseStatement()
		if err != nil {
			return nil, Token{}, err
		}
		body = append(body, cmd)
	}
}

// parseBracketBody parses `[ ... ]`, consuming both brackets.
func (p *Parser) parseBracketBody() (Body, error) {
	open := p.next()
	if open.Kind != BracketOpen {
		return nil, perr(open, "expected '[', found %v %q", open.Kind, open.Text)
	}
	body, tok, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if tok.Kind != BracketClose {
		return nil, perr(tok, "missing ']'")
	}
	p.next() // consume ']'
	return body, nil
}

func (p *Parser) parseStatement() (Command, error) {
	tok := p.next()
	switch tok.Kind {
	case KwForward:
		x, err := p.parseExpr()
		return Forward{x}, err
	case KwBackward:
		x, err := p.parseExpr()
		return Backward{x}, err
	case KwRight:
		x, err := p.parseExpr()
		return Right{x}, err
	case KwLeft:
		x, err := p.parseExpr()
		return Left{x}, err
	case KwShow:
		x, err := p.parseExpr()
		return Show{x}, err
	case KwWait:
		x, err := p.parseExpr()
		return Wait{x}, err
	case KwSetcolor:
		x, err := p.parseExpr()
		return Setcolor{x}, err

	case KwStop:
		return Stop{}, nil
	case KwPenUp:
		return PenUp{}, nil
	case KwPenDown:
		return PenDown{}, nil
	case KwClearscreen:
		return Clearscreen{}, nil
	case KwShowTurtle:
		return ShowTurtle{}, nil
	case KwHideTurtle:
		return HideTurtle{}, nil
	case KwSetTurtle:
		return SetTurtle{}, nil

	case KwRepeat:
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBracketBody()
		if err != nil {
			return nil, err
		}
		return Repeat{N: n, Body: body}, nil

	case KwIf:
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBracketBody()
		if err != nil {
			return nil, err
		}
		return If{Cond: cond, Body: body}, nil

	case KwIfElse:
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		thenBody, err := p.parseBracketBody()
		if err != nil {
			return nil, err
		}
		elseBody, err := p.parseBracketBody()
		if err != nil {
			return nil, err
		}
		return IfElse{Cond: cond, Then: thenBody, Else: elseBody}, nil

	case KwTo:
		return p.parseFunctionDeclaration()

	case Ident:
		return p.parseFunctionCall(tok.Text)

	case Err:
		return nil, errors.New(tok.Text)

	default:
		return nil, perr(tok, "unexpected %v %q in statement position", tok.Kind, tok.Text)
	}
}

func (p *Parser) parseFunctionDeclaration() (Command, error) {
	name := p.next()
	if name.Kind != Ident {
		return nil, perr(name, "expected procedure name after 'to', found %v %q", name.Kind, name.Text)
	}

	var params []string
	for p.peek().Kind == Variable {
		params = append(params, p.next().Text)
	}

	body, tok, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	if tok.Kind != KwEnd {
		return nil, perr(tok, "missing 'end' for procedure %q", name.Text)
	}
	p.next() // consume 'end'

	return FunctionDeclaration{Name: name.Text, Params: params, Body: body}, nil
}

// parseFunctionCall gathers expressions greedily: it keeps parsing arguments
// for as long as the next token can begin an expression (spec §4.2). This is
// an unchecked contract — a trailing numeric literal intended for the next
// command will be swallowed as an argument instead.
func (p *Parser) parseFunctionCall(name string) (Command, error) {
	var args []Expr
	for p.peek().Kind.startsExpr() {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return FunctionCall{Name: name, Args: args}, nil
}

// Expression parser
// --------------------------------------------------
// Pratt-style precedence climbing, lowest to highest:
//   comparison < additive < multiplicative < unary/atom

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case Lt:
			p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpLt, X: left, Y: right}
		case Eq:
			p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpEq, X: left, Y: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case Plus:
			p.next()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpAdd, X: left, Y: right}
		case Minus:
			p.next()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpSub, X: left, Y: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case Star:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpMul, X: left, Y: right}
		case Slash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Bin{Op: OpDiv, X: left, Y: right}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case Minus:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg{X: x}, nil
	case KwRandom:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Rand{X: x}, nil
	case KwPick:
		p.next()
		return p.parsePick()
	default:
		return p.parseAtom()
	}
}

func (p *Parser) parsePick() (Expr, error) {
	open := p.next()
	if open.Kind != BracketOpen {
		return nil, perr(open, "expected '[' after 'pick', found %v %q", open.Kind, open.Text)
	}
	var elems []Expr
	for p.peek().Kind != BracketClose {
		if p.peek().Kind == EOF {
			return nil, perr(p.peek(), "missing ']' in pick list")
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	p.next() // consume ']'
	return Pick{Elems: elems}, nil
}

func (p *Parser) parseAtom() (Expr, error) {
	tok := p.next()
	switch tok.Kind {
	case Number:
		return Number(tok.Num), nil
	case Variable:
		return Var{Name: tok.Text}, nil
	case KwRed, KwOrange, KwYellow, KwGreen, KwBlue, KwViolet, KwBlack:
		return ColorLit{Name: colorNames[tok.Kind]}, nil
	case ParenOpen:
		e, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		close := p.next()
		if close.Kind != ParenClose {
			return nil, perr(close, "missing ')'")
		}
		return e, nil
	case Err:
		return nil, errors.New(tok.Text)
	default:
		return nil, perr(tok, "expected an expression, found %v %q", tok.Kind, tok.Text)
	}
}
