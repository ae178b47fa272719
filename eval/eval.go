// Package eval implements the tree-walking evaluator: it drives the
// procedure table, the turtle, and variable scope over a parsed command
// tree (spec §4.3).
package eval

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/cbarrick/turtlelogo/lang"
	"github.com/cbarrick/turtlelogo/proc"
	"github.com/cbarrick/turtlelogo/scope"
	"github.com/cbarrick/turtlelogo/turtle"
)

// ErrStop is the distinguished non-local exit signal (spec §9). It is
// never surfaced to a user as a failure: EvalProgram swallows it at the
// top level, and evalFunctionCall swallows it at every procedure
// boundary. Never treat errors.Is(err, ErrStop) as a fatal run.
var ErrStop = errors.New("stop")

// Evaluator owns the procedure table and the turtle for one session; both
// persist across calls to EvalProgram the way an interactive session's
// state persists across lines (spec §6).
type Evaluator struct {
	Procs  *proc.Table
	Turtle *turtle.Turtle
	Out    io.Writer
}

// New constructs an Evaluator over a fresh procedure table.
func New(t *turtle.Turtle, out io.Writer) *Evaluator {
	return &Evaluator{Procs: proc.New(), Turtle: t, Out: out}
}

// EvalProgram evaluates body under the top-level scope, which is always
// empty (spec §9). A Stop raised at the top level terminates cleanly,
// not as an error.
func (e *Evaluator) EvalProgram(body lang.Body) error {
	err := e.evalBody(body, scope.New[Value]())
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (e *Evaluator) evalBody(body lang.Body, sc *scope.Scope[Value]) error {
	for _, cmd := range body {
		if err := e.evalCommand(cmd, sc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalCommand(cmd lang.Command, sc *scope.Scope[Value]) error {
	switch c := cmd.(type) {
	case lang.Forward:
		d, err := e.evalNumber(c.X, sc)
		if err != nil {
			return err
		}
		e.Turtle.Forward(d)
		return nil

	case lang.Backward:
		d, err := e.evalNumber(c.X, sc)
		if err != nil {
			return err
		}
		e.Turtle.Backward(d)
		return nil

	case lang.Right:
		a, err := e.evalNumber(c.X, sc)
		if err != nil {
			return err
		}
		e.Turtle.Right(a)
		return nil

	case lang.Left:
		a, err := e.evalNumber(c.X, sc)
		if err != nil {
			return err
		}
		e.Turtle.Left(a)
		return nil

	case lang.PenUp:
		e.Turtle.PenUp()
		return nil
	case lang.PenDown:
		e.Turtle.PenDown()
		return nil
	case lang.Clearscreen:
		e.Turtle.Clear()
		return nil

	case lang.ShowTurtle, lang.HideTurtle, lang.SetTurtle, lang.Wait:
		return nil

	case lang.Setcolor:
		v, err := e.evalExpr(c.X, sc)
		if err != nil {
			return err
		}
		col, ok := v.(Color)
		if !ok {
			return errors.Errorf("setcolor requires a color, got %s", v.Debug())
		}
		if err := e.Turtle.SetColor(string(col)); err != nil {
			return err
		}
		return nil

	case lang.Show:
		v, err := e.evalExpr(c.X, sc)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Out, v.Debug())
		return nil

	case lang.Repeat:
		n, err := e.evalNumber(c.N, sc)
		if err != nil {
			return err
		}
		count := int(math.Floor(n))
		for i := 0; i < count; i++ {
			if err := e.evalBody(c.Body, sc); err != nil {
				return err
			}
		}
		return nil

	case lang.If:
		cond, err := e.evalNumber(c.Cond, sc)
		if err != nil {
			return err
		}
		if cond != 0 {
			return e.evalBody(c.Body, sc)
		}
		return nil

	case lang.IfElse:
		cond, err := e.evalNumber(c.Cond, sc)
		if err != nil {
			return err
		}
		if cond != 0 {
			return e.evalBody(c.Then, sc)
		}
		return e.evalBody(c.Else, sc)

	case lang.Stop:
		return ErrStop

	case lang.FunctionDeclaration:
		e.Procs.Declare(c.Name, c.Params, c.Body)
		return nil

	case lang.FunctionCall:
		return e.evalFunctionCall(c, sc)

	default:
		return errors.Errorf("unhandled command %T", cmd)
	}
}

func (e *Evaluator) evalFunctionCall(c lang.FunctionCall, caller *scope.Scope[Value]) error {
	p, ok := e.Procs.Lookup(c.Name)
	if !ok {
		return errors.Errorf("undefined procedure %q", c.Name)
	}
	if len(c.Args) != len(p.Params) {
		return errors.Errorf("procedure %q expects %d argument(s), got %d", c.Name, len(p.Params), len(c.Args))
	}

	callee := scope.New[Value]()
	for i, param := range p.Params {
		v, err := e.evalExpr(c.Args[i], caller)
		if err != nil {
			return err
		}
		callee.Bind(param, v)
	}

	err := e.evalBody(p.Body, callee)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (e *Evaluator) evalNumber(expr lang.Expr, sc *scope.Scope[Value]) (float64, error) {
	v, err := e.evalExpr(expr, sc)
	if err != nil {
		return 0, err
	}
	n, ok := v.(Number)
	if !ok {
		return 0, errors.Errorf("expected a number, got %s", v.Debug())
	}
	return float64(n), nil
}

func (e *Evaluator) evalExpr(expr lang.Expr, sc *scope.Scope[Value]) (Value, error) {
	switch x := expr.(type) {
	case lang.Number:
		return Number(x), nil

	case lang.Var:
		v, ok := sc.Lookup(x.Name)
		if !ok {
			return nil, errors.Errorf("undefined variable %q", x.Name)
		}
		return v, nil

	case lang.ColorLit:
		return Color(x.Name), nil

	case lang.Neg:
		n, err := e.evalNumber(x.X, sc)
		if err != nil {
			return nil, err
		}
		return Number(-n), nil

	case lang.Bin:
		return e.evalBin(x, sc)

	case lang.Rand:
		n, err := e.evalNumber(x.X, sc)
		if err != nil {
			return nil, err
		}
		bound := int(math.Floor(n))
		if bound <= 0 {
			return nil, errors.Errorf("random requires a positive bound, got %v", n)
		}
		return Number(rand.Intn(bound)), nil

	case lang.Pick:
		if len(x.Elems) == 0 {
			return nil, errors.New("pick on an empty list")
		}
		i := rand.Intn(len(x.Elems))
		return e.evalExpr(x.Elems[i], sc)

	default:
		return nil, errors.Errorf("unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalBin(b lang.Bin, sc *scope.Scope[Value]) (Value, error) {
	x, err := e.evalNumber(b.X, sc)
	if err != nil {
		return nil, err
	}
	y, err := e.evalNumber(b.Y, sc)
	if err != nil {
		return nil, err
	}
	switch b.Op {
	case lang.OpAdd:
		return Number(x + y), nil
	case lang.OpSub:
		return Number(x - y), nil
	case lang.OpMul:
		return Number(x * y), nil
	case lang.OpDiv:
		if y == 0 {
			return nil, errors.New("division by zero")
		}
		return Number(x / y), nil
	case lang.OpLt:
		if x < y {
			return Number(1), nil
		}
		return Number(0), nil
	case lang.OpEq:
		if x == y {
			return Number(1), nil
		}
		return Number(0), nil
	default:
		return nil, errors.Errorf("unhandled operator %v", b.Op)
	}
}
