// Package turtle implements the geometric state machine driven by the
// evaluator: position, heading, and pen state, plus the append-only drawing
// buffer and its SVG serialization.
package turtle

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// DefaultWidth and DefaultHeight size the canvas when the driver does not
// override them.
const (
	DefaultWidth  = 200.0
	DefaultHeight = 200.0
)

// Colors is the fixed palette recognized by setcolor (spec §3). Order
// matches the lexer's color keyword table.
var Colors = []string{"red", "orange", "yellow", "green", "blue", "violet", "black"}

func isValidColor(c string) bool {
	for _, want := range Colors {
		if c == want {
			return true
		}
	}
	return false
}

// Segment is one entry in the drawing buffer: the record of a single
// pen-down motion.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
}

// Turtle is the pen-carrying agent. Zero value is not usable; construct
// with New.
type Turtle struct {
	Width, Height float64

	x, y      float64
	angle     float64 // degrees, unbounded
	penActive bool
	penColor  string
	penWidth  float64

	segments []Segment
}

// New constructs a Turtle over a width x height canvas, centered, pen down,
// black, width 1, heading -90 (up on screen) per the pinned orientation
// convention (spec §9).
func New(width, height float64) *Turtle {
	return &Turtle{
		Width:     width,
		Height:    height,
		x:         width / 2,
		y:         height / 2,
		angle:     -90,
		penActive: true,
		penColor:  "black",
		penWidth:  1,
	}
}

// Position returns the turtle's current (x, y).
func (t *Turtle) Position() (float64, float64) { return t.x, t.y }

// Heading returns the current heading in degrees.
func (t *Turtle) Heading() float64 { return t.angle }

// Segments returns the drawing buffer in insertion order. The returned
// slice must not be mutated by the caller.
func (t *Turtle) Segments() []Segment { return t.segments }

// Forward moves the turtle d units along its current heading, appending a
// segment if the pen is down.
func (t *Turtle) Forward(d float64) {
	rad := t.angle * math.Pi / 180
	nx := t.x + d*math.Cos(rad)
	ny := t.y + d*math.Sin(rad)
	if t.penActive {
		t.segments = append(t.segments, Segment{
			X1: t.x, Y1: t.y, X2: nx, Y2: ny,
			Color: t.penColor, Width: t.penWidth,
		})
	}
	t.x, t.y = nx, ny
}

// Backward is equivalent to Forward(-d).
func (t *Turtle) Backward(d float64) { t.Forward(-d) }

// Right increases heading by a degrees.
func (t *Turtle) Right(a float64) { t.angle += a }

// Left decreases heading by a degrees.
func (t *Turtle) Left(a float64) { t.angle -= a }

// PenUp lifts the pen: subsequent motion updates position without drawing.
func (t *Turtle) PenUp() { t.penActive = false }

// PenDown lowers the pen.
func (t *Turtle) PenDown() { t.penActive = true }

// SetColor replaces the pen color. The name must be one of Colors.
func (t *Turtle) SetColor(name string) error {
	if !isValidColor(name) {
		return errors.Errorf("unrecognized color %q", name)
	}
	t.penColor = name
	return nil
}

// Clear empties the drawing buffer. Turtle position, heading, and pen
// state are unaffected.
func (t *Turtle) Clear() {
	t.segments = nil
}

// WriteSVG serializes the current canvas and drawing buffer per spec §6: a
// single <svg> root with one self-closing <line> per segment in insertion
// order.
func (t *Turtle) WriteSVG(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<svg width=\"%v\" height=\"%v\">\n", t.Width, t.Height)
	for _, s := range t.segments {
		fmt.Fprintf(&b, "<line x1=\"%v\" y1=\"%v\" x2=\"%v\" y2=\"%v\" stroke=\"%s\" stroke-width=\"%v\" />\n",
			s.X1, s.Y1, s.X2, s.Y2, s.Color, s.Width)
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing svg")
}
