package eval

import (
	"fmt"
	"math"
	"strconv"
)

// Value is the runtime result of evaluating an expression (spec §3).
type Value interface {
	isValue()
	// Debug renders the value the way Show prints it: Rust-derive-Debug
	// style, e.g. Number(1.0) or Color("red").
	Debug() string
}

// Number is a numeric value.
type Number float64

// Color is a pen-color name, always one of the fixed palette.
type Color string

func (Number) isValue() {}
func (Color) isValue()  {}

// Debug renders a Number the way Rust's derive(Debug) would: integral
// values print with exactly one decimal place, others print their
// shortest round-trip decimal form.
func (n Number) Debug() string {
	f := float64(n)
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("Number(%.1f)", f)
	}
	return fmt.Sprintf("Number(%s)", strconv.FormatFloat(f, 'g', -1, 64))
}

// Debug renders a Color as Color("name").
func (c Color) Debug() string {
	return fmt.Sprintf("Color(%q)", string(c))
}
