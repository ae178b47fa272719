// Package proc implements the procedure table: the evaluator's mapping
// from procedure name to its declared parameters and body (spec §3).
package proc

import "github.com/cbarrick/turtlelogo/lang"

// Proc is a declared procedure: its parameter names (sigil included) and
// body, stored by value since bodies are read-only after parsing and safe
// to walk repeatedly, including recursively (spec §9).
type Proc struct {
	Params []string
	Body   lang.Body
}

// Table is the procedure table. Later declarations of the same name
// overwrite earlier ones; definitions persist for the life of the Table.
type Table struct {
	procs map[string]Proc
}

// New returns an empty procedure table.
func New() *Table {
	return &Table{procs: make(map[string]Proc)}
}

// Declare installs or overwrites the procedure named name.
func (t *Table) Declare(name string, params []string, body lang.Body) {
	t.procs[name] = Proc{Params: params, Body: body}
}

// Lookup returns the procedure named name and whether it is declared.
func (t *Table) Lookup(name string) (Proc, bool) {
	p, ok := t.procs[name]
	return p, ok
}
