// Command logo runs the turtle-graphics interpreter: it parses a program
// from a file or an interactive session, evaluates it against a turtle,
// and writes the resulting drawing as SVG (spec §6).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/cbarrick/turtlelogo/eval"
	"github.com/cbarrick/turtlelogo/lang"
	"github.com/cbarrick/turtlelogo/turtle"
)

const prompt = ">> "

// CmdOptions are the flags accepted by the binary.
type CmdOptions struct {
	Input    string `short:"i" long:"input" description:"program source file (default: interactive stdin)"`
	Output   string `short:"o" long:"output" description:"text output file for show (default: stdout)"`
	Graphics string `short:"g" long:"graphics" default:"output.svg" description:"SVG output file"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &CmdOptions{}
	p := flags.NewParser(opts, flags.Default)
	if _, err := p.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	textOut := stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			fmt.Fprintln(stderr, errors.Wrap(err, "opening output file"))
			return 1
		}
		defer f.Close()
		textOut = f
	}

	tt := turtle.New(turtle.DefaultWidth, turtle.DefaultHeight)
	ev := eval.New(tt, textOut)

	var err error
	if opts.Input != "" {
		err = runFile(ev, opts.Input)
	} else {
		err = runInteractive(ev, stdin, textOut)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out, err := os.Create(opts.Graphics)
	if err != nil {
		fmt.Fprintln(stderr, errors.Wrap(err, "opening graphics file"))
		return 1
	}
	defer out.Close()
	if err := tt.WriteSVG(out); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runFile(ev *eval.Evaluator, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening program file")
	}
	defer f.Close()

	parser := lang.NewParser(f)
	body, err := parser.ParseProgram()
	if err != nil {
		return err
	}
	return ev.EvalProgram(body)
}

// runInteractive drives the read-eval-show loop: one line in, parsed and
// evaluated against the persistent procedure table and turtle, until
// "exit" (case-insensitive) or EOF (spec §6).
func runInteractive(ev *eval.Evaluator, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		parser := lang.NewParser(strings.NewReader(line))
		body, err := parser.ParseProgram()
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := ev.EvalProgram(body); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
