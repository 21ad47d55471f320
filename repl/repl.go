// Package repl reads SysY programs interactively and prints the IR built for
// each of them.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tu10ng/racoon/internal/driver"
	"github.com/tu10ng/racoon/internal/errors"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "

	sourceName = "<repl>"
)

// Start reads from in until EOF. Lines accumulate into one program that is
// compiled at the first blank line. ":ast" on its own line prints the syntax
// tree of the pending program instead of its IR, ":reset" drops it.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var pending []string

	for {
		if len(pending) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case ":reset":
			pending = nil
		case ":ast":
			printProgram(out, strings.Join(pending, "\n"), true)
			pending = nil
		case "":
			if len(pending) > 0 {
				printProgram(out, strings.Join(pending, "\n"), false)
				pending = nil
			}
		default:
			pending = append(pending, line)
		}
	}

	if len(pending) > 0 {
		fmt.Fprintln(out)
		printProgram(out, strings.Join(pending, "\n"), false)
	}
}

func printProgram(out io.Writer, source string, astOnly bool) {
	var (
		result *driver.Result
		err    error
	)
	if astOnly {
		result, err = driver.Check(sourceName, source)
	} else {
		result, err = driver.Compile(sourceName, source)
	}

	reporter := errors.NewErrorReporter(sourceName, source)
	fmt.Fprint(out, reporter.FormatErrors(result.Warnings))
	if err != nil {
		fmt.Fprint(out, reporter.FormatErrors(result.Errors))
		return
	}

	if astOnly {
		fmt.Fprintf(out, "AST:\n%s", result.Program.String())
		return
	}
	fmt.Fprint(out, result.IR())
}
