// SPDX-License-Identifier: Apache-2.0

// Package repl is the interactive Lucid shell. Definitions persist across
// inputs, and the session so far can be re-rendered as a Noema document.
package repl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lucid/internal/config"
	"lucid/internal/errors"
	"lucid/internal/interp"
	"lucid/internal/knowledge"
	"lucid/internal/parser"
	"lucid/internal/translate"
)

const replPath = "repl"

const helpText = `REPL commands:
  :ast <code>   Print the syntax tree of a snippet without evaluating it
  :translate    Render everything evaluated so far as a Noema document
  :help         Show this help
  :quit         Exit the REPL
`

// Start runs the interactive loop until :quit or Ctrl+D. Ctrl+C cancels
// the current input line.
func Start(cfg config.REPLConfig) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(cfg.HistoryFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	interpreter := interp.New(os.Stdout)
	var session []string

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if quit := runCommand(input, session); quit {
				return
			}
			continue
		}

		program, err := parser.ParseSource(replPath, input)
		if err != nil {
			printDiagnostic(input, err)
			continue
		}

		value, err := interpreter.Run(program)
		if err != nil {
			printDiagnostic(input, err)
			continue
		}

		session = append(session, input)
		if _, isNull := value.(interp.Null); !isNull {
			fmt.Println(value.String())
		}
	}
}

func runCommand(input string, session []string) bool {
	switch {
	case input == ":quit":
		return true
	case input == ":help":
		fmt.Print(helpText)
	case input == ":translate":
		translateSession(session)
	case strings.HasPrefix(input, ":ast"):
		printAST(strings.TrimSpace(strings.TrimPrefix(input, ":ast")))
	default:
		fmt.Println("unknown command, type :help for the list")
	}
	return false
}

func printAST(code string) {
	if code == "" {
		fmt.Println("usage: :ast <code>")
		return
	}
	program, err := parser.ParseSource(replPath, code)
	if err != nil {
		printDiagnostic(code, err)
		return
	}
	fmt.Println(program.String())
}

// translateSession re-parses the lines evaluated so far as one program and
// prints its Noema rendering plus the proof hash binding the two.
func translateSession(session []string) {
	if len(session) == 0 {
		fmt.Println("nothing evaluated yet")
		return
	}

	source := strings.Join(session, "\n")
	program, err := parser.ParseSource(replPath, source)
	if err != nil {
		printDiagnostic(source, err)
		return
	}

	result, err := translate.NewTranslator().Translate(program, source)
	if err != nil {
		printDiagnostic(source, err)
		return
	}

	fmt.Print(knowledge.RenderDocument(result.Document))
	fmt.Printf("\nproof: %s\n", result.Proof.ProofHash)
}

func printDiagnostic(source string, err error) {
	if diag, ok := err.(*errors.Diagnostic); ok {
		reporter := errors.NewErrorReporter(replPath, source)
		fmt.Print(reporter.FormatError(diag))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}
