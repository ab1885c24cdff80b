// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	"github.com/viant/afs"

	"lucid/internal/config"
	"lucid/internal/docpath"
	"lucid/internal/errors"
	"lucid/internal/interp"
	"lucid/internal/knowledge"
	"lucid/internal/parser"
	"lucid/internal/translate"
)

const appName = "lucid-cli"

var cfg = config.Default()

func main() {
	args, configPath, verbose, ok := parseGlobals(os.Args[1:])
	if !ok || len(args) < 1 {
		usage()
		os.Exit(2)
	}

	verbosity := 0
	if verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	loaded, err := config.Load(context.Background(), configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
	cfg = loaded
	if cfg.CLI.NoColor {
		color.NoColor = true
	}

	switch cmd := args[0]; cmd {
	case "run":
		os.Exit(cmdRun(args[1:]))
	case "ast":
		os.Exit(cmdAst(args[1:]))
	case "translate":
		os.Exit(cmdTranslate(args[1:]))
	case "reverse":
		os.Exit(cmdReverse(args[1:]))
	case "verify":
		os.Exit(cmdVerify(args[1:]))
	case "render":
		os.Exit(cmdRender(args[1:]))
	case "version":
		fmt.Printf("lucid surface %s, noema %s, translator %s\n",
			translate.SurfaceVersion, translate.DeepVersion, translate.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lucid toolchain

Usage:
  %s run <file.lc>                          Interpret a program
  %s ast <file.lc>                          Print the parsed syntax tree
  %s translate <file.lc> [-o out.json] [--proof out.json] [--map] [--noema]
                                            Translate into a Noema knowledge document
  %s reverse <doc.json> [--proof p.json]    Reconstruct Lucid text from a document
  %s verify <file.lc> <doc.json> <proof.json> [--at path]
                                            Check a translation proof
  %s render <file.noe>                      Parse Noema text and pretty-print it
  %s version                                Print language and translator versions

--verbose enables toolchain logging and --config <path> overrides the
default lucid.yaml lookup on any command.
`, appName, appName, appName, appName, appName, appName, appName)
}

// parseGlobals strips the flags valid on every subcommand. ok is false when
// --config is left without a value.
func parseGlobals(args []string) (rest []string, configPath string, verbose, ok bool) {
	configPath = config.DefaultName
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-verbose" || a == "--verbose":
			verbose = true
		case a == "-config" || a == "--config":
			if i+1 >= len(args) {
				return nil, "", false, false
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(a, "-config="):
			configPath = strings.TrimPrefix(a, "-config=")
		case strings.HasPrefix(a, "--config="):
			configPath = strings.TrimPrefix(a, "--config=")
		default:
			rest = append(rest, a)
		}
	}
	return rest, configPath, verbose, true
}

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lc>\n", appName)
		return 2
	}

	path := args[0]
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	program, err := parser.ParseSource(path, source)
	if err != nil {
		report(path, source, err)
		return 1
	}

	if _, err := interp.New(os.Stdout).Run(program); err != nil {
		report(path, source, err)
		return 1
	}
	return 0
}

func cmdAst(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s ast <file.lc>\n", appName)
		return 2
	}

	path := args[0]
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	startTime := time.Now()
	program, err := parser.ParseSource(path, source)
	if err != nil {
		report(path, source, err)
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		return 1
	}

	fmt.Println(program.String())
	color.Green("Successfully processed %s in %s", path, formatDuration(time.Since(startTime)))
	return 0
}

func cmdTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	out := fs.String("o", "", "write the document JSON to this file")
	proofOut := fs.String("proof", "", "write the proof JSON to this file")
	showMap := fs.Bool("map", false, "print the bidirectional source map")
	asNoema := fs.Bool("noema", false, "render the document as Noema text instead of JSON")

	rest, ok := parseMixed(fs, args, 1)
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: %s translate <file.lc> [-o out.json] [--proof out.json] [--map] [--noema]\n", appName)
		return 2
	}
	path := rest[0]

	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	startTime := time.Now()
	program, err := parser.ParseSource(path, source)
	if err != nil {
		report(path, source, err)
		return 1
	}

	translator := translate.NewTranslator()
	if cfg.Translator.Version != "" {
		translator.SetVersion(cfg.Translator.Version)
	}
	if !cfg.Translator.ProofLog {
		translator.Log().Disable()
	}

	result, err := translator.Translate(program, source)
	if err != nil {
		report(path, source, err)
		return 1
	}
	reportWarnings(path, source, result.Warnings)

	var rendered []byte
	if *asNoema {
		rendered = []byte(knowledge.RenderDocument(result.Document))
	} else {
		rendered, err = json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot encode document: %v\n", appName, err)
			return 1
		}
		rendered = append(rendered, '\n')
	}

	if *out != "" {
		if err := os.WriteFile(*out, rendered, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
	} else {
		fmt.Print(string(rendered))
	}

	if *proofOut != "" {
		blob, err := json.MarshalIndent(result.Proof, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot encode proof: %v\n", appName, err)
			return 1
		}
		if err := os.WriteFile(*proofOut, append(blob, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
	}

	if *showMap {
		for _, entry := range result.SourceMap.Entries() {
			fmt.Printf("%s:%d:%d -> %s\n", path, entry.Pos.Line, entry.Pos.Column, entry.Path)
		}
	}

	if *out != "" {
		color.Green("Successfully translated %s in %s", path, formatDuration(time.Since(startTime)))
	}
	return 0
}

func cmdReverse(args []string) int {
	fs := flag.NewFlagSet("reverse", flag.ExitOnError)
	proofPath := fs.String("proof", "", "verify the document against this proof JSON")

	rest, ok := parseMixed(fs, args, 1)
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: %s reverse <doc.json> [--proof p.json]\n", appName)
		return 2
	}
	docPath := rest[0]

	document, err := readDocument(docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	var proof *translate.Proof
	if *proofPath != "" {
		proof, err = readProof(*proofPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
	}

	result := translate.NewTranslator().Reverse(document, proof)
	reportWarnings(docPath, "", result.Warnings)
	fmt.Print(result.Source)

	if v := result.Verification; v != nil {
		printVerification(v)
		if !v.Passed {
			return 1
		}
	}
	return 0
}

func cmdVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	at := fs.String("at", "", "also print the document element at this path")

	rest, ok := parseMixed(fs, args, 3)
	if !ok {
		fmt.Fprintf(os.Stderr, "usage: %s verify <file.lc> <doc.json> <proof.json> [--at path]\n", appName)
		return 2
	}

	srcPath := rest[0]
	source, err := readSource(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	document, err := readDocument(rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	proof, err := readProof(rest[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	if diag := proof.Verify(source, document); diag != nil {
		fmt.Print(errors.NewErrorReporter(srcPath, source).FormatError(diag))
		color.Red("proof verification failed")
		return 1
	}

	if *at != "" {
		path, err := docpath.Parse(*at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		value, found := document.Lookup(*path)
		if !found {
			color.Red("no element at %s", path)
			return 1
		}
		blob, err := json.Marshal(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot encode element at %s: %v\n", appName, path, err)
			return 1
		}
		fmt.Printf("%s = %s\n", path, blob)
	}

	color.Green("proof verified: %s matches its knowledge document", srcPath)
	return 0
}

func cmdRender(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s render <file.noe>\n", appName)
		return 2
	}

	path := args[0]
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	document, err := knowledge.ParseSource(path, source)
	if err != nil {
		report(path, source, err)
		return 1
	}

	fmt.Println(document.String())
	return 0
}

// parseMixed parses flags both before and after the positional arguments,
// so "translate file.lc --noema" and "translate --noema file.lc" behave the
// same. It returns the positionals, failing unless exactly want remain.
func parseMixed(fs *flag.FlagSet, args []string, want int) ([]string, bool) {
	if err := fs.Parse(args); err != nil {
		return nil, false
	}
	rest := fs.Args()
	if len(rest) > want {
		positionals := rest[:want]
		if err := fs.Parse(rest[want:]); err != nil {
			return nil, false
		}
		if fs.NArg() > 0 {
			return nil, false
		}
		return positionals, true
	}
	if len(rest) != want {
		return nil, false
	}
	return rest, true
}

func readSource(path string) (string, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return string(data), nil
}

func readDocument(path string) (*knowledge.Object, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	document := knowledge.NewObject()
	if err := json.Unmarshal([]byte(data), document); err != nil {
		return nil, fmt.Errorf("%s is not a knowledge document: %w", path, err)
	}
	return document, nil
}

func readProof(path string) (*translate.Proof, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}
	proof := &translate.Proof{}
	if err := json.Unmarshal([]byte(data), proof); err != nil {
		return nil, fmt.Errorf("%s is not a translation proof: %w", path, err)
	}
	return proof, nil
}

func printVerification(v *translate.Verification) {
	if v.Passed {
		color.Green("verification passed (confidence %.2f)", v.Confidence)
	} else {
		color.Red("verification failed (confidence %.2f)", v.Confidence)
	}
	for _, diff := range v.Differences {
		fmt.Printf("  difference: %s\n", diff)
	}
}

func report(path, source string, err error) {
	if diag, ok := err.(*errors.Diagnostic); ok {
		fmt.Print(errors.NewErrorReporter(path, source).FormatError(diag))
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
}

func reportWarnings(path, source string, warnings []*errors.Diagnostic) {
	if len(warnings) == 0 {
		return
	}
	reporter := errors.NewErrorReporter(path, source)
	for _, w := range warnings {
		fmt.Print(reporter.FormatError(w))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
