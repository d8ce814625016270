// Command able runs scripts: `able path/to/file.scr`, `able run` (manifest-
// driven), `able repl`, or `able deps`.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nailuj29/language/pkg/driver"
	"github.com/nailuj29/language/pkg/interpreter"
	"github.com/nailuj29/language/pkg/lexer"
	"github.com/nailuj29/language/pkg/parser"
)

const cliVersion = "able 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Must pass only a single file")
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V":
		fmt.Println(cliVersion)
		return 0
	case "repl":
		return runRepl()
	case "deps":
		return runDeps()
	case "run":
		return runCommand(args[1:])
	default:
		return runCommand(args)
	}
}

func printUsage() {
	fmt.Println(strings.TrimSpace(`
usage:
  able <file.scr>     run a script
  able run            run the project.yml entry script
  able run <file.scr>
  able repl           start an interactive session
  able deps           clone remote imports named by the entry script
  able --version
  able --help
`))
}

// runCommand implements the original single-file invocation (`able
// file.scr`) and, with no file argument, the manifest-driven `able run`.
func runCommand(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Must pass only a single file")
		return 1
	}

	if len(args) == 0 {
		manifestPath, err := driver.FindManifest(".")
		if err != nil || manifestPath == "" {
			fmt.Fprintln(os.Stderr, "Must pass only a single file")
			return 1
		}
		manifest, err := driver.LoadManifest(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load project.yml: %v\n", err)
			return 1
		}
		return runFile(manifest.EntryPath(), manifest.SearchPaths())
	}

	return runFile(args[0], nil)
}

func runFile(filename string, searchPaths []string) int {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot find file %s", filename)
		return 1
	}
	lines := strings.Split(string(source), "\n")

	tokens, err := lexer.Lex(string(source))
	if err != nil {
		reportLexError(err, lines)
		return 1
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		reportParseError(err, lines)
		return 1
	}

	interp := interpreter.New()
	interp.SetImporter(driver.NewFileImporter(searchPaths))
	if err := interp.Run(stmts); err != nil {
		reportRuntimeError(err, lines)
		return 1
	}
	return 0
}

func runDeps() int {
	manifestPath, err := driver.FindManifest(".")
	if err != nil || manifestPath == "" {
		fmt.Fprintln(os.Stderr, "project.yml not found")
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load project.yml: %v\n", err)
		return 1
	}
	installed, err := driver.InstallDeps(manifest.EntryPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	for _, name := range installed {
		fmt.Printf("cloned %s\n", name)
	}
	return 0
}
