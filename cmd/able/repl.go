package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/nailuj29/language/pkg/ast"
	"github.com/nailuj29/language/pkg/driver"
	"github.com/nailuj29/language/pkg/interpreter"
	"github.com/nailuj29/language/pkg/lexer"
	"github.com/nailuj29/language/pkg/parser"
)

const (
	promptMain = "able> "
	promptCont = "....  "
)

// runRepl starts an interactive session: one Interpreter persists across
// lines so `var`/`fn` declarations from earlier input remain visible.
func runRepl() int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(ableHomeOrDefault(home), "history")
	os.MkdirAll(filepath.Dir(histPath), 0755)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	interp := interpreter.New()
	interp.SetImporter(driver.NewFileImporter(nil))
	debug := false

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return 0
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			case ":debug":
				debug = !debug
				fmt.Printf("debug = %v\n", debug)
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		evalLine(interp, line, debug)
		ln.AppendHistory(line)
	}
}

func evalLine(interp *interpreter.Interpreter, line string, debug bool) {
	lines := []string{line}
	tokens, err := lexer.Lex(line)
	if err != nil {
		reportLexError(err, lines)
		return
	}
	if debug {
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		reportParseError(err, lines)
		return
	}
	if debug {
		fmt.Println(ast.Print(stmts))
	}

	if err := interp.Run(stmts); err != nil {
		reportRuntimeError(err, lines)
	}
}

func ableHomeOrDefault(home string) string {
	if v := os.Getenv("ABLE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".able")
}
