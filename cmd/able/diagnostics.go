package main

import (
	"os"

	"github.com/nailuj29/language/pkg/driver"
	"github.com/nailuj29/language/pkg/interpreter"
	"github.com/nailuj29/language/pkg/lexer"
	"github.com/nailuj29/language/pkg/parser"
)

func reportLexError(err error, lines []string) {
	if e, ok := err.(*lexer.Error); ok {
		driver.Render(os.Stderr, driver.Diagnostic{
			Kind:    driver.KindLex,
			Message: e.Message,
			Line:    e.Line,
			Column:  e.Column,
		}, lines)
		return
	}
	driver.Render(os.Stderr, driver.Diagnostic{Kind: driver.KindLex, Message: err.Error(), Line: 1, Column: 1}, lines)
}

func reportParseError(err error, lines []string) {
	if e, ok := err.(*parser.Error); ok {
		driver.Render(os.Stderr, driver.Diagnostic{
			Kind:    driver.KindParse,
			Message: e.Message,
			Line:    e.Token.Line,
			Column:  e.Token.Column,
		}, lines)
		return
	}
	driver.Render(os.Stderr, driver.Diagnostic{Kind: driver.KindParse, Message: err.Error(), Line: 1, Column: 1}, lines)
}

func reportRuntimeError(err error, lines []string) {
	if e, ok := err.(*interpreter.RuntimeError); ok {
		driver.Render(os.Stderr, driver.Diagnostic{
			Kind:    driver.KindRuntime,
			Message: e.Message,
			Line:    e.Token.Line,
			Column:  e.Token.Column,
		}, lines)
		return
	}
	driver.Render(os.Stderr, driver.Diagnostic{Kind: driver.KindRuntime, Message: err.Error(), Line: 1, Column: 1}, lines)
}
