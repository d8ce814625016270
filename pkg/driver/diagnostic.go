// Package driver hosts the ambient concerns a runnable interpreter needs
// beyond the language core: diagnostic rendering, project manifests, and
// the file/remote import resolver.
package driver

import (
	"fmt"
	"io"
	"strings"
)

// Kind distinguishes where a Diagnostic originated, purely for display.
type Kind string

const (
	KindLex     Kind = "lex"
	KindParse   Kind = "parse"
	KindRuntime Kind = "runtime"
)

// Diagnostic is a renderable failure: a message anchored at a source
// position. The lexer, parser, and interpreter errors are all adapted
// into one of these before being handed to Render.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
}

// Render writes the banner+snippet error format — mirroring Main.java's
// error() method — to w. lines is the complete source split on "\n".
func Render(w io.Writer, d Diagnostic, lines []string) {
	fmt.Fprintln(w, "There was an error running your program")
	fmt.Fprintln(w, "---------------------------------------")

	if d.Line >= 1 && d.Line <= len(lines) {
		if d.Line != 1 {
			fmt.Fprintf(w, "%3d| %s\n", d.Line-1, lines[d.Line-2])
		}
		fmt.Fprintf(w, "%3d| %s\n", d.Line, lines[d.Line-1])
		fmt.Fprintln(w, strings.Repeat("~", d.Column+3)+"^")
	}

	fmt.Fprintf(w, "Message: %s\n", d.Message)

	if d.Line >= 1 && d.Line < len(lines) {
		fmt.Fprintf(w, "%3d| %s\n", d.Line+1, lines[d.Line])
	}
}
