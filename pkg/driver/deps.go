package driver

import (
	"fmt"
	"os"

	"github.com/nailuj29/language/pkg/ast"
	"github.com/nailuj29/language/pkg/lexer"
	"github.com/nailuj29/language/pkg/parser"
)

// InstallDeps lexes and parses the entry script, clones every
// remote-shaped import it finds into the module cache, and reports each
// one it touched. It never executes the script.
func InstallDeps(entryPath string) ([]string, error) {
	source, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Lex(string(source))
	if err != nil {
		return nil, err
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}

	importer := NewFileImporter(nil)
	var installed []string
	for _, stmt := range stmts {
		imp, ok := stmt.(*ast.Import)
		if !ok {
			continue
		}
		name := imp.Name.Lexeme
		if !remoteNamePattern.MatchString(name) {
			continue
		}
		if _, err := importer.ensureCloned(name); err != nil {
			return installed, fmt.Errorf("install %s: %w", name, err)
		}
		installed = append(installed, name)
	}
	return installed, nil
}
