package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/nailuj29/language/pkg/interpreter"
	"github.com/nailuj29/language/pkg/lexer"
	"github.com/nailuj29/language/pkg/parser"
	"github.com/nailuj29/language/pkg/runtime"
)

// remoteNamePattern matches an import name shaped like a git remote:
// exactly three "/"-separated segments (host/org/repo), with the first
// segment containing a dot (so "os"/"io"/"math" and plain sibling names
// never qualify).
var remoteNamePattern = regexp.MustCompile(`^[^/]+\.[^/]+/[^/]+/[^/]+$`)

// FileImporter resolves `import name;` against sibling .scr files in
// SearchPaths, falling back to cloning a git-remote-shaped name into the
// cache directory under Home. It implements interpreter.Importer.
type FileImporter struct {
	SearchPaths []string
	Home        string // defaults to $ABLE_HOME, then $HOME/.able
}

// NewFileImporter builds a FileImporter rooted at the given search paths.
func NewFileImporter(searchPaths []string) *FileImporter {
	return &FileImporter{SearchPaths: searchPaths, Home: ableHome()}
}

func ableHome() string {
	if home := os.Getenv("ABLE_HOME"); home != "" {
		return home
	}
	return filepath.Join(os.Getenv("HOME"), ".able")
}

// Resolve implements interpreter.Importer.
func (f *FileImporter) Resolve(name string) (map[string]runtime.Value, error) {
	if env, err := f.resolveSibling(name, f.SearchPaths); err == nil {
		return env, nil
	}

	if remoteNamePattern.MatchString(name) {
		dir, err := f.ensureCloned(name)
		if err != nil {
			return nil, err
		}
		repo := name[strings.LastIndex(name, "/")+1:]
		return f.loadScript(filepath.Join(dir, repo+".scr"))
	}

	return nil, fmt.Errorf("no sibling file or remote module named %q", name)
}

func (f *FileImporter) resolveSibling(name string, searchPaths []string) (map[string]runtime.Value, error) {
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, name+".scr")
		if _, err := os.Stat(candidate); err == nil {
			return f.loadScript(candidate)
		}
	}
	// Also check the bare working directory, matching spec.md §4.4's
	// original sibling-file behavior when no search paths are configured.
	candidate := name + ".scr"
	if _, err := os.Stat(candidate); err == nil {
		return f.loadScript(candidate)
	}
	return nil, fmt.Errorf("no sibling file named %q", name)
}

func (f *FileImporter) loadScript(path string) (map[string]runtime.Value, error) {
	source, err := os.ReadFile(path)
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

	sub := interpreter.New()
	sub.SetImporter(NewFileImporter([]string{filepath.Dir(path)}))
	env, err := sub.RunForImport(stmts)
	if err != nil {
		return nil, err
	}

	bindings := make(map[string]runtime.Value)
	for _, key := range env.Keys() {
		v, _ := env.Get(key)
		bindings[key] = v
	}
	return bindings, nil
}

// ensureCloned clones https://name into the module cache if it isn't
// already there. An existing clone is never refreshed — imports are
// pinned to whatever was cloned first.
func (f *FileImporter) ensureCloned(name string) (string, error) {
	dest := filepath.Join(f.Home, "cache", name)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", err
	}
	_, err := git.PlainClone(dest, false, &git.CloneOptions{
		URL:   "https://" + name,
		Depth: 1,
	})
	if err != nil {
		return "", fmt.Errorf("cloning %s: %w", name, err)
	}
	return dest, nil
}
