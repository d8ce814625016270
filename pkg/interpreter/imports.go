package interpreter

import (
	"github.com/nailuj29/language/pkg/ast"
	"github.com/nailuj29/language/pkg/runtime"
)

// executeImport resolves `import name;` in three tiers: the installed
// Importer first (sibling .scr files, then git-remote-cached packages),
// falling back to the built-in modules (os, io, math) defined alongside
// the global natives.
func (in *Interpreter) executeImport(s *ast.Import) error {
	name := s.Name.Lexeme

	if in.importer != nil {
		if bindings, err := in.importer.Resolve(name); err == nil {
			env := runtime.NewEnvironment(nil)
			for k, v := range bindings {
				env.Define(k, v)
			}
			in.imports[name] = env
			return nil
		}
	}

	if env, ok := builtinModules[name]; ok {
		in.imports[name] = env
		return nil
	}

	return newError(s.Name, "Could not find import")
}

func (in *Interpreter) evaluateImportAccess(e *ast.ImportAccess) (runtime.Value, error) {
	env, ok := in.imports[e.Module.Lexeme]
	if !ok {
		return nil, newError(e.Module, "Undefined or un-imported module")
	}
	v, err := env.Get(e.Member.Lexeme)
	if err != nil {
		return nil, newError(e.Member, err.Error())
	}
	return v, nil
}
