package interpreter

import (
	"bufio"
	"fmt"
	"math"
	"os"
	rt "runtime"

	language "github.com/nailuj29/language/pkg/runtime"
)

// version is bumped alongside the language grammar, mirroring the
// original interpreter's VERSION global.
const version = "0.1.0"

var stdinScanner = bufio.NewScanner(os.Stdin)

// defineBuiltins installs the global natives (print, printRaw, input,
// len, VERSION) directly grounded on Interpreter.java's static
// initializer.
func defineBuiltins(globals *language.Environment) {
	globals.Define("print", &language.Native{
		Name:  "print",
		ArgCount: 1,
		Impl: func(args []language.Value) (language.Value, error) {
			fmt.Println(stringify(args[0]))
			return language.Nil{}, nil
		},
	})

	globals.Define("printRaw", &language.Native{
		Name:  "printRaw",
		ArgCount: 1,
		Impl: func(args []language.Value) (language.Value, error) {
			fmt.Print(stringify(args[0]))
			return language.Nil{}, nil
		},
	})

	globals.Define("input", &language.Native{
		Name:  "input",
		ArgCount: 0,
		Impl: func(args []language.Value) (language.Value, error) {
			if !stdinScanner.Scan() {
				return language.String(""), nil
			}
			return language.String(stdinScanner.Text()), nil
		},
	})

	globals.Define("len", &language.Native{
		Name:  "len",
		ArgCount: 1,
		Impl: func(args []language.Value) (language.Value, error) {
			switch v := args[0].(type) {
			case *language.List:
				return language.Number(len(v.Elements)), nil
			case language.String:
				return language.Number(len(string(v))), nil
			default:
				return nil, fmt.Errorf("Expect a list")
			}
		},
	})

	globals.Define("VERSION", language.String(version))
}

// builtinModules are the modules available when the installed Importer
// can't resolve a name as a sibling file or a cached remote package.
var builtinModules = map[string]*language.Environment{
	"os":   osModule(),
	"io":   ioModule(),
	"math": mathModule(),
}

func osModule() *language.Environment {
	env := language.NewEnvironment(nil)
	env.Define("name", language.String(rt.GOOS))
	return env
}

func ioModule() *language.Environment {
	env := language.NewEnvironment(nil)

	env.Define("write", &language.Native{
		Name:  "io.write",
		ArgCount: 2,
		Impl: func(args []language.Value) (language.Value, error) {
			return writeFile(args, os.O_CREATE|os.O_TRUNC|os.O_WRONLY)
		},
	})

	env.Define("append", &language.Native{
		Name:  "io.append",
		ArgCount: 2,
		Impl: func(args []language.Value) (language.Value, error) {
			return writeFile(args, os.O_CREATE|os.O_APPEND|os.O_WRONLY)
		},
	})

	env.Define("read", &language.Native{
		Name:  "io.read",
		ArgCount: 1,
		Impl: func(args []language.Value) (language.Value, error) {
			filename, ok := args[0].(language.String)
			if !ok {
				return nil, fmt.Errorf("Filename must be a string")
			}
			contents, err := os.ReadFile(string(filename))
			if err != nil {
				return nil, err
			}
			return language.String(contents), nil
		},
	})

	return env
}

func writeFile(args []language.Value, flag int) (language.Value, error) {
	filename, ok := args[0].(language.String)
	if !ok {
		return nil, fmt.Errorf("Filename must be a string")
	}
	if _, isNil := args[1].(language.Nil); isNil {
		return nil, fmt.Errorf("Cannot write nil to a file")
	}
	f, err := os.OpenFile(string(filename), flag, 0644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.WriteString(stringify(args[1])); err != nil {
		return nil, err
	}
	return language.Nil{}, nil
}

func mathModule() *language.Environment {
	env := language.NewEnvironment(nil)
	env.Define("pi", language.Number(math.Pi))
	env.Define("e", language.Number(math.E))

	unary := func(name string, fn func(float64) float64) *language.Native {
		return &language.Native{
			Name:  "math." + name,
			ArgCount: 1,
			Impl: func(args []language.Value) (language.Value, error) {
				n, ok := args[0].(language.Number)
				if !ok {
					return nil, fmt.Errorf("Expect a number")
				}
				return language.Number(fn(float64(n))), nil
			},
		}
	}

	env.Define("sqrt", unary("sqrt", math.Sqrt))
	env.Define("exp", unary("exp", math.Exp))
	env.Define("sin", unary("sin", math.Sin))
	env.Define("cos", unary("cos", math.Cos))
	env.Define("tan", unary("tan", math.Tan))
	env.Define("log", unary("log", math.Log))

	env.Define("pow", &language.Native{
		Name:  "math.pow",
		ArgCount: 2,
		Impl: func(args []language.Value) (language.Value, error) {
			base, ok1 := args[0].(language.Number)
			exp, ok2 := args[1].(language.Number)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("Expect two numbers")
			}
			return language.Number(math.Pow(float64(base), float64(exp))), nil
		},
	})

	return env
}
