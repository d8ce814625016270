package interpreter

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nailuj29/language/pkg/lexer"
	"github.com/nailuj29/language/pkg/parser"
)

// runAndCaptureStdout runs a complete program and returns whatever it
// printed. It fails the test on lex, parse, or runtime errors.
func runAndCaptureStdout(t *testing.T, source string) string {
	t.Helper()

	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	interp := New()
	runErr := interp.Run(stmts)

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)

	if runErr != nil {
		t.Fatalf("Run returned error: %v", runErr)
	}
	return buf.String()
}

func runAndExpectError(t *testing.T, source string) error {
	t.Helper()
	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	interp := New()
	err = interp.Run(stmts)
	if err == nil {
		t.Fatalf("expected Run to return an error")
	}
	return err
}

func TestArithmeticPrecedence(t *testing.T) {
	out := runAndCaptureStdout(t, "var x = 1 + 2 * 3; print(x);")
	if strings.TrimSpace(out) != "7" {
		t.Fatalf("got %q, want %q", out, "7")
	}
}

func TestRecursiveFactorial(t *testing.T) {
	out := runAndCaptureStdout(t, `
fn fact(n) { if n == 0 { return 1; } return n * fact(n - 1); }
print(fact(5));
`)
	if strings.TrimSpace(out) != "120" {
		t.Fatalf("got %q, want %q", out, "120")
	}
}

func TestForInOverList(t *testing.T) {
	out := runAndCaptureStdout(t, `
var xs = [10, 20, 30];
for var v in xs { print(v); }
`)
	if out != "10\n20\n30\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCurryingByUnderApplication(t *testing.T) {
	out := runAndCaptureStdout(t, `
fn add(a, b) { return a + b; }
var inc = add(1);
print(inc(41));
`)
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("got %q, want %q", out, "42")
	}
}

func TestIndexAssignmentMutatesInPlace(t *testing.T) {
	out := runAndCaptureStdout(t, `
var xs = [1, 2, 3];
xs[1] = 99;
print(xs);
`)
	if strings.TrimSpace(out) != "[1, 99, 3]" {
		t.Fatalf("got %q, want %q", out, "[1, 99, 3]")
	}
}

func TestLoopWithBreak(t *testing.T) {
	out := runAndCaptureStdout(t, `
var i = 0;
loop { if i == 3 { break; } i = i + 1; }
print(i);
`)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want %q", out, "3")
	}
}

func TestWhileWithContinue(t *testing.T) {
	out := runAndCaptureStdout(t, `
var i = 0;
var sum = 0;
while i < 5 {
	i = i + 1;
	if i == 3 { continue; }
	sum = sum + i;
}
print(sum);
`)
	// 1 + 2 + 4 + 5 = 12 (3 is skipped by continue)
	if strings.TrimSpace(out) != "12" {
		t.Fatalf("got %q, want %q", out, "12")
	}
}

func TestTooManyArgumentsErrors(t *testing.T) {
	err := runAndExpectError(t, "print(1, 2);")
	if !strings.Contains(err.Error(), "Incorrect argument count") {
		t.Fatalf("got %q, want message containing %q", err.Error(), "Incorrect argument count")
	}
}

func TestAccessingUnimportedModuleErrors(t *testing.T) {
	err := runAndExpectError(t, "var a = 1; a.b;")
	if !strings.Contains(err.Error(), "Undefined or un-imported module") {
		t.Fatalf("got %q, want message containing %q", err.Error(), "Undefined or un-imported module")
	}
}

func TestIndexingNonListErrors(t *testing.T) {
	err := runAndExpectError(t, `var a = 1; a[0];`)
	if !strings.Contains(err.Error(), "Cannot index a non-iterable") {
		t.Fatalf("got %q, want message containing %q", err.Error(), "Cannot index a non-iterable")
	}
}

func TestStringConcatenationWithPlus(t *testing.T) {
	out := runAndCaptureStdout(t, `print("a" + 1 + "b");`)
	if strings.TrimSpace(out) != "a1b" {
		t.Fatalf("got %q, want %q", out, "a1b")
	}
}

func TestListConcatenationWithPlus(t *testing.T) {
	out := runAndCaptureStdout(t, `print([1, 2] + [3, 4]);`)
	if strings.TrimSpace(out) != "[1, 2, 3, 4]" {
		t.Fatalf("got %q, want %q", out, "[1, 2, 3, 4]")
	}
}

func TestLexicalScopingDoesNotCaptureEnclosingLocals(t *testing.T) {
	// Per the preserved design choice, a function sees globals and its
	// own params/name, but never an enclosing function's locals.
	err := runAndExpectError(t, `
fn outer() {
	var secret = 1;
	fn inner() { return secret; }
	return inner();
}
outer();
`)
	if !strings.Contains(err.Error(), "undefined variable") {
		t.Fatalf("got %q, want an undefined-variable error", err.Error())
	}
}

func TestVarWithoutInitializerIsNil(t *testing.T) {
	out := runAndCaptureStdout(t, `var x; print(x);`)
	if strings.TrimSpace(out) != "nil" {
		t.Fatalf("got %q, want %q", out, "nil")
	}
}

func TestBreakOutsideLoopIsAnError(t *testing.T) {
	err := runAndExpectError(t, "break;")
	if !strings.Contains(err.Error(), "Cant break outside a loop") {
		t.Fatalf("got %q", err.Error())
	}
}

func TestBuiltinMathModule(t *testing.T) {
	out := runAndCaptureStdout(t, `
import math;
print(math.sqrt(16));
`)
	if strings.TrimSpace(out) != "4" {
		t.Fatalf("got %q, want %q", out, "4")
	}
}

func TestUndefinedImportErrors(t *testing.T) {
	err := runAndExpectError(t, "import nonexistent_totally_fake_module;")
	if !strings.Contains(err.Error(), "Could not find import") {
		t.Fatalf("got %q", err.Error())
	}
}
