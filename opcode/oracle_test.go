package opcode

import (
	"testing"

	"github.com/dop251/goja"
)

// TestEvalAgainstJSOracle cross-checks Classify+Eval against a real evaluation
// of the instruction text. The instructions are valid JavaScript expressions
// over n, and for byte-range inputs JS 32-bit bitwise semantics agree with
// ours, so any divergence means the classifier read the text wrong.
func TestEvalAgainstJSOracle(t *testing.T) {
	instructions := []string{
		"(n + 111) % 256",
		"(n + 1) % 256",
		"(n - 206 + 256) % 256",
		"(n - 5 + 256) % 256",
		"n ^ 217",
		"n ^ 1",
		"~n & 255",
		"(n << 4 | (n & 0xFF) >> 4) & 255",
		"(n << 2 | (n & 0xFF) >> 6) & 255",
	}

	vm := goja.New()
	for _, text := range instructions {
		op := Classify(text)
		if op.Kind == KindUnknown {
			t.Fatalf("oracle instruction %q did not classify", text)
		}
		for n := int64(0); n < 256; n++ {
			got, err := op.Eval(n)
			if err != nil {
				t.Fatalf("Eval(%q, %d) error: %v", text, n, err)
			}

			if err := vm.Set("n", n); err != nil {
				t.Fatalf("oracle setup: %v", err)
			}
			res, err := vm.RunString(text)
			if err != nil {
				t.Fatalf("oracle run %q: %v", text, err)
			}
			want := res.ToInteger()

			if int64(got) != want {
				t.Fatalf("Eval(%q, %d) = %d, oracle says %d", text, n, got, want)
			}
		}
	}
}
