package pipeline

import (
	"strings"
	"testing"
)

// Each of these exercises one of the specification's end-to-end
// scenarios. Without an assembler+linker in this test environment,
// each case checks the invariants reachable without actually running
// the emitted program: the whole program compiles with no error, the
// assembly carries the prelude, and it contains at least one ret.
func TestTryCompilePositiveScenarios(t *testing.T) {
	tests := []string{
		"42;",
		"1 + 2 * 3;",
		"(1 + 2) * 3;",
		"-3 + 5;",
		"a = 4; b = 3; a * b;",
		"i = 0; while (i < 3) { i = i + 1; } i;",
		"if (1 == 1) { return 7; } return 9;",
		"if (1 == 0) { return 7; } else { return 9; }",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			buf, err := TryCompile(src)
			if err != nil {
				t.Fatalf("TryCompile(%q) raised an error: %v", src, err)
			}
			var sb strings.Builder
			if err := buf.Output(&sb); err != nil {
				t.Fatalf("Output() raised an error: %v", err)
			}
			out := sb.String()
			if !strings.Contains(out, ".global _main") {
				t.Errorf("missing prelude:\n%s", out)
			}
			if !strings.Contains(out, "ret") {
				t.Errorf("missing ret:\n%s", out)
			}
		})
	}
}

func TestTryCompileIsDeterministic(t *testing.T) {
	src := "a = 4; b = 3; a * b;"
	first, err := TryCompile(src)
	if err != nil {
		t.Fatalf("TryCompile() raised an error: %v", err)
	}
	second, err := TryCompile(src)
	if err != nil {
		t.Fatalf("TryCompile() raised an error: %v", err)
	}

	var firstOut, secondOut strings.Builder
	if err := first.Output(&firstOut); err != nil {
		t.Fatalf("Output() raised an error: %v", err)
	}
	if err := second.Output(&secondOut); err != nil {
		t.Fatalf("Output() raised an error: %v", err)
	}
	if firstOut.String() != secondOut.String() {
		t.Errorf("TryCompile() is not byte-identical across runs:\n%s\n---\n%s", firstOut.String(), secondOut.String())
	}
}

func TestTryCompileNegativeScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing expression after +", "1 +"},
		{"missing semicolon", "1 + 2"},
		{"missing paren after if", "if 1 { 2; }"},
		{"unrecognized lexeme", "@;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TryCompile(tt.src); err == nil {
				t.Errorf("TryCompile(%q) = nil error, want a failure", tt.src)
			}
		})
	}
}
