package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestASTJSONShapesBinOp(t *testing.T) {
	prog, err := TryParse("r = a + 1;")
	if err != nil {
		t.Fatalf("TryParse() raised an error: %v", err)
	}

	jsonStr, err := ASTJSON(prog.Stmts)
	if err != nil {
		t.Fatalf("ASTJSON() raised an error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		t.Fatalf("ASTJSON() produced invalid JSON: %v\n%s", err, jsonStr)
	}

	assign := decoded[0]
	if assign["type"] != "Assign" {
		t.Fatalf("decoded[0][\"type\"] = %v, want Assign", assign["type"])
	}
	rhs, ok := assign["rhs"].(map[string]any)
	if !ok {
		t.Fatalf("rhs = %#v, want a nested object", assign["rhs"])
	}
	if rhs["type"] != "BinOp" || rhs["operator"] != "+" {
		t.Errorf("rhs = %+v, want BinOp with operator \"+\"", rhs)
	}
}

func TestASTJSONIfWithoutElseOmitsBranch(t *testing.T) {
	prog, err := TryParse("if (a < 1) { a = 2; }")
	if err != nil {
		t.Fatalf("TryParse() raised an error: %v", err)
	}
	jsonStr, err := ASTJSON(prog.Stmts)
	if err != nil {
		t.Fatalf("ASTJSON() raised an error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		t.Fatalf("ASTJSON() produced invalid JSON: %v", err)
	}
	if decoded[0]["else"] != nil {
		t.Errorf("else = %v, want nil (no else branch present)", decoded[0]["else"])
	}
}

func TestPrintASTJSONReturnsPlainJSONWhenColorizing(t *testing.T) {
	prog, err := TryParse("r = 1;")
	if err != nil {
		t.Fatalf("TryParse() raised an error: %v", err)
	}

	jsonStr, err := PrintASTJSON(prog.Stmts, true)
	if err != nil {
		t.Fatalf("PrintASTJSON() raised an error: %v", err)
	}
	if strings.Contains(jsonStr, colorYellow) {
		t.Errorf("PrintASTJSON()'s returned string should be the plain JSON, not the colorized console framing")
	}
}

func TestWriteASTJSONToFile(t *testing.T) {
	prog, err := TryParse("r = 1;")
	if err != nil {
		t.Fatalf("TryParse() raised an error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ast.json")
	if err := WriteASTJSONToFile(prog.Stmts, path); err != nil {
		t.Fatalf("WriteASTJSONToFile() raised an error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() raised an error: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file contents are not valid JSON: %v", err)
	}
}
