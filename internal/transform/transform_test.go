package transform

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestApply_PicksFields(t *testing.T) {
	payload := json.RawMessage(`{"title":"Example","price":42,"noise":"x"}`)
	out, err := Apply(`({name: result.title, cost: result.price})`, payload, 0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["name"] != "Example" || got["cost"] != float64(42) {
		t.Errorf("output = %v, want name/cost fields", got)
	}
	if _, ok := got["noise"]; ok {
		t.Errorf("output retained dropped field: %v", got)
	}
}

func TestApply_ArrayMapping(t *testing.T) {
	payload := json.RawMessage(`{"items":[{"n":1},{"n":2},{"n":3}]}`)
	out, err := Apply(`result.items.map(function(i) { return i.n * 10 })`, payload, 0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if string(out) != "[10,20,30]" {
		t.Errorf("output = %s, want [10,20,30]", out)
	}
}

func TestApply_EmptyScriptPassesThrough(t *testing.T) {
	payload := json.RawMessage(`{"x":1}`)
	out, err := Apply("", payload, 0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if string(out) != `{"x":1}` {
		t.Errorf("output = %s, want unchanged payload", out)
	}
}

func TestApply_ScriptErrorSurfaces(t *testing.T) {
	_, err := Apply(`result.missing.deep.access`, json.RawMessage(`{}`), 0)
	if err == nil {
		t.Fatal("Apply succeeded, want script error")
	}
}

func TestApply_InvalidPayload(t *testing.T) {
	_, err := Apply(`result`, json.RawMessage(`not json`), 0)
	if err == nil || !strings.Contains(err.Error(), "not valid JSON") {
		t.Errorf("err = %v, want invalid-JSON error", err)
	}
}

func TestApply_TimeoutInterruptsScript(t *testing.T) {
	start := time.Now()
	_, err := Apply(`while (true) {}`, json.RawMessage(`{}`), 50*time.Millisecond)
	if err == nil {
		t.Fatal("Apply succeeded, want interrupt error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("interrupt took %v, script was not bounded", elapsed)
	}
}

func TestApply_ConsoleShimDoesNotCrash(t *testing.T) {
	out, err := Apply(`console.log("hi", result.x); result.x`, json.RawMessage(`{"x":7}`), 0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if string(out) != "7" {
		t.Errorf("output = %s, want 7", out)
	}
}
