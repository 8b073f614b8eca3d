package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/five82/lanes/internal/loader"
)

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeTrace(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const linesTrace = `{"tid":1,"thread":"render","name":"frame","cat":"ui","ts":100,"dur":50,"depth":0}
{"tid":1,"name":"paint","cat":"ui","ts":110,"dur":10,"depth":1}
{"tid":2,"thread":"io","name":"poll","cat":"io","ts":120,"dur":0}
`

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCmd("test")

	output, err := executeCommand(cmd, "--version")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(output, "lanes version test") {
		t.Fatalf("expected version output, got %q", output)
	}
}

func TestRootCommandRejectsExtraArgs(t *testing.T) {
	cmd := NewRootCmd("test")
	if _, err := executeCommand(cmd, "a.json", "b.json"); err == nil {
		t.Fatalf("expected error for two trace arguments")
	}
}

func TestStatsCommand(t *testing.T) {
	path := writeTrace(t, "trace.jsonl", linesTrace)

	output, err := executeCommand(NewRootCmd("test"), "stats", "--levels", path)
	if err != nil {
		t.Fatalf("stats returned error: %v", err)
	}
	for _, want := range []string{
		"(jsonl)",
		"3 events, 2 threads, span 50 ns",
		"render",
		"io",
		"L3:1 L5:1",
		"L0:1",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("stats output missing %q:\n%s", want, output)
		}
	}
}

func TestStatsCommandKeepsArgumentOrder(t *testing.T) {
	first := writeTrace(t, "first.jsonl", linesTrace)
	second := writeTrace(t, "second.json", `{"traceEvents":[
 {"name":"frame","ph":"X","pid":1,"tid":7,"ts":10,"dur":100}
]}`)

	output, err := executeCommand(NewRootCmd("test"), "stats", first, second)
	if err != nil {
		t.Fatalf("stats returned error: %v", err)
	}
	i, j := strings.Index(output, "first.jsonl"), strings.Index(output, "second.json")
	if i < 0 || j < 0 || i > j {
		t.Fatalf("expected first.jsonl before second.json:\n%s", output)
	}
	if !strings.Contains(output, "(chrome)") {
		t.Fatalf("expected chrome format in output:\n%s", output)
	}
}

func TestStatsCommandMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	if _, err := executeCommand(NewRootCmd("test"), "stats", missing); err == nil {
		t.Fatalf("expected error for missing trace")
	}
}

func TestStatsCommandRequiresArgs(t *testing.T) {
	if _, err := executeCommand(NewRootCmd("test"), "stats"); err == nil {
		t.Fatalf("expected error without trace arguments")
	}
}

func TestLevelHistogramWithoutIndex(t *testing.T) {
	if got := levelHistogram(&loader.Result{}, 1); got != "-" {
		t.Fatalf("levelHistogram(no index) = %q, want -", got)
	}
}
