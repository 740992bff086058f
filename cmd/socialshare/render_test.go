package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/neboloop/socialshare/internal/config"
)

// runCLI executes args with os.Stdout redirected, so anything written to
// the process stdout (including log output) is captured.
func runCLI(t *testing.T, args ...string) []byte {
	t.Helper()
	t.Setenv("SOCIALSHARE_DATA_DIR", t.TempDir())

	c, err := config.LoadFromBytes([]byte("auth:\n  access_secret: cli-test\nlog:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	root := SetupRootCmd(&c, nil)
	root.SetArgs(args)
	execErr := root.Execute()

	w.Close()
	os.Stdout = stdout
	out := <-done

	if execErr != nil {
		t.Fatalf("%v: %v", args, execErr)
	}
	return out
}

func TestRenderStdoutIsJSON(t *testing.T) {
	out := runCLI(t, "render", "--url", "https://x.test/p", "--title", "Hi")

	var buttons []map[string]any
	if err := json.Unmarshal(out, &buttons); err != nil {
		t.Fatalf("render stdout is not JSON: %v\n%s", err, out)
	}
	if len(buttons) != 0 {
		t.Errorf("expected no buttons with default settings, got %v", buttons)
	}
	if got := string(bytes.TrimSpace(out)); got != "[]" {
		t.Errorf("expected [], got %q", got)
	}
}

func TestSettingsShowJSON(t *testing.T) {
	defer func() { jsonOut = false }()
	out := runCLI(t, "settings", "show", "--json")

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("settings show stdout is not JSON: %v\n%s", err, out)
	}
	if values["style"] != "both" {
		t.Errorf("style = %v, want both", values["style"])
	}
}
