package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/polymer/pkg/errors"
)

// runCLI executes the root command with isolated config and cache dirs
// and returns what the command wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	var out bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateStdout(t *testing.T) {
	out, err := runCLI(t, "generate", "-n", "3", "-a", "90")
	if err != nil {
		t.Fatal(err)
	}
	want := "3\nGenerated polymer chain\n" +
		"C 0.000000 0.000000 0.000000\n" +
		"C 1.000000 0.000000 1.000000\n" +
		"C 1.000000 1.000000 2.000000\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chain.xyz")
	if _, err := runCLI(t, "generate", "-n", "2", "--label", "N", "--comment", "two", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "2\ntwo\nN 0.000000 0.000000 0.000000\nN 1.000000 0.000000 1.000000\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestReportErrorHidesCode(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	c.ReportError(errors.New(errors.ErrCodeInvalidArgument, "unit count must be at least 1, got 0"))

	got := buf.String()
	if !strings.Contains(got, "unit count must be at least 1, got 0") {
		t.Errorf("output = %q, want the user message", got)
	}
	if strings.Contains(got, string(errors.ErrCodeInvalidArgument)) {
		t.Errorf("output = %q, should not show the error code", got)
	}
}

func TestGenerateJSON(t *testing.T) {
	out, err := runCLI(t, "generate", "-n", "2", "-f", "json")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"count": 2`, `"points"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing %s:\n%s", want, out)
		}
	}
}

func TestGenerateSeeded(t *testing.T) {
	a, err := runCLI(t, "generate", "-n", "20", "-r", "8", "--seed", "3")
	if err != nil {
		t.Fatal(err)
	}
	b, err := runCLI(t, "generate", "-n", "20", "-r", "8", "--seed", "3")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same seed produced different chains")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"zero units", []string{"generate", "-n", "0"}, errors.ErrCodeInvalidArgument},
		{"angle out of range", []string{"generate", "-a", "181"}, errors.ErrCodeInvalidArgument},
		{"rigidity out of range", []string{"generate", "-r", "12"}, errors.ErrCodeInvalidArgument},
		{"picture format", []string{"generate", "-f", "svg"}, errors.ErrCodeInvalidFormat},
		{"bad label", []string{"generate", "--label", "a b"}, errors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	base := filepath.Join(t.TempDir(), "coil")
	if _, err := runCLI(t, "render", "-n", "12", "-a", "100", "-f", "svg,xyz,html", "-o", base); err != nil {
		t.Fatal(err)
	}

	for ext, want := range map[string]string{
		".svg":  "<svg",
		".xyz":  "12\n",
		".html": "3Dmol",
	} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("read %s: %v", ext, err)
			continue
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s does not contain %q", ext, want)
		}
	}
}

func TestRenderInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.xyz")
	xyz := "2\nimported\nO 0 0 0\nO 1 0 1\n"
	if err := os.WriteFile(input, []byte(xyz), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "render", "--input", input, "-f", "svg", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "in.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), `class="atom"`); got != 2 {
		t.Errorf("atoms = %d, want 2", got)
	}
	if !strings.Contains(string(data), "imported") {
		t.Error("svg title should carry the XYZ comment")
	}
}

func TestRenderInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"unknown style", []string{"render", "--style", "neon", "-o", filepath.Join(t.TempDir(), "x")}, errors.ErrCodeInvalidStyle},
		{"missing input", []string{"render", "--input", "does-not-exist.xyz"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", "polymer"},
		{"", "data/chain.xyz", "data/chain"},
		{"out/coil", "", "out/coil"},
		{"out/coil.svg", "", "out/coil"},
		{"out/coil.bonds.svg", "", "out/coil"},
		{"out/coil.v2", "", "out/coil.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestConfigShow(t *testing.T) {
	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[chain]", "units = 5", "[render]", `style = "simple"`, "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polymer.toml")
	if _, err := runCLI(t, "config", "init", path); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "config", "init", path); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want INVALID_PATH", err)
	}

	custom := "[chain]\nunits = 2\nangle = 90\nlabel = \"S\"\n"
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "--config", path, "generate")
	if err != nil {
		t.Fatal(err)
	}
	want := "2\nGenerated polymer chain\nS 0.000000 0.000000 0.000000\nS 1.000000 0.000000 1.000000\n"
	if out != want {
		t.Errorf("generate with config = %q, want %q", out, want)
	}

	out, err = runCLI(t, "--config", path, "generate", "-n", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "1\n") {
		t.Errorf("flag should override config, got %q", out)
	}
}

func TestCachePath(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "polymer")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "polymer") {
		t.Error("bash completion should mention the command name")
	}
}
