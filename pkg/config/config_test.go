package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/polymer/pkg/errors"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix+"_") {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
	return dir
}

var ignoreDerived = cmpopts.IgnoreFields(Config{}, "File")

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Server.EffectiveHost = "127.0.0.1"
	want.Server.Port = 8080
	if diff := cmp.Diff(want, cfg, ignoreDerived); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, AppName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	body := `
[chain]
units = 40
angle = 109.5

[render]
style = "shaded"

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chain.Units != 40 || cfg.Chain.Angle != 109.5 {
		t.Errorf("chain = %+v", cfg.Chain)
	}
	if cfg.Render.Style != "shaded" {
		t.Errorf("style = %q", cfg.Render.Style)
	}
	if cfg.Render.Width != 800 {
		t.Errorf("unset keys should keep defaults, width = %v", cfg.Render.Width)
	}
	if cfg.Server.EffectiveHost != "0.0.0.0" || cfg.Server.Port != 9000 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	body := "chain:\n  rigidity: 2.5\n  label: O\ncache:\n  ttl: 1h\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chain.Rigidity != 2.5 || cfg.Chain.Label != "O" {
		t.Errorf("chain = %+v", cfg.Chain)
	}
	ttl, err := cfg.Cache.TTLDuration()
	if err != nil || ttl != time.Hour {
		t.Errorf("ttl = %v, %v", ttl, err)
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("POLYMER_CHAIN_UNITS", "77")
	t.Setenv("POLYMER_RENDER_YAW", "-15")
	t.Setenv("POLYMER_CACHE_REDIS_ADDR", "localhost:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chain.Units != 77 {
		t.Errorf("units = %d, want 77", cfg.Chain.Units)
	}
	if cfg.Render.Yaw != -15 {
		t.Errorf("yaw = %v, want -15", cfg.Render.Yaw)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("redis_addr = %q", cfg.Cache.RedisAddr)
	}
}

func TestLoadMissingOverride(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"addr", map[string]string{"POLYMER_SERVER_ADDR": "no-port"}},
		{"port", map[string]string{"POLYMER_SERVER_ADDR": "localhost:http"}},
		{"timeout", map[string]string{"POLYMER_SERVER_READ_TIMEOUT": "soon"}},
		{"ttl", map[string]string{"POLYMER_CACHE_TTL": "-1h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("error = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "out."+format)
			if err := Init(path, false); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			want := Default()
			want.Server.EffectiveHost = "127.0.0.1"
			want.Server.Port = 8080
			if diff := cmp.Diff(want, cfg, ignoreDerived); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	if err := Init(path, false); err != nil {
		t.Fatal(err)
	}
	if err := Init(path, false); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second Init error = %v, want INVALID_PATH", err)
	}
	if err := Init(path, true); err != nil {
		t.Errorf("forced Init: %v", err)
	}
}

func TestEncodeTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default(), "toml"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"[chain]", "units = 5", "[render]", `style = "simple"`, "[server]", "[cache]"} {
		if !strings.Contains(out, want) {
			t.Errorf("toml output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "EffectiveHost") || strings.Contains(out, "File") {
		t.Error("derived fields should not be encoded")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Default(), "ini")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}
