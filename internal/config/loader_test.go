package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeRoot creates <dir>/conf/global.yaml with body and points
// PARAMGUARD_ROOT at dir.
func writeRoot(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "conf", "global.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("PARAMGUARD_ROOT", dir)
	return dir
}

const sampleYAML = `
http:
  listen_addr: "127.0.0.1:9090"
log:
  level: debug
rules:
  - { source: path,  name: n,    rule: number }
  - { source: query, name: test, rule: bool }
  - { source: query, name: test, rule: min_length, arg: "10" }
`

func TestLoad_YAMLAndDefaults(t *testing.T) {
	dir := writeRoot(t, sampleYAML)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9090" {
		t.Fatalf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Log.Dir != filepath.Join(dir, "logs") {
		t.Fatalf("log dir = %q, want default under root", cfg.Log.Dir)
	}
	if len(cfg.Rules) != 3 {
		t.Fatalf("rules = %d, want 3", len(cfg.Rules))
	}
	if r := cfg.Rules[2]; r.Source != "query" || r.Name != "test" || r.Rule != "min_length" || r.Arg != "10" {
		t.Fatalf("rule[2] = %+v", r)
	}
	if Get() != cfg {
		t.Fatalf("Get() did not return the cached config")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	writeRoot(t, sampleYAML)
	t.Setenv("PARAMGUARD_HTTP__LISTEN_ADDR", "0.0.0.0:7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.HTTP.ListenAddr != "0.0.0.0:7070" {
		t.Fatalf("listen_addr = %q, want env override", cfg.HTTP.ListenAddr)
	}
}

func TestLoad_RejectsUnknownSource(t *testing.T) {
	writeRoot(t, `
rules:
  - { source: body, name: x, rule: number }
`)
	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for source 'body'")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("PARAMGUARD_ROOT", t.TempDir())
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when conf/global.yaml is missing")
	}
}

func TestReload_SwapsCachedConfig(t *testing.T) {
	dir := writeRoot(t, sampleYAML)
	first, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	updated := `
http:
  listen_addr: "127.0.0.1:9191"
`
	if err := os.WriteFile(filepath.Join(dir, "conf", "global.yaml"), []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite yaml: %v", err)
	}
	if err := Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	got := Get()
	if got == first {
		t.Fatalf("Reload did not replace the cached config")
	}
	if got.HTTP.ListenAddr != "127.0.0.1:9191" || len(got.Rules) != 0 {
		t.Fatalf("reloaded config = %+v", got)
	}
}

func TestLoad_SourceCaseInsensitive(t *testing.T) {
	writeRoot(t, `
rules:
  - { source: Path,   name: n, rule: number }
  - { source: HEADER, name: X-Id, rule: number }
`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Rules[0].Source != "path" || cfg.Rules[1].Source != "header" {
		t.Fatalf("sources = %q, %q; want lowercased", cfg.Rules[0].Source, cfg.Rules[1].Source)
	}
}
