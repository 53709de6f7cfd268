package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_missingUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != Default() {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestLoad_partialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	body := "show_fps: true\nloading_delay: 500ms\nwidth: -3\nmove_speed: 0.5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.ShowFPS {
		t.Fatalf("show_fps not applied")
	}
	if p.LoadingDelay != 500*time.Millisecond {
		t.Fatalf("loading delay %v", p.LoadingDelay)
	}
	if p.Width != Default().Width {
		t.Fatalf("invalid width should fall back, got %d", p.Width)
	}
	if p.MoveSpeed != 0.5 {
		t.Fatalf("move speed %v", p.MoveSpeed)
	}
	if p.HelpDuration != 5*time.Second || !p.FloorVisible {
		t.Fatalf("unspecified fields lost their defaults: %+v", p)
	}
}

func TestLoad_malformedReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte("show_fps: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if p != Default() {
		t.Fatalf("expected defaults on parse error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.yaml")
	want := Default()
	want.ShowMemAlloc = true
	want.HelpDuration = 9 * time.Second
	want.MetricsAddr = "127.0.0.1:9100"
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUpdate_rewritesOnlyPatchedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	base := Default()
	base.Width = 1600
	if err := Save(path, base); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := Update(path, func(p *Prefs) {
		p.ShowFPS = true
		p.FloorVisible = false
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := base
	want.ShowFPS = true
	want.FloorVisible = false
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUpdate_missingFileStartsFromDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "portfolio.yaml")
	if err := Update(path, func(p *Prefs) { p.ShowMemAlloc = true }); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	want.ShowMemAlloc = true
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUpdate_malformedFileLeftUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	bad := []byte("width: [oops\n")
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Update(path, func(p *Prefs) { p.ShowFPS = true }); err == nil {
		t.Fatalf("expected parse error")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(bad) {
		t.Fatalf("malformed file was rewritten: %q", data)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:    " debug ",
		EnvMetricsAddr: ":9100",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	p := Default().ApplyEnv(lookup)
	if p.LogLevel != "debug" || p.MetricsAddr != ":9100" {
		t.Fatalf("env not applied: %+v", p)
	}
	p = Default().ApplyEnv(func(string) (string, bool) { return "", false })
	if p.LogLevel != "info" || p.MetricsAddr != "" {
		t.Fatalf("unset env changed prefs: %+v", p)
	}
}
