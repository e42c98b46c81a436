package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivierh59500/neuralgraph/settings"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigPath(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	out, err := run(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	want := filepath.Join(tmp, "neuralgraph", "config.toml")
	if strings.TrimSpace(out) != want {
		t.Errorf("expected %q, got %q", want, out)
	}

	out, _ = run(t, "config", "path", "--config", "/tmp/x.toml")
	if strings.TrimSpace(out) != "/tmp/x.toml" {
		t.Errorf("--config not honored: %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ng", "config.toml")

	if _, err := run(t, "config", "init", "--config", path, "--preset", "iceberg"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Preset != "iceberg" {
		t.Errorf("expected preset iceberg, got %q", s.Preset)
	}

	out, err := run(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("second init should skip, got %q", out)
	}
}

func TestConfigInitUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := run(t, "config", "init", "--config", path, "--preset", "penguin")
	if !errors.Is(err, settings.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := run(t, "config", "show", "--config", path, "--preset", "iceberg")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{`preset = "iceberg"`, "max_distance = 500.0", "[palette]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	outDir := filepath.Join(dir, "frames")

	out, err := run(t, "render", "--config", path, "--width", "64", "--height", "48",
		"--frames", "4", "--every", "2", "--out", outDir, "--seed", "3")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "2 frames") {
		t.Errorf("unexpected output %q", out)
	}
	matches, _ := filepath.Glob(filepath.Join(outDir, "frame-*.png"))
	if len(matches) != 2 {
		t.Errorf("expected 2 files, got %v", matches)
	}
}
