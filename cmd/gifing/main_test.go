package main

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelmcallister/gifing/internal/cliconfig"
	"github.com/michaelmcallister/gifing/pkg/colors"
	"github.com/michaelmcallister/gifing/pkg/label"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.Set(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestMakeAnimation(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	writePNG(t, a, 40, 20)
	writePNG(t, b, 20, 40)

	cfg := cliconfig.DefaultConfig()
	cfg.Sources = []string{a, b}
	cfg.Width, cfg.Height = 64, 48
	cfg.DurationMS = 200
	cfg.RepeatLastFrame = 2
	cfg.Output = filepath.Join(dir, "out")

	path, err := makeAnimation(cfg)
	if err != nil {
		t.Fatalf("makeAnimation() unexpected error: %v", err)
	}
	if path != cfg.Output+".gif" {
		t.Errorf("path = %q, want %q", path, cfg.Output+".gif")
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("DecodeAll() unexpected error: %v", err)
	}
	if len(g.Image) != 4 {
		t.Errorf("frames = %d, want 4", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 20 {
			t.Errorf("Delay[%d] = %d, want 20", i, d)
		}
	}
	if g.Config.Width != 64 || g.Config.Height != 48 {
		t.Errorf("size = %dx%d, want 64x48", g.Config.Width, g.Config.Height)
	}
}

func TestMakeAnimationLabelMismatch(t *testing.T) {
	cfg := cliconfig.DefaultConfig()
	cfg.Sources = []string{"a.png", "b.png"}
	cfg.Labels = []string{"one"}
	if _, err := makeAnimation(cfg); err == nil {
		t.Error("makeAnimation() expected error for label count mismatch")
	}
}

func TestPrintPalette(t *testing.T) {
	var buf bytes.Buffer
	if err := printPalette(&buf); err != nil {
		t.Fatalf("printPalette() unexpected error: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(colors.Names()) {
		t.Errorf("lines = %d, want %d", len(lines), len(colors.Names()))
	}
	for _, name := range colors.Names() {
		rgb, _ := colors.Named(name)
		if !strings.Contains(out, name) || !strings.Contains(out, rgb.Hex()) {
			t.Errorf("output missing %s %s", name, rgb.Hex())
		}
	}
}

func TestFontsCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"fonts", "--env-file", filepath.Join(t.TempDir(), ".env")})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	out := buf.String()
	for _, name := range label.FontNames() {
		if !strings.Contains(out, name) {
			t.Errorf("output missing font %q", name)
		}
	}
	if !strings.Contains(out, label.DefaultStyle().Font.String()+" (default)") {
		t.Errorf("output does not mark the default font:\n%s", out)
	}
}

func TestWatchSet(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	cfgPath := filepath.Join(dir, "conf", "gifing.toml")

	cfg := cliconfig.DefaultConfig()
	cfg.Sources = []string{filepath.Join(dir, "a.jpg")}
	cfg.Directory = frames
	cfg.Output = filepath.Join(frames, "out.gif")

	set := newWatchSet(cfg, cfgPath)

	wantDirs := []string{dir, filepath.Join(dir, "conf"), frames}
	if got := set.Dirs(); strings.Join(got, ",") != strings.Join(wantDirs, ",") {
		t.Errorf("Dirs() = %v, want %v", got, wantDirs)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "source", path: filepath.Join(dir, "a.jpg"), want: true},
		{name: "unrelated file next to source", path: filepath.Join(dir, "b.jpg"), want: false},
		{name: "config file", path: cfgPath, want: true},
		{name: "new image in directory", path: filepath.Join(frames, "c.png"), want: true},
		{name: "non-image in directory", path: filepath.Join(frames, "notes.txt"), want: false},
		{name: "output file", path: cfg.Output, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.Relevant(tt.path); got != tt.want {
				t.Errorf("Relevant(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
