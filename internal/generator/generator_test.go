package generator

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xll-gen/bin2c/internal/ui"
)

func quietOptions(outDir string) Options {
	return Options{
		OutDir: outDir,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func writeInput(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gen", "c")

	a := writeInput(t, inDir, "a-b.bin", []byte{0x00, 0x41, 0xFF})
	b := writeInput(t, inDir, "sub/empty.dat", nil)

	var progress bytes.Buffer
	opts := quietOptions(outDir)
	opts.UI = ui.New(&progress)
	if err := Generate([]string{a, b}, opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, f := range []string{"a_b_bin.c", "a_b_bin.h", "empty_dat.c", "empty_dat.h"} {
		if _, err := os.Stat(filepath.Join(outDir, f)); err != nil {
			t.Errorf("File missing: %s", f)
		}
	}

	c, err := os.ReadFile(filepath.Join(outDir, "a_b_bin.c"))
	if err != nil {
		t.Fatal(err)
	}
	want := Encode([]byte{0x00, 0x41, 0xFF}, "a_b_bin", EncodeConfig{}).Definition
	if string(c) != want {
		t.Errorf("a_b_bin.c =\n%q\nwant\n%q", c, want)
	}

	h, err := os.ReadFile(filepath.Join(outDir, "empty_dat.h"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(h), "\n#endif") {
		t.Errorf("header should end with #endif and no newline: %q", h)
	}

	if !strings.Contains(progress.String(), "Converting file "+a+"...") {
		t.Errorf("progress output missing converting line:\n%s", progress.String())
	}
}

func TestGenerate_NoInputs(t *testing.T) {
	err := Generate(nil, quietOptions(t.TempDir()))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
}

func TestGenerate_SourceUnreadable(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	good := writeInput(t, inDir, "good.bin", []byte("ok"))
	missing := filepath.Join(inDir, "missing.bin")
	after := writeInput(t, inDir, "after.bin", []byte("never"))

	err := Generate([]string{good, missing, after}, quietOptions(outDir))
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected *SourceError, got %v", err)
	}
	if srcErr.Path != missing {
		t.Errorf("SourceError.Path = %q, want %q", srcErr.Path, missing)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}

	// Outputs of the earlier source stay, later sources are never touched.
	if _, err := os.Stat(filepath.Join(outDir, "good_bin.c")); err != nil {
		t.Errorf("earlier output removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "after_bin.c")); !os.IsNotExist(err) {
		t.Errorf("later source should not be converted")
	}
}

func TestGenerate_DestinationUnwritable(t *testing.T) {
	inDir := t.TempDir()
	in := writeInput(t, inDir, "x.bin", []byte{1})

	// A regular file where the output directory should be.
	blocker := writeInput(t, t.TempDir(), "out", []byte("file"))

	err := Generate([]string{in}, quietOptions(blocker))
	var dstErr *DestinationError
	if !errors.As(err, &dstErr) {
		t.Fatalf("expected *DestinationError, got %v", err)
	}
}

func TestGenerate_HeaderUncreatable(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	in := writeInput(t, inDir, "x.bin", []byte{1})

	// A directory named like the header makes its create fail.
	if err := os.Mkdir(filepath.Join(outDir, "x_bin.h"), 0755); err != nil {
		t.Fatal(err)
	}

	err := Generate([]string{in}, quietOptions(outDir))
	var dstErr *DestinationError
	if !errors.As(err, &dstErr) {
		t.Fatalf("expected *DestinationError, got %v", err)
	}
	if filepath.Base(dstErr.Path) != "x_bin.h" {
		t.Errorf("DestinationError.Path = %q, want the header", dstErr.Path)
	}
}

func TestGenerate_Collision(t *testing.T) {
	inDir := t.TempDir()
	first := writeInput(t, inDir, "one/data.bin", []byte{0x01})
	second := writeInput(t, inDir, "two/data-bin", []byte{0x02, 0x03})

	tests := []struct {
		name     string
		policy   CollisionPolicy
		wantErr  bool
		wantSize string
	}{
		{"default overwrites", "", false, "data_bin_size = 2;"},
		{"overwrite", CollisionOverwrite, false, "data_bin_size = 2;"},
		{"error", CollisionFail, true, "data_bin_size = 1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := t.TempDir()
			opts := quietOptions(outDir)
			opts.Collision = tt.policy

			err := Generate([]string{first, second}, opts)
			var collErr *CollisionError
			if tt.wantErr {
				if !errors.As(err, &collErr) {
					t.Fatalf("expected *CollisionError, got %v", err)
				}
				if collErr.Symbol != "data_bin" || collErr.First != first || collErr.Second != second {
					t.Errorf("unexpected collision details: %+v", collErr)
				}
			} else if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			c, err := os.ReadFile(filepath.Join(outDir, "data_bin.c"))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(c), tt.wantSize) {
				t.Errorf("data_bin.c missing %q:\n%s", tt.wantSize, c)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	out := EncodedOutput{Declaration: "decl", Definition: "def"}
	if err := WriteOutput(dir, "sym", out); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	for name, want := range map[string]string{"sym.c": "def", "sym.h": "decl"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}
