package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/rawpix"
	"github.com/soypat/rawpix/filters"
	"github.com/soypat/rawpix/ppm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default,
// since cobra keeps parsed values on the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeImage(t *testing.T, path string, w, h int, seed int64) *rawpix.RGB {
	t.Helper()
	img, err := rawpix.NewRGB(w, h, 255)
	if err != nil {
		t.Fatal(err)
	}
	rand.New(rand.NewSource(seed)).Read(img.Pix)
	if err := ppm.Save(path, img); err != nil {
		t.Fatal(err)
	}
	return img
}

func TestIdentify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.ppm")
	img := writeImage(t, path, 4, 3, 1)
	out, err := execute(t, "identify", path, "--pixels", "2")
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	r, g, b := img.At(1, 0)
	for _, want := range []string{
		"Dimensions: 4 x 3",
		"Max value:  255",
		"Samples:    36 bytes",
		fmt.Sprintf("Pixel 1: R=%d G=%d B=%d", r, g, b),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Pixel 2:") {
		t.Errorf("printed more pixels than requested:\n%s", out)
	}
}

func TestIdentifyDefaultsAfterFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.ppm")
	writeImage(t, path, 4, 3, 6)
	if _, err := execute(t, "identify", path, "--pixels", "1"); err != nil {
		t.Fatalf("identify: %v", err)
	}
	out, err := execute(t, "identify", path)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if !strings.Contains(out, "Pixel 9:") || strings.Contains(out, "Pixel 10:") {
		t.Errorf("want the default 10 pixels:\n%s", out)
	}
}

func TestIdentifyBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ppm")
	if err := os.WriteFile(path, []byte("P5\n1 1\n255\n\x00"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "identify", path)
	if err == nil || !strings.Contains(err.Error(), "format error") {
		t.Fatalf("got %v, want format error", err)
	}
}

func TestGray(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ppm")
	src := writeImage(t, in, 17, 9, 2)
	want := src.Clone()
	filters.ApplyGrayscale(want.Pix, filters.ChunkRange{End: len(want.Pix)})

	for _, tc := range []struct {
		name string
		args []string
	}{
		{"parallel", []string{"--workers", "3", "--sequential=false"}},
		{"sequential", []string{"--sequential"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			outPath := filepath.Join(dir, tc.name+".ppm"+ppm.ZstdExt)
			args := append([]string{"gray", "-i", in, "-o", outPath}, tc.args...)
			if _, err := execute(t, args...); err != nil {
				t.Fatalf("gray: %v", err)
			}
			got, err := ppm.Load(outPath)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(want) {
				t.Error("output is not the grayscale of the input")
			}
		})
	}
}

func TestBench(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.ppm")
	writeImage(t, in, 40, 30, 3)
	reportPath := filepath.Join(dir, "report.txt")
	out, err := execute(t, "bench", "-i", in, "--workers", "6", "--rounds", "2", "--report", reportPath)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if !strings.Contains(out, "Outputs identical: true") {
		t.Errorf("unexpected report:\n%s", out)
	}
	saved, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(saved), "Processing with 6 workers") {
		t.Errorf("report file missing run:\n%s", saved)
	}
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "first.ppm"), 9, 9, 4)
	writeImage(t, filepath.Join(dir, "west_1.ppm"), 5, 7, 5)
	out, err := execute(t, "compare", "first.ppm", "--dir", dir, "--workers", "8")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, "Processing with 8 workers") {
		t.Errorf("unexpected report:\n%s", out)
	}
	for _, name := range []string{"output_1.ppm", "output_2.ppm"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}
