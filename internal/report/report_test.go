package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	a, b := NewRun(), NewRun()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("run IDs not unique: %q %q", a.ID, b.ID)
	}
	if a.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestSpeedup(t *testing.T) {
	r := Run{Sequential: 300 * time.Millisecond, Parallel: 100 * time.Millisecond}
	if got := r.Speedup(); got != 3 {
		t.Errorf("Speedup = %v, want 3", got)
	}
	if got := (Run{Sequential: time.Second}).Speedup(); got != 0 {
		t.Errorf("Speedup without parallel time = %v, want 0", got)
	}
}

func TestWriteText(t *testing.T) {
	identical := true
	r := Run{
		ID:          "run-1",
		Timestamp:   time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Width:       640,
		Height:      480,
		Workers:     8,
		Sequential:  2 * time.Second,
		Parallel:    500 * time.Millisecond,
		Identical:   &identical,
		InputPaths:  []string{"a.ppm"},
		OutputPaths: []string{"output_1.ppm"},
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"=== Grayscale run run-1 ===",
		"Timestamp: 2024-05-01 12:30:00",
		"Image: 640x480",
		"Processing without workers takes 2.000000 s",
		"Processing with 8 workers takes 0.500000 s",
		"Speedup: 4.00x",
		"Outputs identical: true",
		"  1. a.ppm",
		"  1. output_1.ppm",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextSeparateInputs(t *testing.T) {
	r := Run{
		ID:             "run-2",
		Width:          4,
		Height:         4,
		ParallelWidth:  200,
		ParallelHeight: 100,
		Workers:        8,
		Sequential:     time.Millisecond,
		Parallel:       100 * time.Millisecond,
		InputPaths:     []string{"small.ppm", "west_1.ppm"},
	}
	if s := r.Speedup(); s != 0 {
		t.Errorf("Speedup across different inputs = %v, want 0", s)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sequential image: 4x4", "Parallel image: 200x100"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	for _, bad := range []string{"Speedup", "Image: 4x4"} {
		if strings.Contains(out, bad) {
			t.Errorf("report contains %q:\n%s", bad, out)
		}
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteTextError(t *testing.T) {
	if err := WriteText(brokenWriter{}, NewRun()); err == nil {
		t.Fatal("expected write error")
	}
}

func TestFields(t *testing.T) {
	f := Fields(Run{ID: "x", Workers: 4, Sequential: 1500, Parallel: 700})
	if f["workers"] != "4" || f["sequential_ns"] != "1500" || f["parallel_ns"] != "700" {
		t.Errorf("unexpected fields %v", f)
	}
	if _, ok := f["identical"]; ok {
		t.Error("identical reported without a parity check")
	}
}

// Needs a live server: RAWPIX_REDIS_ADDR=localhost:6379 go test ./internal/report
func TestRedisPublisher(t *testing.T) {
	addr := os.Getenv("RAWPIX_REDIS_ADDR")
	if addr == "" {
		t.Skip("RAWPIX_REDIS_ADDR not set")
	}
	ctx := context.Background()
	stream := "rawpix:test:" + NewRun().ID
	p, err := NewRedisPublisher(ctx, addr, stream)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer p.Close()
	defer p.client.Del(ctx, stream)

	r := NewRun()
	r.Workers = 8
	id, err := p.Publish(ctx, r)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	msgs, err := p.client.XRange(ctx, stream, id, id).Result()
	if err != nil || len(msgs) != 1 {
		t.Fatalf("XRange: %v %v", msgs, err)
	}
	if msgs[0].Values["id"] != r.ID || msgs[0].Values["workers"] != "8" {
		t.Errorf("unexpected entry %v", msgs[0].Values)
	}
}
