package fileutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicSameDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out", "chart.png")

	if err := WriteFileAtomicSameDir(dst, []byte("first"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteFileAtomicSameDir(dst, []byte("second"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second" {
		t.Fatalf("dst=%q", string(b))
	}

	ents, err := os.ReadDir(filepath.Dir(dst))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(ents) != 1 {
		t.Fatalf("leftover temp files: %v", ents)
	}
}

func TestMissingOrEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "log.csv")

	missing, err := MissingOrEmpty(p)
	if err != nil || !missing {
		t.Fatalf("missing=%v err=%v", missing, err)
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	empty, err := MissingOrEmpty(p)
	if err != nil || !empty {
		t.Fatalf("empty=%v err=%v", empty, err)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := MissingOrEmpty(p)
	if err != nil || got {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestTruncate_CountsRunes(t *testing.T) {
	t.Parallel()

	if got := Truncate("  سعيد جدا  ", 4); got != "سعيد…" {
		t.Fatalf("got=%q", got)
	}
	if got := Truncate("short", 0); got != "short" {
		t.Fatalf("got=%q", got)
	}
}

func TestDecodeModelJSON(t *testing.T) {
	t.Parallel()

	var out struct {
		Label string `json:"label"`
	}
	if err := DecodeModelJSON("```json\n{\"label\":\"4 stars\"}\n```", &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Label != "4 stars" {
		t.Fatalf("Label=%q", out.Label)
	}
	if err := DecodeModelJSON("   ", &out); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err=%v", err)
	}
	if err := DecodeModelJSON("no json here", &out); err == nil {
		t.Fatalf("expected error")
	}
}
