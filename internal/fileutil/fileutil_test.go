package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBackupPath(t *testing.T) {
	tests := []struct {
		path, suffix, want string
	}{
		{"/cfg/sounds.json", "-old", "/cfg/sounds-old.json"},
		{"/cfg/sounds", "-old", "/cfg/sounds-old"},
		{"rel/a.b.json", ".bak", "rel/a.b.bak.json"},
	}
	for _, tt := range tests {
		if got := BackupPath(tt.path, tt.suffix); got != tt.want {
			t.Errorf("BackupPath(%q, %q) = %q, want %q", tt.path, tt.suffix, got, tt.want)
		}
	}
}

func TestBackupCopiesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sounds.json")
	if err := os.WriteFile(src, []byte("[]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sounds-old.json"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	target, err := Backup(src, "-old")
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestBackupMissingSource(t *testing.T) {
	if _, err := Backup(filepath.Join(t.TempDir(), "missing.json"), "-old"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "dst.json")
	content := []byte(`[{"file":"a.mp3"}]`)
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestWriteAtomicCreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := WriteAtomic(path, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteAtomic(path, []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("got %q, want %q", got, "second")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode not preserved: %v", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteAtomicMissingDirectory(t *testing.T) {
	if err := WriteAtomic(filepath.Join(t.TempDir(), "nope", "out.json"), []byte("x")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sounds.json")

	first, err := Lock(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Lock(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := Unlock(first); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".lock"); !os.IsNotExist(err) {
		t.Fatalf("expected lock file removed, stat err=%v", err)
	}

	again, err := Lock(path)
	if err != nil {
		t.Fatalf("relock after unlock: %v", err)
	}
	if err := Unlock(again); err != nil {
		t.Fatal(err)
	}
}
