package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendLineCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "history.log")
	fsys := OSFS{}
	for _, line := range []string{"one", "two"} {
		if err := fsys.AppendLine(path, line); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestWriteTempAndRemove(t *testing.T) {
	dir := t.TempDir()
	fsys := OSFS{}

	name, err := fsys.WriteTemp(dir, "lprun_text_*.ps", []byte("%!PS"))
	if err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(name), "lprun_text_") || filepath.Ext(name) != ".ps" {
		t.Fatalf("unexpected temp name %q", name)
	}
	if ok, _ := fsys.Exists(name); !ok {
		t.Fatalf("temp file missing")
	}

	if err := fsys.Remove(name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := fsys.Remove(name); err != nil {
		t.Fatalf("removing twice should be a no-op: %v", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone")
	}
}

func TestExists(t *testing.T) {
	fsys := OSFS{}
	dir := t.TempDir()

	if ok, err := fsys.Exists(filepath.Join(dir, "missing.pdf")); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	if ok, err := fsys.Exists(dir); !ok || err != nil {
		t.Fatalf("existing dir: ok=%v err=%v", ok, err)
	}
}
