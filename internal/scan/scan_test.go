package scan_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"organizer/internal/scan"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func names(files []*scan.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Base())
	}
	sort.Strings(out)
	return out
}

func TestFilesSkipsHiddenAndDirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "visible.txt"))
	touch(t, filepath.Join(root, ".hidden"))
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := scan.Files(root, false)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	got := names(files)
	if len(got) != 1 || got[0] != "visible.txt" {
		t.Fatalf("unexpected enumeration: %v", got)
	}
}

func TestFilesNonRecursiveIgnoresSubdirectories(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "top.txt"))
	touch(t, filepath.Join(root, "sub", "nested.txt"))

	files, err := scan.Files(root, false)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if got := names(files); len(got) != 1 || got[0] != "top.txt" {
		t.Fatalf("expected only top-level file, got %v", got)
	}
}

func TestFilesRecursiveFlattens(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "top.txt"))
	touch(t, filepath.Join(root, "sub", "nested.txt"))
	touch(t, filepath.Join(root, "sub", "deeper", "leaf.txt"))
	touch(t, filepath.Join(root, ".git", "object"))
	touch(t, filepath.Join(root, "sub", ".secret"))

	files, err := scan.Files(root, true)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	got := names(files)
	want := []string{"leaf.txt", "nested.txt", "top.txt"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFilesMissingRoot(t *testing.T) {
	if _, err := scan.Files(filepath.Join(t.TempDir(), "absent"), false); err == nil {
		t.Fatal("expected error for missing root")
	}
	if _, err := scan.Files(filepath.Join(t.TempDir(), "absent"), true); err == nil {
		t.Fatal("expected error for missing recursive root")
	}
}

func TestFileAttributesCached(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "data.txt")
	touch(t, path)

	f := scan.NewFile(path)
	size, ok := f.Size()
	if !ok || size != 1 {
		t.Fatalf("Size = %d, %v", size, ok)
	}
	if _, ok := f.ModTime(); !ok {
		t.Fatal("expected readable mtime")
	}

	// Attributes read once stay stable even after the file vanishes.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Size(); !ok {
		t.Fatal("cached size lost after removal")
	}

	ghost := scan.NewFile(path)
	if _, ok := ghost.Size(); ok {
		t.Fatal("vanished file should have no readable size")
	}
	if _, ok := ghost.ModTime(); ok {
		t.Fatal("vanished file should have no readable mtime")
	}
}
