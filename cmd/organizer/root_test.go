package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"organizer/internal/testsupport"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRequiresPolicy(t *testing.T) {
	root := t.TempDir()
	out, err := executeRoot(t, root)
	if err == nil {
		t.Fatal("expected usage error when no policy flag is given")
	}
	if !strings.Contains(err.Error(), "--by-type") {
		t.Fatalf("error should name the policy flags: %v", err)
	}
	// Help text is printed before the error is returned.
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestRootRejectsInvalidSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	if _, err := executeRoot(t, missing, "--by-type"); err == nil {
		t.Fatal("expected error for invalid source directory")
	}
}

func TestRootSortsByType(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "photo.png"), "pixels")

	out, err := executeRoot(t, root, "--by-type")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "Moved 1 file(s).") {
		t.Fatalf("missing summary line in %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "images", "photo.png")); err != nil {
		t.Fatalf("file not organized: %v", err)
	}
}

func TestRootDryRun(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "song.mp3"), "notes")

	out, err := executeRoot(t, root, "--by-type", "--dry-run")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "Would move 1 file(s).") {
		t.Fatalf("missing dry-run summary in %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "song.mp3")); err != nil {
		t.Fatalf("dry run moved the file: %v", err)
	}
}

func TestConfigSampleCommand(t *testing.T) {
	out, err := executeRoot(t, "config", "sample")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "[log]") {
		t.Fatalf("sample output missing [log] section: %q", out)
	}
}
