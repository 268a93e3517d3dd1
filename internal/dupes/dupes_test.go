package dupes_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"organizer/internal/dupes"
	"organizer/internal/logging"
	"organizer/internal/scan"
	"organizer/internal/testsupport"
)

func entries(t *testing.T, root string) []*scan.File {
	t.Helper()
	files, err := scan.Files(root, false)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return files
}

func TestFindKeepsOldestMovesRest(t *testing.T) {
	root := t.TempDir()
	t0 := time.Now().Add(-48 * time.Hour)
	testsupport.WriteFileMtime(t, filepath.Join(root, "b.txt"), "X", t0.Add(time.Hour))
	testsupport.WriteFileMtime(t, filepath.Join(root, "a.txt"), "X", t0)
	testsupport.WriteFileMtime(t, filepath.Join(root, "c.txt"), "X", t0.Add(2*time.Hour))

	clusters := dupes.New(logging.NewNop()).Find(context.Background(), entries(t, root))
	if len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %d", len(clusters))
	}
	cluster := clusters[0]
	if cluster.Survivor().Base() != "a.txt" {
		t.Fatalf("survivor = %s, want a.txt", cluster.Survivor().Base())
	}
	if got := len(cluster.Duplicates()); got != 2 {
		t.Fatalf("expected 2 duplicates, got %d", got)
	}
}

func TestFindExcludesZeroLengthFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"e1", "e2", "e3"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	clusters := dupes.New(logging.NewNop()).Find(context.Background(), entries(t, root))
	if len(clusters) != 0 {
		t.Fatalf("empty files must never cluster, got %d clusters", len(clusters))
	}
}

func TestFindNeverHashesUniqueSizes(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFileMtime(t, filepath.Join(root, "one.txt"), "a", time.Now())
	testsupport.WriteFileMtime(t, filepath.Join(root, "two.txt"), "bb", time.Now())
	testsupport.WriteFileMtime(t, filepath.Join(root, "three.txt"), "ccc", time.Now())

	hashed := 0
	detector := dupes.NewWithHashFunc(logging.NewNop(), func(path string) (uint64, error) {
		hashed++
		return 0, nil
	})
	clusters := detector.Find(context.Background(), entries(t, root))
	if hashed != 0 {
		t.Fatalf("unique sizes were hashed %d times", hashed)
	}
	if len(clusters) != 0 {
		t.Fatalf("unexpected clusters: %d", len(clusters))
	}
}

func TestFindSameSizeDifferentContent(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFileMtime(t, filepath.Join(root, "x.txt"), "abc", time.Now())
	testsupport.WriteFileMtime(t, filepath.Join(root, "y.txt"), "def", time.Now())

	clusters := dupes.New(logging.NewNop()).Find(context.Background(), entries(t, root))
	if len(clusters) != 0 {
		t.Fatal("same-size files with unique digests must not cluster")
	}
}

func TestFindDropsFilesThatFailHashing(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFileMtime(t, filepath.Join(root, "a.txt"), "same", time.Now())
	testsupport.WriteFileMtime(t, filepath.Join(root, "b.txt"), "same", time.Now())
	testsupport.WriteFileMtime(t, filepath.Join(root, "c.txt"), "same", time.Now())

	detector := dupes.NewWithHashFunc(logging.NewNop(), func(path string) (uint64, error) {
		if filepath.Base(path) == "b.txt" {
			return 0, errors.New("read error")
		}
		return 7, nil
	})
	clusters := detector.Find(context.Background(), entries(t, root))
	if len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %d", len(clusters))
	}
	for _, member := range clusters[0].Members {
		if member.Base() == "b.txt" {
			t.Fatal("unverifiable file must not appear in a cluster")
		}
	}
	if len(clusters[0].Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(clusters[0].Members))
	}
}

func TestFindEqualTimestampsKeepEnumerationOrder(t *testing.T) {
	root := t.TempDir()
	stamp := time.Now().Add(-time.Hour).Truncate(time.Second)
	testsupport.WriteFileMtime(t, filepath.Join(root, "first.txt"), "tie", stamp)
	testsupport.WriteFileMtime(t, filepath.Join(root, "second.txt"), "tie", stamp)

	clusters := dupes.New(logging.NewNop()).Find(context.Background(), entries(t, root))
	if len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %d", len(clusters))
	}
	// ReadDir yields lexical order, so "first.txt" is enumerated first and
	// must win the tie deterministically.
	if got := clusters[0].Survivor().Base(); got != "first.txt" {
		t.Fatalf("survivor = %s, want first.txt", got)
	}
}

func TestDuplicatesFlattensClusters(t *testing.T) {
	root := t.TempDir()
	base := time.Now().Add(-24 * time.Hour)
	testsupport.WriteFileMtime(t, filepath.Join(root, "a1.txt"), "AAAA", base)
	testsupport.WriteFileMtime(t, filepath.Join(root, "a2.txt"), "AAAA", base.Add(time.Minute))
	testsupport.WriteFileMtime(t, filepath.Join(root, "b1.txt"), "BBBBB", base)
	testsupport.WriteFileMtime(t, filepath.Join(root, "b2.txt"), "BBBBB", base.Add(time.Minute))
	testsupport.WriteFileMtime(t, filepath.Join(root, "b3.txt"), "BBBBB", base.Add(2*time.Minute))

	clusters := dupes.New(logging.NewNop()).Find(context.Background(), entries(t, root))
	moved := dupes.Duplicates(clusters)
	if len(moved) != 3 {
		t.Fatalf("expected 3 duplicates across clusters, got %d", len(moved))
	}
	for _, f := range moved {
		if f.Base() == "a1.txt" || f.Base() == "b1.txt" {
			t.Fatalf("survivor %s scheduled for relocation", f.Base())
		}
	}
}
