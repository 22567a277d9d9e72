package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tour.svg")

	got, err := UniquePath(path)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	if got != path {
		t.Errorf("UniquePath() = %q, want untouched %q", got, path)
	}

	for _, name := range []string{"tour.svg", "tour_1.svg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err = UniquePath(path)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	if want := filepath.Join(dir, "tour_2.svg"); got != want {
		t.Errorf("UniquePath() = %q, want %q", got, want)
	}
}

func TestUniquePathKeepsExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.tar.gz")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := UniquePath(path)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	if want := filepath.Join(dir, "result.tar_1.gz"); got != want {
		t.Errorf("UniquePath() = %q, want %q", got, want)
	}
}
