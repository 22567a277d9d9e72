package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/parse"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

func TestResolveInstancePathFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.txt")
	if err := os.WriteFile(path, []byte(validInstance), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := resolveInstancePath(path)
	if err != nil {
		t.Fatalf("resolveInstancePath() error: %v", err)
	}
	if got != path {
		t.Errorf("resolveInstancePath() = %q, want %q", got, path)
	}
}

func TestResolveInstancePathMissing(t *testing.T) {
	_, err := resolveInstancePath(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("resolveInstancePath() should fail on a missing path")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidPath)
	}
}

func TestResolveInstancePathEmptyDir(t *testing.T) {
	_, err := resolveInstancePath(t.TempDir())
	if err == nil {
		t.Fatal("resolveInstancePath() should fail on a directory without instances")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidPath) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidPath)
	}
}

func TestTourStops(t *testing.T) {
	inst, err := parse.ReadText(validInstance, "berlin3")
	if err != nil {
		t.Fatal(err)
	}
	sol, err := tsp.Solve(context.Background(), inst.Matrix)
	if err != nil {
		t.Fatal(err)
	}

	stops := tourStops(inst, sol)
	if len(stops) != 4 {
		t.Fatalf("got %d stops, want 4 (closed tour over 3 cities)", len(stops))
	}
	if stops[0] != "Berlin" || stops[len(stops)-1] != "Berlin" {
		t.Errorf("tour should start and end at Berlin: %v", stops)
	}
}
