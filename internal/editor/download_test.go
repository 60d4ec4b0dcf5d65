package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadCandidatesIncludeApostropheVariant(t *testing.T) {
	candidates := downloadCandidates("/tmp/dl", "abc-guid", "Urza's Tower.png")
	want := []string{
		filepath.Join("/tmp/dl", "abc-guid"),
		filepath.Join("/tmp/dl", "Urza's Tower.png"),
		filepath.Join("/tmp/dl", "Urza’s Tower.png"),
	}
	if len(candidates) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %v", len(want), len(candidates), candidates)
	}
	for i := range want {
		if candidates[i] != want[i] {
			t.Fatalf("candidate %d: expected %q, got %q", i, want[i], candidates[i])
		}
	}
}

func TestLocateDownloadPrefersGUID(t *testing.T) {
	dir := t.TempDir()
	guidPath := filepath.Join(dir, "guid-1234")
	if err := os.WriteFile(guidPath, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	found, err := locateDownload(dir, "guid-1234", "card.png")
	if err != nil {
		t.Fatalf("locateDownload: %v", err)
	}
	if found != guidPath {
		t.Fatalf("expected %q, got %q", guidPath, found)
	}
}

func TestLocateDownloadFallsBackToSuggested(t *testing.T) {
	dir := t.TempDir()
	suggestedPath := filepath.Join(dir, "Urza’s Tower.png")
	if err := os.WriteFile(suggestedPath, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	found, err := locateDownload(dir, "missing-guid", "Urza's Tower.png")
	if err != nil {
		t.Fatalf("locateDownload: %v", err)
	}
	if found != suggestedPath {
		t.Fatalf("expected %q, got %q", suggestedPath, found)
	}
}

func TestLocateDownloadMissing(t *testing.T) {
	if _, err := locateDownload(t.TempDir(), "g", "s.png"); err == nil {
		t.Fatal("expected error when nothing was downloaded")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.png")
	target := filepath.Join(dir, "out", "target.png")
	if err := os.WriteFile(source, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := moveFile(source, target); err != nil {
		t.Fatalf("moveFile: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatal("expected source to be gone")
	}
	data, err := os.ReadFile(target)
	if err != nil || string(data) != "data" {
		t.Fatalf("unexpected target contents %q, err %v", data, err)
	}
}
