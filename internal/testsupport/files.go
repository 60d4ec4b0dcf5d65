package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDecklist writes decklist CSV content to a temp file and returns its path.
func WriteDecklist(t testing.TB, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "deck.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write decklist: %v", err)
	}
	return path
}

// WriteArtwork creates a placeholder artwork file at the expected location.
func WriteArtwork(t testing.TB, dir, fileName string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir artwork dir: %v", err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatalf("write artwork %s: %v", fileName, err)
	}
	return path
}
