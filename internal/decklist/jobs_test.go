package decklist_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cardforge/internal/decklist"
	"cardforge/internal/logging"
)

func TestExpandJobsNumbersEveryCopy(t *testing.T) {
	outputDir := t.TempDir()
	requests := []decklist.CardRequest{
		{Name: "Llanowar Elves", SetCode: "LEA", CollectorNumber: "123", Quantity: 3},
	}

	jobs := decklist.ExpandJobs(requests, "", outputDir, logging.NewNop())
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	for i, job := range jobs {
		want := fmt.Sprintf("Llanowar_Elves_LEA_123_%04d.png", i+1)
		if job.OutputFile != want {
			t.Fatalf("job %d: expected filename %q, got %q", i, want, job.OutputFile)
		}
		if job.CopyIndex != i+1 {
			t.Fatalf("job %d: expected copy index %d, got %d", i, i+1, job.CopyIndex)
		}
		if job.OutputPath != filepath.Join(outputDir, want) {
			t.Fatalf("job %d: unexpected output path %q", i, job.OutputPath)
		}
	}
}

func TestExpandJobsFilenamesAreUniqueAcrossRequests(t *testing.T) {
	requests := []decklist.CardRequest{
		{Name: "Giant Growth", SetCode: "LEA", CollectorNumber: "198", Quantity: 2},
		{Name: "Giant Growth", SetCode: "3ED", CollectorNumber: "201", Quantity: 2},
	}
	jobs := decklist.ExpandJobs(requests, "", t.TempDir(), logging.NewNop())

	seen := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		if _, dup := seen[job.OutputFile]; dup {
			t.Fatalf("duplicate output filename %q", job.OutputFile)
		}
		seen[job.OutputFile] = struct{}{}
	}
}

func TestExpandJobsResolvesArtwork(t *testing.T) {
	artworkDir := t.TempDir()
	artwork := filepath.Join(artworkDir, "Llanowar Elves_LEA_123.png")
	if err := os.WriteFile(artwork, []byte("png"), 0o644); err != nil {
		t.Fatalf("write artwork: %v", err)
	}

	requests := []decklist.CardRequest{
		{Name: "Llanowar Elves", SetCode: "LEA", CollectorNumber: "123", Quantity: 1},
		{Name: "Counterspell", SetCode: "LEA", CollectorNumber: "54", Quantity: 1},
	}
	jobs := decklist.ExpandJobs(requests, artworkDir, t.TempDir(), logging.NewNop())
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].ArtworkPath != artwork {
		t.Fatalf("expected artwork path %q, got %q", artwork, jobs[0].ArtworkPath)
	}
	if jobs[1].ArtworkPath != "" {
		t.Fatalf("expected missing artwork to leave path empty, got %q", jobs[1].ArtworkPath)
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Llanowar Elves":      "Llanowar_Elves",
		"  Serra  Angel  ":    "Serra_Angel",
		"Urza’s Tower":   "Urza's_Tower",
		"Sakura-Tribe Elder":  "Sakura-Tribe_Elder",
		"plain":               "plain",
		"tab\tand\nnewline":   "tab_and_newline",
	}
	for input, want := range cases {
		if got := decklist.Sanitize(input); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", input, got, want)
		}
	}
}
