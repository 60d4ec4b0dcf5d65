package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReportWithNoRuns(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", cfgPath, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}

func TestReportListsRunAndJobs(t *testing.T) {
	cfgPath := writeTestConfig(t)
	base := t.TempDir()

	deckPath := filepath.Join(base, "deck.csv")
	if err := os.WriteFile(deckPath, []byte("1,Llanowar Elves,LEA,123\n"), 0o644); err != nil {
		t.Fatalf("write decklist: %v", err)
	}
	if _, err := runCLI(t,
		"--config", cfgPath,
		"render", deckPath,
		"--output", filepath.Join(base, "output"),
		"--skip-images",
	); err != nil {
		t.Fatalf("render --skip-images: %v", err)
	}

	out, err := runCLI(t, "--config", cfgPath, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "skip-images")
	requireContains(t, out, deckPath)

	out, err = runCLI(t, "--config", cfgPath, "report", "1")
	if err != nil {
		t.Fatalf("report 1: %v", err)
	}
	requireContains(t, out, "Llanowar Elves (LEA #123)")
	requireContains(t, out, "predicted")
}

func TestReportRejectsBadRunID(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runCLI(t, "--config", cfgPath, "report", "not-a-number"); err == nil {
		t.Fatal("expected error for non-numeric run id")
	}
}
