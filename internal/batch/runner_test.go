package batch_test

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cardforge/internal/batch"
	"cardforge/internal/decklist"
	"cardforge/internal/editor"
	"cardforge/internal/logging"
	"cardforge/internal/mpc"
	"cardforge/internal/runstore"
	"cardforge/internal/testsupport"
)

type fakeRenderer struct {
	mu      sync.Mutex
	calls   []string
	failOn  map[string]error
	results map[string]editor.Result
}

func (f *fakeRenderer) Render(ctx context.Context, job decklist.RenderJob) (editor.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, job.OutputFile)
	if err, ok := f.failOn[job.OutputFile]; ok {
		return editor.Result{}, err
	}
	if result, ok := f.results[job.OutputFile]; ok {
		return result, nil
	}
	return editor.Result{
		Version:   editor.Applied(),
		Artwork:   editor.Applied(),
		SetSymbol: editor.Applied(),
	}, nil
}

func (f *fakeRenderer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func decodeManifest(t *testing.T, path string) mpc.Order {
	t.Helper()

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var order mpc.Order
	if err := xml.Unmarshal(payload, &order); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	return order
}

func TestRunSkipImagesPredictsOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	base := t.TempDir()
	deckPath := testsupport.WriteDecklist(t, base, "1,Llanowar Elves,LEA,123\n1,Forest,LEA,254\n")

	renderer := &fakeRenderer{}
	runner, err := batch.NewRunner(cfg, store, logging.NewNop(), batch.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	summary, err := runner.Run(context.Background(), batch.Request{
		DecklistPath: deckPath,
		ArtworkDir:   filepath.Join(base, "input"),
		OutputDir:    filepath.Join(base, "output"),
		SkipImages:   true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if renderer.callCount() != 0 {
		t.Fatalf("expected no renderer calls in skip-images mode, got %d", renderer.callCount())
	}
	if summary.Quantity != 2 || summary.Bracket != 18 {
		t.Fatalf("unexpected order figures: quantity=%d bracket=%d", summary.Quantity, summary.Bracket)
	}
	if summary.ManifestPath != filepath.Join(base, "deck.xml") {
		t.Fatalf("manifest written to %s", summary.ManifestPath)
	}

	order := decodeManifest(t, summary.ManifestPath)
	if len(order.Fronts.Cards) != 2 {
		t.Fatalf("expected 2 fronts, got %d", len(order.Fronts.Cards))
	}
	if order.Fronts.Cards[0].Name != "Llanowar_Elves_LEA_123_0001.png" {
		t.Fatalf("unexpected first front %q", order.Fronts.Cards[0].Name)
	}
	if order.Fronts.Cards[1].Query != "forest" {
		t.Fatalf("unexpected second query %q", order.Fronts.Cards[1].Query)
	}

	jobs, err := store.JobsForRun(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("JobsForRun failed: %v", err)
	}
	for _, job := range jobs {
		if job.Status != runstore.JobPredicted {
			t.Fatalf("expected predicted status, got %q", job.Status)
		}
	}
}

func TestRunDropsFailedJobsAndContinues(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	base := t.TempDir()
	deckPath := testsupport.WriteDecklist(t, base, "3,Forest,LEA,254\n")

	renderer := &fakeRenderer{failOn: map[string]error{
		"Forest_LEA_254_0002.png": errors.New("editor timed out"),
	}}
	runner, err := batch.NewRunner(cfg, store, logging.NewNop(), batch.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	summary, err := runner.Run(context.Background(), batch.Request{
		DecklistPath: deckPath,
		ArtworkDir:   filepath.Join(base, "input"),
		OutputDir:    filepath.Join(base, "output"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Jobs != 3 || summary.Completed != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Quantity != 2 {
		t.Fatalf("failed copy should be dropped from the order, quantity=%d", summary.Quantity)
	}

	order := decodeManifest(t, summary.ManifestPath)
	if len(order.Fronts.Cards) != 2 {
		t.Fatalf("expected 2 fronts, got %d", len(order.Fronts.Cards))
	}
	// Slots stay contiguous even when a middle copy drops out.
	if order.Fronts.Cards[0].Slots != "0" || order.Fronts.Cards[1].Slots != "1" {
		t.Fatalf("non-contiguous slots: %q %q", order.Fronts.Cards[0].Slots, order.Fronts.Cards[1].Slots)
	}
	if order.Fronts.Cards[1].Name != "Forest_LEA_254_0003.png" {
		t.Fatalf("unexpected surviving front %q", order.Fronts.Cards[1].Name)
	}

	jobs, err := store.JobsForRun(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("JobsForRun failed: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 job records, got %d", len(jobs))
	}
	if jobs[1].Status != runstore.JobFailed {
		t.Fatalf("expected middle job failed, got %q", jobs[1].Status)
	}
	if jobs[1].ErrorMessage == "" {
		t.Fatal("expected failed job to carry an error message")
	}
	if jobs[2].Status != runstore.JobCompleted {
		t.Fatalf("expected run to continue past the failure, got %q", jobs[2].Status)
	}
}

func TestRunRecordsStepFidelity(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	base := t.TempDir()
	deckPath := testsupport.WriteDecklist(t, base, "1,Urza's Tower,ATQ,85\n")

	renderer := &fakeRenderer{results: map[string]editor.Result{
		"Urza's_Tower_ATQ_85_0001.png": {
			Version:   editor.Skipped("printing not listed: Urza's Tower (ATQ #85)"),
			Artwork:   editor.Applied(),
			SetSymbol: editor.Applied(),
		},
	}}
	runner, err := batch.NewRunner(cfg, store, logging.NewNop(), batch.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	summary, err := runner.Run(context.Background(), batch.Request{
		DecklistPath: deckPath,
		ArtworkDir:   filepath.Join(base, "input"),
		OutputDir:    filepath.Join(base, "output"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Completed != 1 {
		t.Fatalf("degraded job should still complete, got %+v", summary)
	}

	jobs, err := store.JobsForRun(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("JobsForRun failed: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job record, got %d", len(jobs))
	}
	if jobs[0].VersionOutcome != "skipped: printing not listed: Urza's Tower (ATQ #85)" {
		t.Fatalf("unexpected version outcome %q", jobs[0].VersionOutcome)
	}
	if jobs[0].ArtworkOutcome != "applied" {
		t.Fatalf("unexpected artwork outcome %q", jobs[0].ArtworkOutcome)
	}

	// The degraded copy still ships in the order.
	order := decodeManifest(t, summary.ManifestPath)
	if len(order.Fronts.Cards) != 1 {
		t.Fatalf("expected 1 front, got %d", len(order.Fronts.Cards))
	}
	if order.Fronts.Cards[0].Query != "urza's tower" {
		t.Fatalf("unexpected query %q", order.Fronts.Cards[0].Query)
	}
}

func TestRunFailsOnMissingDecklist(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	runner, err := batch.NewRunner(cfg, store, logging.NewNop(), batch.WithRenderer(&fakeRenderer{}))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	_, err = runner.Run(context.Background(), batch.Request{
		DecklistPath: filepath.Join(t.TempDir(), "missing.csv"),
		OutputDir:    t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing decklist")
	}
}

func TestRunAppliesNameFilter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	base := t.TempDir()
	deckPath := testsupport.WriteDecklist(t, base, "1,Llanowar Elves,LEA,123\n1,Forest,LEA,254\n")

	renderer := &fakeRenderer{}
	runner, err := batch.NewRunner(cfg, store, logging.NewNop(), batch.WithRenderer(renderer))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	summary, err := runner.Run(context.Background(), batch.Request{
		DecklistPath: deckPath,
		ArtworkDir:   filepath.Join(base, "input"),
		OutputDir:    filepath.Join(base, "output"),
		CardNames:    []string{"Forest"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Jobs != 1 || summary.Quantity != 1 {
		t.Fatalf("filter should keep only Forest: %+v", summary)
	}
	if renderer.callCount() != 1 {
		t.Fatalf("expected 1 renderer call, got %d", renderer.callCount())
	}
}
