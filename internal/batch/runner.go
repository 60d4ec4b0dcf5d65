package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cardforge/internal/config"
	"cardforge/internal/decklist"
	"cardforge/internal/editor"
	"cardforge/internal/logging"
	"cardforge/internal/mpc"
	"cardforge/internal/runstore"
	"cardforge/internal/services"
)

// Request describes one batch invocation.
type Request struct {
	DecklistPath string
	ArtworkDir   string
	OutputDir    string
	CardNames    []string
	SkipImages   bool
}

// Summary reports what a finished run produced.
type Summary struct {
	RunID        int64
	Jobs         int
	Completed    int
	Failed       int
	Quantity     int
	Bracket      int
	ManifestPath string
}

// Runner executes the decklist-to-order pipeline: parse the decklist, render
// each copy through the editor, and write the order manifest. It enforces
// single-instance execution via a lock file.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *runstore.Store
	renderer editor.Renderer

	lockPath string
	lock     *flock.Flock
}

// Option customizes runner construction.
type Option func(*Runner)

// WithRenderer overrides the editor renderer. Tests use this to avoid
// launching a real browser.
func WithRenderer(r editor.Renderer) Option {
	return func(runner *Runner) {
		runner.renderer = r
	}
}

// NewRunner constructs a batch runner with initialized dependencies.
func NewRunner(cfg *config.Config, store *runstore.Store, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil || store == nil {
		return nil, fmt.Errorf("batch runner requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "cardforge.lock")
	runner := &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "batch"),
		store:    store,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Run executes one full pipeline invocation. Per-job failures are logged and
// dropped from the order; only configuration problems fail the run outright.
func (r *Runner) Run(ctx context.Context, req Request) (*Summary, error) {
	ok, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "batch", "lock",
			fmt.Sprintf("another run is active (lock file %s)", r.lockPath), nil)
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release run lock", logging.Error(unlockErr))
		}
	}()

	ctx = services.WithRequestID(ctx, uuid.NewString())

	jobs, err := r.expand(req)
	if err != nil {
		return nil, err
	}

	run, err := r.store.BeginRun(ctx, req.DecklistPath, req.OutputDir, req.SkipImages)
	if err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}

	order := mpc.NewOrder(r.cfg.Order.Stock, r.cfg.Order.Foil)
	summary := &Summary{RunID: run.ID, Jobs: len(jobs)}

	if req.SkipImages {
		err = r.predict(ctx, run.ID, jobs, order, summary)
	} else {
		err = r.render(ctx, run.ID, jobs, order, summary)
	}
	if err != nil {
		return nil, err
	}

	manifestPath, err := r.writeManifest(req, order)
	if err != nil {
		return nil, err
	}
	summary.ManifestPath = manifestPath
	summary.Quantity = order.Details.Quantity
	summary.Bracket = order.Details.Bracket

	if err := r.store.FinishRun(ctx, run.ID, summary.Quantity, summary.Bracket, manifestPath); err != nil {
		return nil, fmt.Errorf("finalize run: %w", err)
	}

	logging.WithContext(ctx, r.logger).Info("run finished",
		logging.Int64("run_id", run.ID),
		logging.Int("jobs", summary.Jobs),
		logging.Int("completed", summary.Completed),
		logging.Int("failed", summary.Failed),
		logging.Int("quantity", summary.Quantity),
		logging.Int("bracket", summary.Bracket),
		logging.String("manifest", manifestPath),
	)
	return summary, nil
}

func (r *Runner) expand(req Request) ([]decklist.RenderJob, error) {
	var opts []decklist.Option
	if len(req.CardNames) > 0 {
		opts = append(opts, decklist.WithNameFilter(req.CardNames))
	}
	parser, err := decklist.NewParser(req.DecklistPath, r.logger, opts...)
	if err != nil {
		return nil, err
	}
	requests, err := parser.Parse()
	if err != nil {
		return nil, err
	}
	return decklist.ExpandJobs(requests, req.ArtworkDir, req.OutputDir, r.logger), nil
}

// predict records every job without touching the editor. Output filenames are
// deterministic, so the order can be assembled against images produced by an
// earlier run.
func (r *Runner) predict(ctx context.Context, runID int64, jobs []decklist.RenderJob, order *mpc.Order, summary *Summary) error {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		order.AddFront(job.OutputFile, job.Card.QueryKey())
		record := &runstore.JobRecord{
			RunID:      runID,
			CardLabel:  job.Card.DisplayLabel(),
			CopyIndex:  job.CopyIndex,
			OutputFile: job.OutputFile,
			Status:     runstore.JobPredicted,
		}
		if err := r.store.RecordJob(ctx, record); err != nil {
			return fmt.Errorf("record job: %w", err)
		}
	}
	return nil
}

func (r *Runner) render(ctx context.Context, runID int64, jobs []decklist.RenderJob, order *mpc.Order, summary *Summary) error {
	renderer := r.renderer
	if renderer == nil {
		browser, err := editor.NewBrowser(ctx, r.cfg.Editor, r.logger)
		if err != nil {
			return err
		}
		defer browser.Close()
		renderer = editor.NewDriver(browser, r.cfg.Editor, r.logger)
	}

	pause := time.Duration(r.cfg.Workflow.JobPauseMs) * time.Millisecond
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 && pause > 0 {
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		jobCtx := services.WithJobID(ctx, job.ID())
		result, err := renderer.Render(jobCtx, job)

		record := &runstore.JobRecord{
			RunID:      runID,
			CardLabel:  job.Card.DisplayLabel(),
			CopyIndex:  job.CopyIndex,
			OutputFile: job.OutputFile,
		}
		if err != nil {
			summary.Failed++
			record.Status = runstore.JobFailed
			record.ErrorMessage = err.Error()
			r.logger.Warn("card dropped from order",
				logging.String(logging.FieldCard, job.Card.DisplayLabel()),
				logging.Int("copy", job.CopyIndex),
				logging.Error(err),
			)
		} else {
			summary.Completed++
			record.Status = runstore.JobCompleted
			record.VersionOutcome = result.Version.String()
			record.ArtworkOutcome = result.Artwork.String()
			record.SetSymbolOutcome = result.SetSymbol.String()
			order.AddFront(job.OutputFile, job.Card.QueryKey())
		}
		if storeErr := r.store.RecordJob(ctx, record); storeErr != nil {
			return fmt.Errorf("record job: %w", storeErr)
		}
	}
	return nil
}

// writeManifest encodes the order and writes it next to the output directory,
// named after the decklist file.
func (r *Runner) writeManifest(req Request, order *mpc.Order) (string, error) {
	base := filepath.Base(req.DecklistPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	manifestPath := filepath.Join(filepath.Dir(req.OutputDir), stem+".xml")

	payload, err := order.Encode()
	if err != nil {
		return "", fmt.Errorf("encode order: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return "", fmt.Errorf("create manifest directory: %w", err)
	}
	if err := os.WriteFile(manifestPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return manifestPath, nil
}
