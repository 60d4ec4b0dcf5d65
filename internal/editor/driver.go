package editor

import (
	"context"
	"log/slog"

	"cardforge/internal/config"
	"cardforge/internal/decklist"
	"cardforge/internal/logging"
)

// Renderer produces one card image per render job. The batch runner depends
// on this contract only; tests swap in fakes to avoid a real browser.
type Renderer interface {
	Render(ctx context.Context, job decklist.RenderJob) (Result, error)
}

// Driver renders jobs against a shared Browser, one fresh session per job.
type Driver struct {
	browser *Browser
	cfg     config.Editor
	logger  *slog.Logger
}

// NewDriver wires a driver to an already-launched browser.
func NewDriver(b *Browser, cfg config.Editor, logger *slog.Logger) *Driver {
	return &Driver{
		browser: b,
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "editor"),
	}
}

// Render opens a session, runs the interaction sequence, and guarantees the
// session is released on every exit path.
func (d *Driver) Render(ctx context.Context, job decklist.RenderJob) (Result, error) {
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("rendering card",
		logging.String(logging.FieldCard, job.Card.DisplayLabel()),
		logging.Int("copy", job.CopyIndex),
	)

	session, err := d.browser.NewSession(ctx)
	if err != nil {
		return Result{}, err
	}
	defer session.Close()

	result, err := session.Render(ctx, job)
	if err != nil {
		return result, err
	}
	logger.Info("card rendered",
		logging.String("version", result.Version.String()),
		logging.String("artwork", result.Artwork.String()),
		logging.String("set_symbol", result.SetSymbol.String()),
	)
	return result, nil
}
