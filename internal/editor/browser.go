package editor

import (
	"context"
	"log/slog"
	"os"

	"github.com/chromedp/chromedp"

	"cardforge/internal/config"
	"cardforge/internal/logging"
	"cardforge/internal/services"
)

// chromeCandidates are probed when no executable is configured and CHROME_PATH
// is unset, before chromedp falls back to its own detection.
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

func detectExecPath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	for _, path := range chromeCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Browser owns the single Chrome process for a run. It is created once by the
// batch runner, handed to the driver, and closed when the run ends; sessions
// open and close tabs inside it but never outlive it.
type Browser struct {
	cfg         config.Editor
	logger      *slog.Logger
	userDataDir string
	downloadDir string

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewBrowser launches the Chrome process and verifies it is responsive.
func NewBrowser(ctx context.Context, cfg config.Editor, logger *slog.Logger) (*Browser, error) {
	log := logging.NewComponentLogger(logger, "browser")

	userDataDir, err := os.MkdirTemp("", "cardforge-chrome-")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "browser", "temp dir", "create chrome profile directory", err)
	}
	downloadDir, err := os.MkdirTemp("", "cardforge-downloads-")
	if err != nil {
		_ = os.RemoveAll(userDataDir)
		return nil, services.Wrap(services.ErrConfiguration, "browser", "temp dir", "create download directory", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.UserDataDir(userDataDir),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(cfg.ViewportWidth, cfg.ViewportHeight),
	)
	if execPath := detectExecPath(cfg.ExecPath); execPath != "" {
		log.Debug("using chrome executable", logging.String("exec_path", execPath))
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	b := &Browser{
		cfg:           cfg,
		logger:        log,
		userDataDir:   userDataDir,
		downloadDir:   downloadDir,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}

	// Start the process before any session asks for a tab.
	if err := chromedp.Run(browserCtx); err != nil {
		b.Close()
		return nil, services.Wrap(services.ErrExternalService, "browser", "launch", "start chrome", err)
	}
	log.Info("browser started", logging.Bool("headless", cfg.Headless))
	return b, nil
}

// Close tears down the Chrome process and its temporary directories. Safe to
// call after a partial NewBrowser failure.
func (b *Browser) Close() {
	if b.browserCtx != nil {
		if err := chromedp.Cancel(b.browserCtx); err != nil {
			b.logger.Warn("error closing browser", logging.Error(err))
		}
	}
	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	if b.userDataDir != "" {
		_ = os.RemoveAll(b.userDataDir)
	}
	if b.downloadDir != "" {
		_ = os.RemoveAll(b.downloadDir)
	}
	b.logger.Info("browser closed")
}
