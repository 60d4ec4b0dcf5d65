package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"

	"cardforge/internal/config"
	"cardforge/internal/decklist"
	"cardforge/internal/logging"
	"cardforge/internal/services"
)

// Session is one isolated page against the remote editor, serving exactly one
// render job. Sessions are never reused: dropdown contents and uploaded files
// are page state, and a fresh page is the only reliable way to keep one card's
// state away from the next.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cfg         config.Editor
	logger      *slog.Logger
	downloadDir string
}

// NewSession opens a fresh tab, routes its downloads into the run's download
// directory, and navigates to the editor. It fails when the landmark tab
// header does not appear within the navigation timeout; that failure is fatal
// for the job but not the run.
func (b *Browser) NewSession(ctx context.Context) (*Session, error) {
	tabCtx, cancel := chromedp.NewContext(b.browserCtx)

	s := &Session{
		ctx:         tabCtx,
		cancel:      cancel,
		cfg:         b.cfg,
		logger:      logging.WithContext(ctx, logging.NewComponentLogger(b.logger, "session")),
		downloadDir: b.downloadDir,
	}

	navCtx, navCancel := context.WithTimeout(tabCtx, time.Duration(b.cfg.NavTimeout)*time.Second)
	defer navCancel()

	err := chromedp.Run(navCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllowAndName).
			WithDownloadPath(b.downloadDir).
			WithEventsEnabled(true),
		chromedp.EmulateViewport(int64(b.cfg.ViewportWidth), int64(b.cfg.ViewportHeight)),
		chromedp.Navigate(b.cfg.URL),
		chromedp.WaitReady("body"),
		chromedp.WaitVisible(selLandmark),
	)
	if err != nil {
		s.Close()
		return nil, services.Wrap(services.ErrTimeout, "open", "wait landmark",
			fmt.Sprintf("editor at %s did not present the Import/Save landmark", b.cfg.URL), err)
	}
	return s, nil
}

// Close releases the page. Always runs, whether the job completed or failed
// partway through the step sequence.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Render performs the full per-card interaction sequence against this
// session's page and saves the exported image at the job's output path.
func (s *Session) Render(ctx context.Context, job decklist.RenderJob) (Result, error) {
	var result Result

	version, err := s.importCard(job.Card)
	if err != nil {
		return result, err
	}
	result.Version = version

	if err := s.addMargin(); err != nil {
		return result, err
	}

	result.Artwork = s.replaceArtwork(job)
	result.SetSymbol = s.removeSetSymbol()

	if err := s.download(ctx, job); err != nil {
		return result, err
	}
	return result, nil
}

// settle pauses for the configured fixed delay. Used after actions the remote
// app acknowledges only by asynchronous DOM mutation with no pollable signal.
func (s *Session) settle() chromedp.Action {
	return chromedp.Sleep(time.Duration(s.cfg.SettleDelayMs) * time.Millisecond)
}

func (s *Session) openTab(tab string, waitFor ...string) error {
	actions := []chromedp.Action{
		chromedp.Click(tabSelector(tab)),
	}
	for _, sel := range waitFor {
		actions = append(actions, chromedp.WaitVisible(sel))
	}
	actions = append(actions, s.settle())
	if err := chromedp.Run(s.ctx, actions...); err != nil {
		return services.Wrap(services.ErrExternalService, tab, "open tab",
			fmt.Sprintf("creator tab %q did not open", tab), err)
	}
	return nil
}

// importCard opens the import panel, applies the base frame template, makes
// sure all printings are searchable, enters the card name, and resolves the
// requested printing.
func (s *Session) importCard(card decklist.CardRequest) (StepOutcome, error) {
	if err := s.openTab("import", selFrameTemplate); err != nil {
		return StepOutcome{}, err
	}

	if err := chromedp.Run(s.ctx,
		chromedp.SetValue(selFrameTemplate, s.cfg.FrameTemplate),
		chromedp.WaitReady(selImportAllPrints),
		s.settle(),
	); err != nil {
		return StepOutcome{}, services.Wrap(services.ErrExternalService, "import", "frame template",
			fmt.Sprintf("select frame template %q", s.cfg.FrameTemplate), err)
	}

	if err := s.ensureAllPrintings(); err != nil {
		return StepOutcome{}, err
	}

	return s.loadCard(card)
}

// ensureAllPrintings flips the "include all printings" toggle only when it is
// currently off.
func (s *Session) ensureAllPrintings() error {
	var checked bool
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(jsAllPrintsChecked, &checked),
	); err != nil {
		return services.Wrap(services.ErrExternalService, "import", "all printings", "read toggle state", err)
	}
	if checked {
		return nil
	}
	s.logger.Debug("enabling all-printings toggle")
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(jsToggleAllPrints, nil),
		s.settle(),
	); err != nil {
		return services.Wrap(services.ErrExternalService, "import", "all printings", "enable toggle", err)
	}
	return nil
}

// loadCard types the card name, waits for the printing dropdown to populate,
// and selects the exact requested print. A printing the catalog does not list
// is a degraded result, not a failure: the editor keeps its default-selected
// print and the job continues.
func (s *Session) loadCard(card decklist.CardRequest) (StepOutcome, error) {
	// Stale options from a previous search would race the populate poll.
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(jsClearOptions, nil),
	); err != nil {
		s.logger.Warn("could not clear printing dropdown", logging.Error(err))
	}

	if err := chromedp.Run(s.ctx,
		chromedp.WaitVisible(selImportName),
		chromedp.SetValue(selImportName, card.Name),
		chromedp.Focus(selImportName),
		chromedp.SendKeys(selImportName, "\t"),
		chromedp.Poll(jsOptionsReady, nil, chromedp.WithPollingInterval(100*time.Millisecond)),
		chromedp.WaitReady(selImportIndex),
	); err != nil {
		return StepOutcome{}, services.Wrap(services.ErrExternalService, "import", "card search",
			fmt.Sprintf("printing dropdown did not populate for %q", card.Name), err)
	}

	var texts, values []string
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(jsOptionTexts, &texts),
		chromedp.Evaluate(jsOptionValues, &values),
	); err != nil {
		return StepOutcome{}, services.Wrap(services.ErrExternalService, "import", "read printings", "read dropdown options", err)
	}

	label := card.DisplayLabel()
	value, ok := MatchPrinting(label, texts, values)
	if !ok {
		s.logger.Warn("no matching printing, keeping default print",
			logging.String(logging.FieldCard, label),
			logging.Int("printings", len(texts)),
		)
		return Skipped("printing not listed: " + label), nil
	}

	if err := chromedp.Run(s.ctx,
		chromedp.SetValue(selImportIndex, value),
		chromedp.WaitReady(selImportIndex),
		s.settle(),
	); err != nil {
		return StepOutcome{}, services.Wrap(services.ErrExternalService, "import", "select print",
			fmt.Sprintf("select printing %q", label), err)
	}
	return Applied(), nil
}

// addMargin applies the margin frame group to the full card. Always available
// on the editor; failure here means the page shape changed and the job cannot
// be trusted.
func (s *Session) addMargin() error {
	if err := s.openTab("frame", selFrameGroup); err != nil {
		return err
	}
	if err := chromedp.Run(s.ctx,
		chromedp.SetValue(selFrameGroup, s.cfg.MarginGroup),
		chromedp.WaitReady(selAddToFull),
		s.settle(),
		chromedp.Click(selAddToFull),
		s.settle(),
	); err != nil {
		return services.Wrap(services.ErrExternalService, "frame", "apply margin",
			fmt.Sprintf("apply frame group %q", s.cfg.MarginGroup), err)
	}
	return nil
}

// replaceArtwork uploads the job's artwork when one was resolved. Best-effort:
// a missing upload affordance degrades the job instead of failing it.
func (s *Session) replaceArtwork(job decklist.RenderJob) StepOutcome {
	if job.ArtworkPath == "" {
		return Skipped("no artwork file")
	}
	if err := s.openTab("art"); err != nil {
		s.logger.Warn("art tab unavailable, keeping editor artwork", logging.Error(err))
		return Skipped("art tab unavailable")
	}

	var hasInput bool
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(jsHasArtUpload, &hasInput),
	); err != nil || !hasInput {
		s.logger.Warn("artwork upload input not found, image not changed",
			logging.String("artwork_path", job.ArtworkPath),
		)
		return Skipped("upload input not found")
	}

	if err := chromedp.Run(s.ctx,
		chromedp.SetUploadFiles(selArtUpload, []string{job.ArtworkPath}),
		chromedp.Sleep(5*time.Duration(s.cfg.SettleDelayMs)*time.Millisecond),
	); err != nil {
		s.logger.Warn("artwork upload failed, keeping editor artwork", logging.Error(err))
		return Skipped("upload failed")
	}
	return Applied()
}

// removeSetSymbol clears the set symbol if the panel offers the affordance.
// Best-effort like artwork replacement.
func (s *Session) removeSetSymbol() StepOutcome {
	if err := s.openTab("setSymbol"); err != nil {
		s.logger.Warn("set symbol tab unavailable", logging.Error(err))
		return Skipped("set symbol tab unavailable")
	}

	var hasButton bool
	if err := chromedp.Run(s.ctx,
		chromedp.Evaluate(jsHasSetSymbolClear, &hasButton),
	); err != nil || !hasButton {
		s.logger.Warn("set symbol clear button not found")
		return Skipped("clear button not found")
	}

	if err := chromedp.Run(s.ctx,
		chromedp.Click(selSetSymbolClear),
		s.settle(),
	); err != nil {
		s.logger.Warn("set symbol removal failed", logging.Error(err))
		return Skipped("clear click failed")
	}
	return Applied()
}
