package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"

	"cardforge/internal/decklist"
	"cardforge/internal/logging"
	"cardforge/internal/services"
)

// download triggers the export affordance, waits for the browser to finish
// the resulting file download, and moves it to the job's output path.
func (s *Session) download(ctx context.Context, job decklist.RenderJob) error {
	var (
		mu        sync.Mutex
		guid      string
		suggested string
	)
	done := make(chan error, 1)

	listenCtx, stopListening := context.WithCancel(s.ctx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *browser.EventDownloadWillBegin:
			mu.Lock()
			guid = e.GUID
			suggested = e.SuggestedFilename
			mu.Unlock()
		case *browser.EventDownloadProgress:
			switch e.State {
			case browser.DownloadProgressStateCompleted:
				select {
				case done <- nil:
				default:
				}
			case browser.DownloadProgressStateCanceled:
				select {
				case done <- fmt.Errorf("download canceled"):
				default:
				}
			}
		}
	})

	if err := chromedp.Run(s.ctx,
		chromedp.Click(selDownload),
	); err != nil {
		return services.Wrap(services.ErrExternalService, "download", "trigger export", "click export affordance", err)
	}

	timeout := time.Duration(s.cfg.DownloadTimeout) * time.Second
	select {
	case err := <-done:
		if err != nil {
			return services.Wrap(services.ErrExternalService, "download", "await file", "browser reported a failed download", err)
		}
	case <-time.After(timeout):
		return services.Wrap(services.ErrTimeout, "download", "await file",
			fmt.Sprintf("no completed download within %s", timeout), nil)
	case <-ctx.Done():
		return ctx.Err()
	}

	mu.Lock()
	downloadedGUID, suggestedName := guid, suggested
	mu.Unlock()

	source, err := locateDownload(s.downloadDir, downloadedGUID, suggestedName)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "download", "locate file", "downloaded file not found", err)
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "download", "output dir", "create output directory", err)
	}
	if err := moveFile(source, job.OutputPath); err != nil {
		return services.Wrap(services.ErrConfiguration, "download", "persist", "move download to output path", err)
	}
	s.logger.Info("card saved",
		logging.String("output_path", job.OutputPath),
	)
	return nil
}

// locateDownload finds the completed download on disk. With allow-and-name
// behavior the file carries the download GUID; some browser builds ignore
// that and use the suggested filename instead, occasionally swapping a plain
// apostrophe for the typographic one the editor emits.
func locateDownload(dir, guid, suggested string) (string, error) {
	for _, candidate := range downloadCandidates(dir, guid, suggested) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no download found in %s (guid %q, suggested %q)", dir, guid, suggested)
}

func downloadCandidates(dir, guid, suggested string) []string {
	var candidates []string
	if guid != "" {
		candidates = append(candidates, filepath.Join(dir, guid))
	}
	if suggested != "" {
		candidates = append(candidates, filepath.Join(dir, suggested))
		if alt := strings.ReplaceAll(suggested, "'", "’"); alt != suggested {
			candidates = append(candidates, filepath.Join(dir, alt))
		}
	}
	return candidates
}

// moveFile renames source to target, falling back to copy-and-delete when the
// rename crosses filesystems.
func moveFile(source, target string) error {
	if err := os.Rename(source, target); err == nil {
		return nil
	}

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flush target: %w", err)
	}
	return os.Remove(source)
}
