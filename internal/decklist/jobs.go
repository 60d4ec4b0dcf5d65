package decklist

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cardforge/internal/logging"
)

// ExpandJobs turns card requests into individually numbered render jobs.
//
// Every copy gets a distinct output filename
// `{name}_{set}_{number}_{NNNN}.png` with identity fields sanitized and NNNN a
// 1-based zero-padded copy index. Artwork is resolved per request from
// artworkDir by the `{name}_{set}_{number}.png` convention; a missing artwork
// file keeps the editor's default art and is only worth a warning.
func ExpandJobs(requests []CardRequest, artworkDir, outputDir string, logger *slog.Logger) []RenderJob {
	log := logging.NewComponentLogger(logger, "decklist")

	var jobs []RenderJob
	for _, req := range requests {
		artworkPath := ""
		if artworkDir != "" {
			candidate := filepath.Join(artworkDir, req.ArtworkFileName())
			if _, err := os.Stat(candidate); err == nil {
				artworkPath = candidate
			} else {
				log.Warn("no artwork for card, keeping editor default",
					logging.String(logging.FieldCard, req.DisplayLabel()),
					logging.String("artwork_file", candidate),
				)
			}
		}

		stem := fmt.Sprintf("%s_%s_%s",
			Sanitize(req.Name),
			Sanitize(req.SetCode),
			Sanitize(req.CollectorNumber),
		)
		for copyIndex := 1; copyIndex <= req.Quantity; copyIndex++ {
			outputFile := fmt.Sprintf("%s_%04d.png", stem, copyIndex)
			jobs = append(jobs, RenderJob{
				Card:        req,
				CopyIndex:   copyIndex,
				OutputFile:  outputFile,
				OutputPath:  filepath.Join(outputDir, outputFile),
				ArtworkPath: artworkPath,
			})
		}
	}
	return jobs
}
