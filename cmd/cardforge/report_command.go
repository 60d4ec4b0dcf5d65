package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cardforge/internal/runstore"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Show recent runs or the per-card outcomes of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				runID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid run id %q", args[0])
				}
				return reportRun(cmd, store, runID)
			}
			return reportRecent(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of recent runs to show")
	return cmd
}

func reportRecent(cmd *cobra.Command, store *runstore.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		mode := "render"
		if run.SkipImages {
			mode = "skip-images"
		}
		finished := "running"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{
			strconv.FormatInt(run.ID, 10),
			run.StartedAt.Local().Format(time.DateTime),
			finished,
			mode,
			strconv.Itoa(run.Quantity),
			strconv.Itoa(run.Bracket),
			run.DecklistPath,
		})
	}

	fmt.Fprintln(out, heading(out, "Recent runs"))
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Started", "Finished", "Mode", "Cards", "Bracket", "Decklist"},
		rows, 1, 5, 6,
	))
	return nil
}

func reportRun(cmd *cobra.Command, store *runstore.Store, runID int64) error {
	run, err := store.GetRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	jobs, err := store.JobsForRun(cmd.Context(), runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading(out, fmt.Sprintf("Run %d: %s", run.ID, run.DecklistPath)))
	if run.ManifestPath != "" {
		fmt.Fprintf(out, "Manifest: %s (%d cards, bracket %d)\n", run.ManifestPath, run.Quantity, run.Bracket)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No cards recorded for this run")
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		detail := job.ErrorMessage
		if detail == "" {
			detail = degradedSteps(job)
		}
		rows = append(rows, []string{
			job.CardLabel,
			strconv.Itoa(job.CopyIndex),
			job.OutputFile,
			string(job.Status),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Card", "Copy", "File", "Status", "Detail"},
		rows, 2,
	))
	return nil
}

// degradedSteps summarizes which best-effort editor steps were skipped for a
// completed job, or empty when the card rendered at full fidelity.
func degradedSteps(job runstore.JobRecord) string {
	detail := ""
	for _, step := range []struct {
		name    string
		outcome string
	}{
		{"version", job.VersionOutcome},
		{"artwork", job.ArtworkOutcome},
		{"set symbol", job.SetSymbolOutcome},
	} {
		if step.outcome == "" || step.outcome == "applied" {
			continue
		}
		if detail != "" {
			detail += "; "
		}
		detail += step.name + " " + step.outcome
	}
	return detail
}
