package runstore

import "time"

// JobStatus is the terminal state of one render job within a run.
type JobStatus string

const (
	// JobCompleted means the editor produced the card image.
	JobCompleted JobStatus = "completed"
	// JobFailed means the job was dropped after a fatal-to-job error.
	JobFailed JobStatus = "failed"
	// JobPredicted means the image was not produced because the run skipped
	// image generation; the filename was still recorded for the order.
	JobPredicted JobStatus = "predicted"
)

// Run is one invocation of the render pipeline.
type Run struct {
	ID           int64
	DecklistPath string
	OutputDir    string
	ManifestPath string
	SkipImages   bool
	Quantity     int
	Bracket      int
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// JobRecord is the persisted outcome of one render job, including the
// fidelity of the best-effort editor steps.
type JobRecord struct {
	ID               int64
	RunID            int64
	CardLabel        string
	CopyIndex        int
	OutputFile       string
	Status           JobStatus
	VersionOutcome   string
	ArtworkOutcome   string
	SetSymbolOutcome string
	ErrorMessage     string
	CreatedAt        time.Time
}
