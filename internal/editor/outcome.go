package editor

// StepOutcome records whether a best-effort editor step took effect. A skipped
// step degrades the artifact (wrong print, default art, vestigial set symbol)
// without failing the job.
type StepOutcome struct {
	Applied bool
	Reason  string
}

// Applied marks a step that completed against the live page.
func Applied() StepOutcome {
	return StepOutcome{Applied: true}
}

// Skipped marks a step that could not be performed, with the reason kept for
// the run report.
func Skipped(reason string) StepOutcome {
	return StepOutcome{Reason: reason}
}

func (o StepOutcome) String() string {
	if o.Applied {
		return "applied"
	}
	if o.Reason == "" {
		return "skipped"
	}
	return "skipped: " + o.Reason
}

// Result captures the fidelity of one rendered card: which optional steps
// were applied and which degraded.
type Result struct {
	Version   StepOutcome
	Artwork   StepOutcome
	SetSymbol StepOutcome
}
