package decklist

import (
	"fmt"
	"strings"
)

// CardRequest is one accepted decklist row. Identity for print matching is
// (Name, SetCode, CollectorNumber); Quantity expands into that many render
// jobs. Immutable once parsed.
type CardRequest struct {
	Name            string
	SetCode         string
	CollectorNumber string
	Quantity        int
}

// DisplayLabel returns the label the remote editor shows for this exact
// printing, e.g. `Sakura-Tribe Elder (TDC #266)`. The version resolver matches
// this string literally against the printing dropdown.
func (c CardRequest) DisplayLabel() string {
	return fmt.Sprintf("%s (%s #%s)", c.Name, strings.ToUpper(c.SetCode), c.CollectorNumber)
}

// QueryKey returns the lower-cased card name attached to manifest entries so
// the print vendor can re-match card art.
func (c CardRequest) QueryKey() string {
	return strings.ToLower(c.Name)
}

// ArtworkFileName returns the conventional artwork asset name for this card.
func (c CardRequest) ArtworkFileName() string {
	return fmt.Sprintf("%s_%s_%s.png", c.Name, c.SetCode, c.CollectorNumber)
}

// RenderJob is one physical copy to produce: a card request plus its 1-based
// copy index and resolved output location.
type RenderJob struct {
	Card        CardRequest
	CopyIndex   int
	OutputFile  string
	OutputPath  string
	ArtworkPath string
}

// ID returns the job's stable identifier, the output filename without
// extension.
func (j RenderJob) ID() string {
	return strings.TrimSuffix(j.OutputFile, ".png")
}
