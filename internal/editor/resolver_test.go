package editor_test

import (
	"testing"

	"cardforge/internal/decklist"
	"cardforge/internal/editor"
)

func TestMatchPrintingExactOnly(t *testing.T) {
	card := decklist.CardRequest{Name: "Sakura-Tribe Elder", SetCode: "TDC", CollectorNumber: "266"}
	label := card.DisplayLabel()
	if label != "Sakura-Tribe Elder (TDC #266)" {
		t.Fatalf("unexpected label %q", label)
	}

	texts := []string{
		"Sakura-Tribe Elder (CHK #244)",
		"Sakura-Tribe Elder (TDC #266)",
		"Sakura-Tribe Elder (TDC #266) Promo",
	}
	values := []string{"0", "1", "2"}

	value, ok := editor.MatchPrinting(label, texts, values)
	if !ok {
		t.Fatal("expected a match")
	}
	if value != "1" {
		t.Fatalf("expected value 1, got %q", value)
	}
}

func TestMatchPrintingRejectsSubstrings(t *testing.T) {
	texts := []string{"Llanowar Elves (LEA #123) Foil"}
	values := []string{"0"}
	if _, ok := editor.MatchPrinting("Llanowar Elves (LEA #123)", texts, values); ok {
		t.Fatal("substring must not match")
	}
}

func TestMatchPrintingEmptyDropdown(t *testing.T) {
	if _, ok := editor.MatchPrinting("Anything (SET #1)", nil, nil); ok {
		t.Fatal("expected no match on empty dropdown")
	}
}

func TestStepOutcomeString(t *testing.T) {
	if got := editor.Applied().String(); got != "applied" {
		t.Fatalf("unexpected applied string %q", got)
	}
	if got := editor.Skipped("no artwork file").String(); got != "skipped: no artwork file" {
		t.Fatalf("unexpected skipped string %q", got)
	}
	if got := (editor.StepOutcome{}).String(); got != "skipped" {
		t.Fatalf("unexpected zero outcome string %q", got)
	}
}
