package mpc_test

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"cardforge/internal/mpc"
)

func TestBracketForIsMinimalCoveringTier(t *testing.T) {
	cases := map[int]int{
		0:    18,
		1:    18,
		18:   18,
		19:   36,
		55:   55,
		56:   72,
		234:  234,
		235:  396,
		612:  612,
		613:  612,
		9999: 612,
	}
	for quantity, want := range cases {
		if got := mpc.BracketFor(quantity); got != want {
			t.Fatalf("BracketFor(%d) = %d, want %d", quantity, got, want)
		}
	}
}

func TestBracketAlwaysCoversQuantityUpToMaxTier(t *testing.T) {
	for q := 0; q <= 612; q++ {
		if bracket := mpc.BracketFor(q); bracket < q {
			t.Fatalf("BracketFor(%d) = %d is smaller than the quantity", q, bracket)
		}
	}
}

func TestOrderSlotsAreContiguous(t *testing.T) {
	order := mpc.NewOrder("(S30) Standard Smooth", false)
	for i := 0; i < 5; i++ {
		order.AddFront(fmt.Sprintf("card_%04d.png", i+1), "llanowar elves")
	}

	if order.Details.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", order.Details.Quantity)
	}
	if order.Details.Bracket != 18 {
		t.Fatalf("expected bracket 18, got %d", order.Details.Bracket)
	}
	seenIDs := make(map[string]struct{})
	for i, card := range order.Fronts.Cards {
		if card.Slots != strconv.Itoa(i) {
			t.Fatalf("card %d: expected slot %d, got %s", i, i, card.Slots)
		}
		if card.ID == "" {
			t.Fatalf("card %d: missing id", i)
		}
		if _, dup := seenIDs[card.ID]; dup {
			t.Fatalf("card %d: duplicate id %s", i, card.ID)
		}
		seenIDs[card.ID] = struct{}{}
	}
}

func TestOrderEncodeShape(t *testing.T) {
	order := mpc.NewOrder("(S30) Standard Smooth", false)
	order.AddFront("Llanowar_Elves_LEA_123_0001.png", "llanowar elves")

	data, err := order.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := string(data)
	for _, fragment := range []string{
		"<order>",
		"<details>",
		"<quantity>1</quantity>",
		"<bracket>18</bracket>",
		"<stock>(S30) Standard Smooth</stock>",
		"<foil>false</foil>",
		"<fronts>",
		"<slots>0</slots>",
		"<name>Llanowar_Elves_LEA_123_0001.png</name>",
		"<query>llanowar elves</query>",
		"<backs>",
		"<cardback>",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in order document:\n%s", fragment, text)
		}
	}

	// Round-trips as well-formed XML.
	var decoded mpc.Order
	if err := xml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Details.Quantity != 1 || len(decoded.Fronts.Cards) != 1 {
		t.Fatalf("unexpected decoded order %+v", decoded)
	}
}
