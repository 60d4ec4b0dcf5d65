package mpc

import (
	"encoding/xml"
	"strconv"

	"github.com/google/uuid"
)

// brackets are the print-run tiers the vendor accepts, ascending.
var brackets = []int{18, 36, 55, 72, 90, 108, 126, 144, 162, 180, 198, 216, 234, 396, 504, 612}

// BracketFor returns the smallest supported print-run size that accommodates
// quantity. Quantities beyond the largest tier clamp to it rather than fail;
// the order is then undersized but still submittable.
func BracketFor(quantity int) int {
	for _, bracket := range brackets {
		if quantity <= bracket {
			return bracket
		}
	}
	return brackets[len(brackets)-1]
}

// Details carries the run-level order fields.
type Details struct {
	Quantity int    `xml:"quantity"`
	Bracket  int    `xml:"bracket"`
	Stock    string `xml:"stock"`
	Foil     bool   `xml:"foil"`
}

// Card is one order line: a single physical card front.
type Card struct {
	ID    string `xml:"id"`
	Slots string `xml:"slots"`
	Name  string `xml:"name"`
	Query string `xml:"query"`
}

// CardList wraps the per-side card entries.
type CardList struct {
	Cards []Card `xml:"card"`
}

// Order is the vendor order document. Backs and CardBack are emitted empty;
// back customization is not supported.
type Order struct {
	XMLName  xml.Name `xml:"order"`
	Details  Details  `xml:"details"`
	Fronts   CardList `xml:"fronts"`
	Backs    CardList `xml:"backs"`
	CardBack string   `xml:"cardback"`
}

// NewOrder returns an empty order carrying the fixed stock/foil configuration.
func NewOrder(stock string, foil bool) *Order {
	return &Order{
		Details: Details{
			Quantity: 0,
			Bracket:  BracketFor(0),
			Stock:    stock,
			Foil:     foil,
		},
	}
}

// AddFront appends one front entry. The slot index is the entry's 0-based
// position, so fronts must be added in artifact order; each entry gets a fresh
// unique id.
func (o *Order) AddFront(fileName, query string) {
	o.Fronts.Cards = append(o.Fronts.Cards, Card{
		ID:    uuid.NewString(),
		Slots: strconv.Itoa(len(o.Fronts.Cards)),
		Name:  fileName,
		Query: query,
	})
	o.Details.Quantity = len(o.Fronts.Cards)
	o.Details.Bracket = BracketFor(o.Details.Quantity)
}

// Encode renders the order as an indented XML document.
func (o *Order) Encode() ([]byte, error) {
	body, err := xml.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
