package decklist

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"cardforge/internal/logging"
	"cardforge/internal/services"
)

// Parser reads a comma-separated decklist into card requests.
//
// Each row is `quantity,card_name,set_code,collector_number`. Rows with fewer
// than four fields are skipped with a warning; a quantity that is not a
// positive integer literal falls back to 1.
type Parser struct {
	path   string
	filter map[string]struct{}
	logger *slog.Logger
}

// Option configures the parser.
type Option func(*Parser)

// WithNameFilter restricts parsing to the given card names (exact match).
// Rows outside the filter are skipped silently. An empty list means no filter.
func WithNameFilter(names []string) Option {
	return func(p *Parser) {
		for _, name := range names {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				continue
			}
			if p.filter == nil {
				p.filter = make(map[string]struct{})
			}
			p.filter[trimmed] = struct{}{}
		}
	}
}

// NewParser validates that the decklist exists and returns a parser for it.
// A missing or unreadable decklist is fatal for the whole run.
func NewParser(path string, logger *slog.Logger, opts ...Option) (*Parser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "decklist", "stat", fmt.Sprintf("card list %q not readable", path), err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "decklist", "stat", fmt.Sprintf("card list %q is a directory", path), nil)
	}

	p := &Parser{
		path:   path,
		logger: logging.NewComponentLogger(logger, "decklist"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse reads every row and returns the accepted card requests in input order.
func (p *Parser) Parse() ([]CardRequest, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "decklist", "open", fmt.Sprintf("open card list %q", p.path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "decklist", "read", fmt.Sprintf("parse card list %q", p.path), err)
	}

	requests := make([]CardRequest, 0, len(records))
	for i, record := range records {
		if len(record) < 4 {
			p.logger.Warn("skipping malformed row",
				logging.Int("row", i+1),
				logging.Int("fields", len(record)),
			)
			continue
		}

		name := strings.TrimSpace(record[1])
		if p.filter != nil {
			if _, ok := p.filter[name]; !ok {
				continue
			}
		}

		quantity := 1
		if parsed, err := strconv.Atoi(strings.TrimSpace(record[0])); err == nil && parsed >= 1 {
			quantity = parsed
		}

		requests = append(requests, CardRequest{
			Name:            name,
			SetCode:         strings.TrimSpace(record[2]),
			CollectorNumber: strings.TrimSpace(record[3]),
			Quantity:        quantity,
		})
	}

	p.logger.Info("decklist parsed",
		logging.Int("rows", len(records)),
		logging.Int("accepted", len(requests)),
	)
	return requests, nil
}
