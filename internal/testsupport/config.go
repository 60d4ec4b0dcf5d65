package testsupport

import (
	"path/filepath"
	"testing"

	"cardforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Workflow.JobPauseMs = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithEditorURL overrides the editor URL on the test config.
func WithEditorURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Editor.URL = url
	}
}

// WithOrderStock overrides the order stock on the test config.
func WithOrderStock(stock string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Order.Stock = stock
	}
}
