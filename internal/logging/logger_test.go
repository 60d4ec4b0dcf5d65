package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardforge/internal/logging"
	"cardforge/internal/services"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "cardforge.log")

	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	logger.Info("render started", logging.String("card", "Llanowar Elves"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "render started") {
		t.Fatalf("expected log line in %q", string(data))
	}
	if !strings.Contains(string(data), "Llanowar Elves") {
		t.Fatalf("expected attribute in %q", string(data))
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsJobFields(t *testing.T) {
	ctx := services.WithJobID(t.Context(), "Llanowar_Elves_LEA_123_0001")
	ctx = services.WithStep(ctx, "import")

	fields := logging.ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 context fields, got %d", len(fields))
	}
	if fields[0].Key != logging.FieldJobID {
		t.Fatalf("expected job id field first, got %s", fields[0].Key)
	}

	if logger := logging.WithContext(ctx, nil); logger == nil {
		t.Fatal("expected non-nil logger from nil base")
	}
}
