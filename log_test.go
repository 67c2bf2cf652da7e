package parade

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("quiet")
	logger.Warn().Str("kind", "bulldozer").Msg("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "bulldozer") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	logger, err := NewLogger(&bytes.Buffer{}, "")
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
	logger, err = NewLogger(&bytes.Buffer{}, " DEBUG ")
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	if _, err := NewLogger(&bytes.Buffer{}, "loudest"); err == nil {
		t.Error("expected error for unknown level")
	}
}
