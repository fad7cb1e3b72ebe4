package logging_test

import (
	"os"
	"testing"

	"github.com/nabbar/go-reactor/internal/logging"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logging.Level{
		"NONE":     logging.NoneLevel,
		"critical": logging.CriticalLevel,
		"Error":    logging.ErrorLevel,
		"WARNING":  logging.WarnLevel,
		"info":     logging.InfoLevel,
		"debug":    logging.DebugLevel,
		"trace":    logging.TraceLevel,
		"bogus":    logging.InfoLevel,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFromEnvPrecedence(t *testing.T) {
	os.Unsetenv("LOGGER_LEVEL")
	os.Unsetenv("LOGGER_LEVEL_REACTOR")

	if got := logging.LevelFromEnv("reactor", logging.WarnLevel); got != logging.WarnLevel {
		t.Fatalf("expected default to win with no env set, got %v", got)
	}

	os.Setenv("LOGGER_LEVEL", "DEBUG")
	defer os.Unsetenv("LOGGER_LEVEL")

	if got := logging.LevelFromEnv("reactor", logging.WarnLevel); got != logging.DebugLevel {
		t.Fatalf("expected LOGGER_LEVEL to win over default, got %v", got)
	}

	os.Setenv("LOGGER_LEVEL_REACTOR", "TRACE")
	defer os.Unsetenv("LOGGER_LEVEL_REACTOR")

	if got := logging.LevelFromEnv("reactor", logging.WarnLevel); got != logging.TraceLevel {
		t.Fatalf("expected LOGGER_LEVEL_REACTOR to win over LOGGER_LEVEL, got %v", got)
	}
	if got := logging.LevelFromEnv("stream", logging.WarnLevel); got != logging.DebugLevel {
		t.Fatalf("expected unrelated logger name to still see LOGGER_LEVEL, got %v", got)
	}
}
