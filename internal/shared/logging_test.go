package shared

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitLoggerLevels(t *testing.T) {
	ctx := context.Background()

	dbg := InitLogger(Logging{Format: "text", Level: "debug"})
	if !dbg.Enabled(ctx, slog.LevelDebug) {
		t.Fatal("debug logger rejects debug records")
	}

	errOnly := InitLogger(Logging{Level: "error"})
	if errOnly.Enabled(ctx, slog.LevelWarn) {
		t.Fatal("error logger accepts warn records")
	}
	if !errOnly.Enabled(ctx, slog.LevelError) {
		t.Fatal("error logger rejects error records")
	}

	if slog.Default() != errOnly {
		t.Fatal("InitLogger did not install the default logger")
	}
}
