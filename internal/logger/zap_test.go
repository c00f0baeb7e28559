package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": defaultZapLevel,
		"":        defaultZapLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel, false)
	b := Get(ErrorLevel, true)
	if a == nil || a != b {
		t.Fatalf("expected the same non-nil logger instance, got %p and %p", a, b)
	}
}

func TestNop_DiscardsWithoutPanicking(t *testing.T) {
	l := Nop()
	l.Infow("ignored", "k", "v")
	l.Errorw("ignored", "err", "boom")
}
