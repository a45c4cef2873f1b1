package logger

import (
	"bytes"
	"context"
	"testing"

	kit "workshopdex/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel_AllBranches(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"   nonsense   ", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

// Init is process-wide; this is the only test that calls it with a writer
func TestInit_Get_Named_C_WithRequest(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "console",
		Service:      "svc-a",
		Component:    "root",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  2,
		StaticFields: map[string]string{"build": "test"},
	})

	rv := Get().Sample(&zerolog.BasicSampler{N: 1})
	rv.Info().Str("k", "v").Msg("root-msg")

	nv := Named("workshop").Sample(&zerolog.BasicSampler{N: 1})
	nv.Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-123", "app")
	cv := C(ctx).Sample(&zerolog.BasicSampler{N: 1})
	cv.Info().Msg("ctx-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "component=")
	kit.MustContain(t, out, "workshop")
	kit.MustContain(t, out, "request_id=")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "page=")
	kit.MustContain(t, out, "build=")
	kit.MustContain(t, out, "svc-a")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_COMPONENT", "comp-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" {
		t.Fatalf("FromEnv level/format mismatch: %+v", opt)
	}
	if opt.Service != "svc-b" || opt.Component != "comp-b" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample mismatch: %+v", opt)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	opt := FromEnv()
	if opt.Format != "console" {
		t.Fatalf("unknown format should fall back to console, got %q", opt.Format)
	}
	if opt.Service != "workshopdex" {
		t.Fatalf("default service = %q", opt.Service)
	}
}

func TestRequestID(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("empty ctx request id = %q", got)
	}
	ctx := WithRequest(context.Background(), "abc", "")
	if got := RequestID(ctx); got != "abc" {
		t.Fatalf("RequestID = %q", got)
	}
}
