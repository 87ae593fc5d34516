package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithUserID(ctx, "user-9")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not json: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("request_id = %v", entry["request_id"])
	}
	if entry["user_id"] != "user-9" {
		t.Fatalf("user_id = %v", entry["user_id"])
	}
	if entry["service"] != "test" {
		t.Fatalf("service = %v", entry["service"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("debug not parsed")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("empty should default to info")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("unknown should default to info")
	}
}
