package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"info", 0, false},
		{"DEBUG", DEBUG, false},
		{"trace", TRACE, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestNewLogger_Verbosity(t *testing.T) {
	logger, err := NewLogger(DEBUG, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !logger.V(DEBUG).Enabled() {
		t.Error("expected debug enabled")
	}
	if logger.V(TRACE).Enabled() {
		t.Error("expected trace disabled")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()).GetSink() != nil {
		t.Error("expected discard logger without context value")
	}

	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	ctx := IntoContext(context.Background(), logger)
	if !FromContext(ctx).V(TRACE).Enabled() {
		t.Error("expected trace logger from context")
	}
	FromContext(ctx).V(TRACE).Info("tick", "tick", 3)
	if !strings.Contains(buf.String(), "tick") {
		t.Errorf("expected trace line in writer, got %q", buf.String())
	}
}
