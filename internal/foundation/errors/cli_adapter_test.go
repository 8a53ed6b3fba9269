package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("exactly one of --file or --folder").Build(), 2},
		{"config", ConfigError("bad config").Build(), 7},
		{"missing converter", ExternalToolError("pandoc not found").Build(), 8},
		{"wrapped store error", fmt.Errorf("save: %w", StoreError("insert failed").Build()), 9},
		{"unclassified error", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())
	err := WrapError(errors.New("exec: not found"), CategoryExternalTool, "pandoc not found").Build()

	if got := quiet.FormatError(err); got != "Error: pandoc not found" {
		t.Errorf("unexpected quiet output %q", got)
	}
	if got := verbose.FormatError(err); !strings.Contains(got, "exec: not found") {
		t.Errorf("expected verbose output to include cause, got %q", got)
	}
	if got := quiet.FormatError(InternalError("boom").Build()); !strings.Contains(got, "use -v") {
		t.Errorf("expected internal errors to be hidden, got %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("no such engine").WithContext("engine", "latex").Build())

	if code != 7 {
		t.Errorf("expected exit code 7, got %d", code)
	}
	if !strings.Contains(logs.String(), "engine=latex") {
		t.Errorf("expected context in log output, got %q", logs.String())
	}
	if !strings.Contains(out.String(), "no such engine") {
		t.Errorf("expected message on stderr, got %q", out.String())
	}

	adapter.out = io.Discard
	code = -1
	adapter.HandleError(nil)
	if code != -1 {
		t.Error("nil error must not exit")
	}
}
