package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunPrintsHintsForUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"lokup", "409183694"}, &stderr)
	if code != 2 {
		t.Fatalf("expected invalid usage code 2, got %d", code)
	}
	out := stderr.String()
	if !strings.Contains(out, `unknown command "lokup"`) {
		t.Fatalf("expected unknown command error, got: %q", out)
	}
	if !strings.Contains(out, "next: macsearch lookup") {
		t.Fatalf("expected suggestion hint, got: %q", out)
	}
	if !strings.Contains(out, "next: macsearch --help") {
		t.Fatalf("expected help hint, got: %q", out)
	}
}

func TestRunPrintsHintsForSearchUsageError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stderr bytes.Buffer
	code := run([]string{"search"}, &stderr)
	if code != 2 {
		t.Fatalf("expected invalid usage code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "next: macsearch help search") {
		t.Fatalf("expected search help hint, got: %q", stderr.String())
	}
}

func TestRunTimeoutFlagValidation(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"search", "Keynote", "--timeout", "later"}, &stderr)
	if code != 2 {
		t.Fatalf("expected invalid usage code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "--timeout must be a positive duration") {
		t.Fatalf("expected timeout error, got: %q", stderr.String())
	}
}
