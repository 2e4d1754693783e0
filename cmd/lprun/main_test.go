package main

import (
	"bytes"
	"testing"

	appErrors "lprun/internal/errors"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	for _, key := range []string{"LPRUN_PRINTER", "LPRUN_IP", "LPRUN_PORT", "LPRUN_VERBOSE", "LPRUN_HISTORY"} {
		t.Setenv(key, "")
	}
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad ip", []string{"--ip", "999.1.1.1", "--text", "x"}, 33},
		{"ipv6", []string{"--ip", "::1", "--text", "x"}, 33},
		{"conflicting color", []string{"--color", "--grayscale", "--text", "x"}, appErrors.ExitUsage},
		{"unknown flag", []string{"--bogus"}, appErrors.ExitUsage},
		{"no document", []string{"--ip", "10.0.0.1"}, appErrors.ExitNoDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if got := appErrors.ExitCode(err); got != tt.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
}
