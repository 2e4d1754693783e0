package config

import (
	"testing"

	"github.com/spf13/pflag"

	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var cfg Config
	fs := pflag.NewFlagSet("lprun", pflag.ContinueOnError)
	Bind(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, Finalize(&cfg, func(name string) bool { return fs.Changed(name) })
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"LPRUN_PRINTER", "LPRUN_IP", "LPRUN_PORT", "LPRUN_VERBOSE", "LPRUN_HISTORY"} {
		t.Setenv(key, "")
	}
}

func TestParseValid(t *testing.T) {
	clearEnv(t)
	cfg, err := parse(t, "--ip", "192.168.1.40", "--file", "doc.pdf", "-n", "2", "--grayscale")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Copies != 2 || cfg.Port != domain.DefaultRawPort {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Target() != domain.NewNetworkTarget("192.168.1.40", 9100) {
		t.Fatalf("unexpected target: %+v", cfg.Target())
	}
	doc := cfg.Document()
	if doc.FilePath != "doc.pdf" || doc.Color != domain.ColorGrayscale {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestParseRejects(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{"color and grayscale", []string{"--color", "--grayscale", "-t", "x"}},
		{"zero copies", []string{"--copies", "0", "-t", "x"}},
		{"printer and ip", []string{"-p", "Office", "--ip", "10.0.0.1"}},
		{"bad ip", []string{"--ip", "999.1.1.1"}},
		{"ipv6", []string{"--ip", "::1"}},
		{"two documents", []string{"-t", "x", "-f", "a.ps"}},
		{"zero port", []string{"--ip", "10.0.0.1", "--port", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(t, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

func TestEnvFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("LPRUN_IP", "10.0.0.5")
	t.Setenv("LPRUN_PORT", "9101")
	t.Setenv("LPRUN_VERBOSE", "yes")
	t.Setenv("LPRUN_HISTORY", "/tmp/h.log")

	cfg, err := parse(t, "-t", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IP != "10.0.0.5" || cfg.Port != 9101 || !cfg.Verbose || cfg.History != "/tmp/h.log" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestFlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LPRUN_PRINTER", "FromEnv")
	t.Setenv("LPRUN_PORT", "9101")

	cfg, err := parse(t, "-p", "FromFlag", "--port", "9100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Printer != "FromFlag" || cfg.Port != 9100 {
		t.Fatalf("flags should win: %+v", cfg)
	}
}

func TestInvalidEnvPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("LPRUN_PORT", "http")
	if _, err := parse(t, "-t", "x"); err == nil {
		t.Fatalf("expected invalid LPRUN_PORT error")
	}
}

func TestNoTargetMeansDiscovery(t *testing.T) {
	clearEnv(t)
	cfg, err := parse(t, "-t", "x", "--color")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Target().IsZero() {
		t.Fatalf("expected zero target, got %+v", cfg.Target())
	}
	if cfg.ColorMode() != domain.ColorFull {
		t.Fatalf("expected color mode")
	}
}

func TestBadIPIsInvalidAddress(t *testing.T) {
	clearEnv(t)
	_, err := parse(t, "--ip", "999.1.1.1", "-t", "x")
	if appErrors.KindOf(err) != appErrors.InvalidAddress {
		t.Fatalf("expected InvalidAddress, got %v", err)
	}
	if got := appErrors.ExitCode(err); got != 33 {
		t.Fatalf("exit code = %d, want 33", got)
	}
	if got := appErrors.UserMessage(err); got != "Invalid IP: 999.1.1.1" {
		t.Fatalf("unexpected message %q", got)
	}

	t.Setenv("LPRUN_IP", "10.0.0")
	_, err = parse(t, "-t", "x")
	if got := appErrors.ExitCode(err); got != 33 {
		t.Fatalf("env exit code = %d, want 33", got)
	}
}
