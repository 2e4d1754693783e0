package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	cause := stderrors.New("cause")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"config", Wrap(InvalidConfig, "config", "", cause), ExitUsage},
		{"no document", Wrap(MissingDocument, "document", "", cause), ExitNoDocument},
		{"exhausted", Wrap(DiscoveryExhausted, "discover", "", ErrDiscoveryExhausted), ExitNoPrinter},
		{"bare exhausted", ErrDiscoveryExhausted, ExitNoPrinter},
		{"text", Wrap(Preparation, OpPrepareText, "text", cause), ExitTextFailed},
		{"image", Wrap(Preparation, OpPrepareImage, "a.jpg", cause), ExitImageFailed},
		{"pdf", Wrap(Preparation, OpPreparePDF, "a.pdf", cause), ExitPDFFailed},
		{"spooler", &SubmissionError{Printer: "Office", Reason: "x", Completed: 1}, ExitSpoolerFailed},
		{"raw args", &TransportError{Phase: PhaseArgs, Code: -1}, 31},
		{"raw address", &TransportError{Phase: PhaseAddress, Code: -3}, 33},
		{"config address", Wrap(InvalidAddress, "ip", "999.1.1.1", cause), ExitInvalidAddress},
		{"raw send", fmt.Errorf("job: %w", &TransportError{Phase: PhaseSend, Code: -6}), 36},
		{"internal", cause, ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserMessages(t *testing.T) {
	cause := stderrors.New("cause")
	tests := []struct {
		err  error
		want string
	}{
		{ErrDiscoveryExhausted, "No printer discovered. Use --printer or --ip."},
		{&TransportError{Phase: PhaseAddress, Addr: "999.1.1.1"}, "Invalid IP: 999.1.1.1"},
		{Wrap(InvalidAddress, "ip", "999.1.1.1", cause), "Invalid IP: 999.1.1.1"},
		{&SubmissionError{Reason: "printer offline", Completed: 2}, "CUPS print failed: printer offline (2 copies submitted)"},
		{
			&TransportError{Phase: PhaseConnect, Addr: "10.0.0.1:9100", Copy: 2, Completed: 1, Err: stderrors.New("connection refused")},
			"Raw print failed on copy 2 (1 completed): connect to 10.0.0.1:9100: connection refused",
		},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Fatalf("UserMessage() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindOfTransport(t *testing.T) {
	if KindOf(&TransportError{Phase: PhaseAddress}) != InvalidAddress {
		t.Fatalf("address failures are InvalidAddress")
	}
	if KindOf(&TransportError{Phase: PhaseSend}) != Transport {
		t.Fatalf("send failures are Transport")
	}
}
