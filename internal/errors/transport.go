package errors

import "fmt"

// Phase is the step of a raw transfer that failed.
type Phase string

const (
	PhaseArgs     Phase = "args"
	PhaseSocket   Phase = "socket"
	PhaseAddress  Phase = "address"
	PhaseConnect  Phase = "connect"
	PhaseFileOpen Phase = "file_open"
	PhaseSend     Phase = "send"
)

// TransportError aborts a whole raw job. Completed counts the copies that
// were fully delivered before the failure.
type TransportError struct {
	Phase     Phase
	Code      int
	Addr      string
	Copy      int
	Completed int
	Err       error
}

func (e *TransportError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("raw %s %s: %v", e.Phase, e.Addr, e.Err)
	}
	return fmt.Sprintf("raw %s: %v", e.Phase, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) UserMessage() string {
	var msg string
	switch e.Phase {
	case PhaseAddress:
		return fmt.Sprintf("Invalid IP: %s", e.Addr)
	case PhaseArgs:
		return fmt.Sprintf("Raw print rejected: %v", e.Err)
	case PhaseSocket:
		msg = fmt.Sprintf("socket: %v", e.Err)
	case PhaseConnect:
		msg = fmt.Sprintf("connect to %s: %v", e.Addr, e.Err)
	case PhaseFileOpen:
		msg = fmt.Sprintf("open: %v", e.Err)
	default:
		msg = fmt.Sprintf("send to %s: %v", e.Addr, e.Err)
	}
	return fmt.Sprintf("Raw print failed on copy %d (%d completed): %s", e.Copy, e.Completed, msg)
}

// SubmissionError reports a spooler job that was rejected. Copies submitted
// before the rejection are counted in Completed.
type SubmissionError struct {
	Printer   string
	Reason    string
	Completed int
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("spooler submission to %s failed after %d copies: %s", e.Printer, e.Completed, e.Reason)
}

func (e *SubmissionError) UserMessage() string {
	return fmt.Sprintf("CUPS print failed: %s (%d copies submitted)", e.Reason, e.Completed)
}
