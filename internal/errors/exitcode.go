package errors

import stderrors "errors"

// Process exit codes.
const (
	ExitOK            = 0
	ExitUsage         = 1
	ExitNoDocument    = 2
	ExitNoPrinter     = 3
	ExitTextFailed    = 4
	ExitImageFailed   = 5
	ExitPDFFailed     = 6
	ExitSpoolerFailed = 20
	exitTransportBase = 30
	ExitInternal      = 70
)

// ExitInvalidAddress is shared by config validation and the raw sender.
const ExitInvalidAddress = exitTransportBase + 3

// Operation names used with the Preparation kind.
const (
	OpPrepareText  = "prepare text"
	OpPrepareImage = "convert image"
	OpPreparePDF   = "convert pdf"
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var transportErr *TransportError
	if stderrors.As(err, &transportErr) {
		code := transportErr.Code
		if code < 0 {
			code = -code
		}
		return exitTransportBase + code
	}

	switch KindOf(err) {
	case InvalidConfig:
		return ExitUsage
	case MissingDocument:
		return ExitNoDocument
	case DiscoveryExhausted:
		return ExitNoPrinter
	case SpoolerSubmission:
		return ExitSpoolerFailed
	case InvalidAddress:
		return ExitInvalidAddress
	case Preparation:
		var appErr *AppError
		stderrors.As(err, &appErr)
		switch appErr.Op {
		case OpPrepareText:
			return ExitTextFailed
		case OpPrepareImage:
			return ExitImageFailed
		case OpPreparePDF:
			return ExitPDFFailed
		}
		return ExitInternal
	default:
		return ExitInternal
	}
}
