package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig      Kind = "invalid_config"
	MissingDocument    Kind = "missing_document"
	NotFound           Kind = "not_found"
	DiscoveryExhausted Kind = "discovery_exhausted"
	Preparation        Kind = "preparation"
	InvalidAddress     Kind = "invalid_address"
	Transport          Kind = "transport"
	SpoolerSubmission  Kind = "spooler_submission"
	IOFailure          Kind = "io_failure"
	Internal           Kind = "internal"
)

// ErrDiscoveryExhausted is returned when no discovery stage found a printer.
var ErrDiscoveryExhausted = stderrors.New("no printer discovered")

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf returns the kind of the outermost AppError in the chain, or
// Internal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	var transportErr *TransportError
	if stderrors.As(err, &transportErr) {
		if transportErr.Phase == PhaseAddress {
			return InvalidAddress
		}
		return Transport
	}
	var submitErr *SubmissionError
	if stderrors.As(err, &submitErr) {
		return SpoolerSubmission
	}
	if stderrors.Is(err, ErrDiscoveryExhausted) {
		return DiscoveryExhausted
	}
	return Internal
}

func UserMessage(err error) string {
	var transportErr *TransportError
	if stderrors.As(err, &transportErr) {
		return transportErr.UserMessage()
	}
	var submitErr *SubmissionError
	if stderrors.As(err, &submitErr) {
		return submitErr.UserMessage()
	}

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		if stderrors.Is(err, ErrDiscoveryExhausted) {
			return "No printer discovered. Use --printer or --ip."
		}
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case MissingDocument:
		return "Error: one of --text / --image / --file required"
	case NotFound:
		return fmt.Sprintf("Path not found: %s", appErr.Path)
	case DiscoveryExhausted:
		return "No printer discovered. Use --printer or --ip."
	case Preparation:
		return fmt.Sprintf("Failed to prepare %s: %v", appErr.Path, appErr.Err)
	case InvalidAddress:
		return fmt.Sprintf("Invalid IP: %s", appErr.Path)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s: %v", appErr.Path, appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
