package app

import (
	"context"

	"lprun/internal/domain"
	"lprun/internal/rawprint"
)

// Strategy is one discovery stage. A miss is (zero, false, nil); an error
// counts as a miss for the chain.
type Strategy interface {
	Name() string
	Discover(ctx context.Context) (domain.Target, bool, error)
}

type Spooler interface {
	Submit(ctx context.Context, printer, file, title string, options map[string]string) (int, error)
}

type RawSender interface {
	Send(ctx context.Context, job domain.TransferJob) (rawprint.Code, error)
}

type History interface {
	Add(printer, file string) (domain.HistoryEntry, error)
}

// Activity is a running indicator returned by Feedback.Begin. End must be
// called on every path out of the guarded work.
type Activity interface {
	End()
}

// Feedback receives user-facing progress of a print run.
type Feedback interface {
	Begin(label string) Activity
	TargetFound(target domain.Target)
	CopyStarted(current, copies int, total uint64)
	Progress(p domain.TransferProgress)
	CopyFinished(current, copies int)
	Submitted(printer string, jobID, current, copies int)
}
