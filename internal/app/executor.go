package app

import (
	"context"
	"errors"
	"time"

	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
	"lprun/internal/infra/shell"
	"lprun/internal/logging"
)

// SubmitDelay separates consecutive spooler submissions of the same file.
const SubmitDelay = 200 * time.Millisecond

type Options struct {
	Copies  int
	Title   string
	Label   string
	Options map[string]string
}

type Result struct {
	Target  domain.Target
	Copies  int
	JobIDs  []int
	History domain.HistoryEntry
}

// Executor sends a prepared file to a discovered or configured target.
type Executor struct {
	Spooler  Spooler
	Raw      RawSender
	History  History
	Feedback Feedback
	Logger   logging.Logger
	Sleep    func(time.Duration)
}

func (e *Executor) Execute(ctx context.Context, target domain.Target, path string, opts Options) (Result, error) {
	if opts.Copies < 1 {
		opts.Copies = 1
	}
	result := Result{Target: target}

	var err error
	switch {
	case target.IsSpooler():
		result.JobIDs, err = e.submit(ctx, target.Name, path, opts)
	case target.IsNetwork():
		err = e.sendRaw(ctx, target, path, opts.Copies)
	default:
		err = appErrors.Wrap(appErrors.Internal, "execute", path, errors.New("no printer target"))
	}
	if err != nil {
		return result, err
	}
	result.Copies = opts.Copies

	if e.History != nil {
		label := opts.Label
		if label == "" {
			label = path
		}
		entry, herr := e.History.Add(target.String(), label)
		if herr != nil {
			e.Logger.Warnf("could not record history: %v", herr)
		}
		result.History = entry
	}
	return result, nil
}

func (e *Executor) submit(ctx context.Context, printer, path string, opts Options) ([]int, error) {
	if e.Spooler == nil {
		return nil, appErrors.Wrap(appErrors.Internal, "submit", path, errors.New("executor requires Spooler"))
	}
	title := opts.Title
	if title == "" {
		title = "lprun"
	}

	ids := make([]int, 0, opts.Copies)
	for c := 1; c <= opts.Copies; c++ {
		id, err := e.Spooler.Submit(ctx, printer, path, title, opts.Options)
		if err != nil {
			return ids, &appErrors.SubmissionError{
				Printer:   printer,
				Reason:    shell.Reason(err),
				Completed: c - 1,
			}
		}
		ids = append(ids, id)
		e.Logger.Verbosef("queued %s as job %d (%d/%d)", path, id, c, opts.Copies)
		if e.Feedback != nil {
			e.Feedback.Submitted(printer, id, c, opts.Copies)
		}
		if c < opts.Copies {
			e.pause()
		}
	}
	return ids, nil
}

func (e *Executor) sendRaw(ctx context.Context, target domain.Target, path string, copies int) error {
	if e.Raw == nil {
		return appErrors.Wrap(appErrors.Internal, "send", path, errors.New("executor requires Raw sender"))
	}
	stop := e.Logger.Measure("raw transfer to " + target.Address())
	defer stop()

	_, err := e.Raw.Send(ctx, domain.NewTransferJob(target, path, copies))
	return err
}

func (e *Executor) pause() {
	if e.Sleep != nil {
		e.Sleep(SubmitDelay)
		return
	}
	time.Sleep(SubmitDelay)
}
