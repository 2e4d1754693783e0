package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"lprun/internal/app"
	"lprun/internal/domain"
)

// Feedback forwards progress from the worker goroutine into the running
// program. Send is usually (*tea.Program).Send.
type Feedback struct {
	Send func(tea.Msg)
}

type stage struct {
	send func(tea.Msg)
}

func (s stage) End() { s.send(StageDoneMsg{}) }

func (f Feedback) Begin(label string) app.Activity {
	f.Send(StageMsg{Label: label})
	return stage{send: f.Send}
}

func (f Feedback) TargetFound(target domain.Target) {
	f.Send(TargetFoundMsg{Target: target})
}

func (f Feedback) CopyStarted(current, copies int, total uint64) {
	f.Send(CopyStartedMsg{Copy: current, Copies: copies})
}

func (f Feedback) Progress(p domain.TransferProgress) {
	f.Send(ProgressMsg{Progress: p})
}

func (f Feedback) CopyFinished(current, copies int) {
	f.Send(CopyFinishedMsg{Copy: current, Copies: copies})
}

func (f Feedback) Submitted(printer string, jobID, current, copies int) {
	f.Send(SubmittedMsg{Printer: printer, JobID: jobID, Copy: current, Copies: copies})
}
