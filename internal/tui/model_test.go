package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lprun/internal/app"
	"lprun/internal/domain"
)

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelFollowsRun(t *testing.T) {
	m := NewModel(Config{Document: "report.pdf", Copies: 2})
	if m.Phase != PhaseDiscovering {
		t.Fatalf("expected discovering phase, got %v", m.Phase)
	}

	m = update(t, m, StageMsg{Label: "Browsing mDNS for IPP printers"})
	if !strings.Contains(m.View(), "Browsing mDNS") {
		t.Fatalf("expected stage label in view")
	}

	target := domain.NewNetworkTarget("192.168.1.40", 9100)
	m = update(t, m, TargetFoundMsg{Target: target})
	if m.Phase != PhaseSending || m.Target != target {
		t.Fatalf("unexpected state after target: %+v", m.Phase)
	}

	m = update(t, m, CopyStartedMsg{Copy: 1, Copies: 2})
	m = update(t, m, ProgressMsg{Progress: domain.TransferProgress{Copy: 1, Copies: 2, BytesSent: 50, TotalBytes: 100}})
	view := m.View()
	if !strings.Contains(view, "Sending copy 1/2") || !strings.Contains(view, "50/100 bytes") {
		t.Fatalf("unexpected sending view:\n%s", view)
	}

	m = update(t, m, CopyFinishedMsg{Copy: 1, Copies: 2})
	m = update(t, m, DoneMsg{Result: app.Result{Target: target, Copies: 2}})
	if m.Phase != PhaseDone {
		t.Fatalf("expected done phase")
	}
	if !strings.Contains(m.View(), "copy 1/2 sent") {
		t.Fatalf("expected finished copy in view")
	}
}

func TestModelShowsUserMessageOnError(t *testing.T) {
	m := update(t, NewModel(Config{Document: "x"}), ErrorMsg{Err: errors.New("boom")})
	if m.Phase != PhaseError {
		t.Fatalf("expected error phase")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("expected error in view")
	}
}

func TestQuitOnlyWhenFinished(t *testing.T) {
	m := NewModel(Config{})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd != nil {
		t.Fatalf("q must not quit while the job is running")
	}
	m = update(t, m, ErrorMsg{Err: errors.New("x")})
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("enter should quit once finished")
	}
}

func TestFeedbackForwardsMessages(t *testing.T) {
	var msgs []tea.Msg
	f := Feedback{Send: func(msg tea.Msg) { msgs = append(msgs, msg) }}

	activity := f.Begin("Looking up spooler printers")
	activity.End()
	f.Submitted("Office", 12, 1, 1)

	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if _, ok := msgs[1].(StageDoneMsg); !ok {
		t.Fatalf("End should send StageDoneMsg, got %T", msgs[1])
	}
	if sub, ok := msgs[2].(SubmittedMsg); !ok || sub.JobID != 12 {
		t.Fatalf("unexpected submitted message %#v", msgs[2])
	}
	var _ app.Feedback = f
}
