package presentation

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"lprun/internal/app"
	"lprun/internal/domain"
)

func TestRenderBarEmpty(t *testing.T) {
	bar := RenderBar(0, 100)
	if strings.Count(bar, "=") != 0 || strings.Contains(bar, ">") {
		t.Fatalf("expected no filled cells, got %q", bar)
	}
	if !strings.HasSuffix(bar, "   0%") {
		t.Fatalf("expected 0%%, got %q", bar)
	}
}

func TestRenderBarFull(t *testing.T) {
	bar := RenderBar(100, 100)
	if strings.Count(bar, "=") != barWidth {
		t.Fatalf("expected %d filled cells, got %q", barWidth, bar)
	}
	if strings.Contains(bar, ">") {
		t.Fatalf("full bar has no head: %q", bar)
	}
	if !strings.HasSuffix(bar, "] 100%") {
		t.Fatalf("expected 100%%, got %q", bar)
	}
}

func TestRenderBarPartial(t *testing.T) {
	want := "[====>" + strings.Repeat(" ", barWidth-5) + "]  12%"
	if got := RenderBar(12, 100); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderBarExactPercent(t *testing.T) {
	for sent := uint64(0); sent <= 100; sent++ {
		want := fmt.Sprintf("] %3d%%", sent)
		if got := RenderBar(sent, 100); !strings.HasSuffix(got, want) {
			t.Fatalf("RenderBar(%d, 100) = %q, want suffix %q", sent, got, want)
		}
	}
	if got := RenderBar(1, 3); !strings.HasSuffix(got, "  33%") {
		t.Fatalf("expected 33%%, got %q", got)
	}
}

func TestRenderBarZeroTotalAndOverflow(t *testing.T) {
	empty := "[" + strings.Repeat(" ", barWidth) + "]   0%"
	if got := RenderBar(50, 0); got != empty {
		t.Fatalf("expected %q, got %q", empty, got)
	}
	if got := RenderBar(200, 100); got != RenderBar(100, 100) {
		t.Fatalf("overflow should clamp, got %q", got)
	}
	if len(RenderBar(1, 3)) != len(RenderBar(2, 3)) {
		t.Fatalf("bar width must be constant")
	}
}

func TestBeginEndJoinsSpinner(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf, Interval: time.Millisecond}

	activity := printer.Begin("Scanning local network for printers")
	time.Sleep(10 * time.Millisecond)
	activity.End()
	activity.End()

	// The spinner goroutine has exited; nothing may be written after End.
	snapshot := buf.String()
	time.Sleep(10 * time.Millisecond)
	if buf.String() != snapshot {
		t.Fatalf("spinner kept writing after End")
	}
	if !strings.Contains(snapshot, "Scanning local network for printers") {
		t.Fatalf("expected label in output, got %q", snapshot)
	}
}

func TestPrinterImplementsFeedback(t *testing.T) {
	var _ app.Feedback = Printer{}
}

func TestPrintDevicesMarksDefault(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}
	printer.PrintDevices([]domain.Device{
		{Name: "Office", URI: "ipp://192.168.1.40/ipp/print", IsDefault: true},
		{Name: "Label", URI: "usb://Brother/QL-700"},
	})

	output := buf.String()
	if !strings.Contains(output, "* Office") {
		t.Fatalf("expected default marker, got %q", output)
	}
	if !strings.Contains(output, "  Label") {
		t.Fatalf("expected non-default device, got %q", output)
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintHistory(nil)
	if !strings.Contains(buf.String(), "No print history.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	printer.PrintHistory([]domain.HistoryEntry{{
		Time:    time.Date(2026, 10, 2, 15, 1, 0, 0, time.Local),
		Printer: "Office",
		File:    "report.pdf",
	}})
	if !strings.Contains(buf.String(), "2026-10-02 15:01") || !strings.Contains(buf.String(), "report.pdf") {
		t.Fatalf("unexpected history output %q", buf.String())
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}
	printer.PrintResult(app.Result{Target: domain.NewNetworkTarget("10.0.0.9", 9100), Copies: 1})
	if !strings.Contains(buf.String(), "Printed 1 copy on 10.0.0.9:9100") {
		t.Fatalf("unexpected result line %q", buf.String())
	}
}
