package presentation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"lprun/internal/app"
	"lprun/internal/domain"
)

const barWidth = 40

// RenderBar draws a fixed-width byte progress bar followed by the integer
// percentage, e.g. "[=================>                      ]  45%".
func RenderBar(sent, total uint64) string {
	if sent > total {
		sent = total
	}
	// Integer division keeps exact fractions like 29/100 at 29%.
	var percent, filled int
	if total > 0 {
		percent = int(sent * 100 / total)
		filled = int(sent * barWidth / total)
	}

	var b strings.Builder
	b.Grow(barWidth + 7)
	b.WriteByte('[')
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			b.WriteByte('=')
		case i == filled && filled > 0:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	fmt.Fprintf(&b, "] %3d%%", percent)
	return b.String()
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#85DCB0")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8A87C"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// Printer is the plain terminal implementation of app.Feedback. It also
// prints the device list and history for the subcommands.
type Printer struct {
	Writer  io.Writer
	Verbose bool
	// Interval between spinner frames; zero uses the frame rate of the
	// spinner itself.
	Interval time.Duration
}

type activity struct {
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	once    *sync.Once
	printer Printer
	label   string
}

// Begin starts a spinner next to label. It runs on its own goroutine until
// End cancels and joins it.
func (p Printer) Begin(label string) app.Activity {
	ctx, cancel := context.WithCancel(context.Background())
	a := activity{
		cancel:  cancel,
		wg:      &sync.WaitGroup{},
		once:    &sync.Once{},
		printer: p,
		label:   label,
	}

	frames := spinner.Line.Frames
	interval := p.Interval
	if interval <= 0 {
		interval = spinner.Line.FPS
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			p.status(labelStyle.Render(frames[i%len(frames)]) + " " + label)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return a
}

func (a activity) End() {
	a.once.Do(func() {
		a.cancel()
		a.wg.Wait()
		if console, ok := a.printer.Writer.(*Console); ok {
			console.Status("")
			return
		}
		// Clear the spinner line.
		fmt.Fprintf(a.printer.Writer, "\r%s\r", strings.Repeat(" ", len(a.label)+2))
	})
}

// status redraws the transient line. Through a Console it is erased before
// the next log line; on any other writer it is a bare carriage return.
func (p Printer) status(line string) {
	if console, ok := p.Writer.(*Console); ok {
		console.Status(line)
		return
	}
	fmt.Fprint(p.Writer, "\r"+line)
}

func (p Printer) TargetFound(target domain.Target) {
	switch {
	case target.IsSpooler():
		fmt.Fprintf(p.Writer, "Found spooler printer: %s\n", labelStyle.Render(target.Name))
	case target.IsNetwork():
		fmt.Fprintf(p.Writer, "Found network printer: %s\n", labelStyle.Render(target.Address()))
	}
}

func (p Printer) CopyStarted(current, copies int, total uint64) {
	fmt.Fprintf(p.Writer, "Sending copy %d/%d (%d bytes)\n", current, copies, total)
}

func (p Printer) Progress(progress domain.TransferProgress) {
	p.status(RenderBar(progress.BytesSent, progress.TotalBytes))
}

func (p Printer) CopyFinished(current, copies int) {
	if console, ok := p.Writer.(*Console); ok {
		console.Commit()
	} else {
		fmt.Fprintln(p.Writer)
	}
	fmt.Fprintf(p.Writer, "%s copy %d/%d sent\n", okStyle.Render("✓"), current, copies)
}

func (p Printer) Submitted(printer string, jobID, current, copies int) {
	fmt.Fprintf(p.Writer, "%s queued on %s as job %d (%d/%d)\n", okStyle.Render("✓"), printer, jobID, current, copies)
}

// PrintResult writes the final status line of a successful run.
func (p Printer) PrintResult(result app.Result) {
	fmt.Fprintf(p.Writer, "%s Printed %d %s on %s\n",
		okStyle.Render("✓"), result.Copies, plural(result.Copies, "copy", "copies"), result.Target)
	if p.Verbose && result.History.ID != "" {
		fmt.Fprintln(p.Writer, dimStyle.Render("history id "+result.History.ID))
	}
}

func (p Printer) PrintDevices(devices []domain.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(p.Writer, "No printers configured.")
		return
	}
	fmt.Fprintln(p.Writer, "Printers:")
	for _, line := range formatDevices(devices) {
		fmt.Fprintln(p.Writer, line)
	}
}

func (p Printer) PrintHistory(entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.Writer, "No print history.")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(p.Writer, "%s  %-24s  %s\n",
			entry.Time.Format("2006-01-02 15:04"), entry.Printer, entry.File)
	}
}

func formatDevices(devices []domain.Device) []string {
	lines := make([]string, 0, len(devices))
	for _, d := range devices {
		marker := " "
		if d.IsDefault {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", marker, d.Name, dimStyle.Render(d.URI)))
	}
	return lines
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
