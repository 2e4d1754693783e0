package presentation

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Console is a terminal writer shared by the spinner and the logger. Writes
// are serialized, and an unterminated status line is erased before any
// other output so log lines always start at column zero.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	status int
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	return c.out.Write(p)
}

// Status replaces the current status line with line. An empty line only
// erases it.
func (c *Console) Status(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	if line == "" {
		return
	}
	io.WriteString(c.out, "\r"+line)
	c.status = lipgloss.Width(line)
}

// Commit keeps the current status line on screen and moves to the next line.
func (c *Console) Commit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == 0 {
		return
	}
	io.WriteString(c.out, "\n")
	c.status = 0
}

func (c *Console) clear() {
	if c.status == 0 {
		return
	}
	io.WriteString(c.out, "\r"+strings.Repeat(" ", c.status)+"\r")
	c.status = 0
}
