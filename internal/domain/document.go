package domain

import (
	"strings"
	"time"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorFull
	ColorGrayscale
)

func (c ColorMode) String() string {
	switch c {
	case ColorFull:
		return "color"
	case ColorGrayscale:
		return "grayscale"
	default:
		return "auto"
	}
}

// Document is what the user asked to print. Only one of Text, ImagePath
// and FilePath is set.
type Document struct {
	Text      string
	ImagePath string
	FilePath  string
	Color     ColorMode
}

func (d Document) IsEmpty() bool {
	return d.Text == "" && d.ImagePath == "" && d.FilePath == ""
}

// Label names the document for history records and status lines.
func (d Document) Label() string {
	switch {
	case d.Text != "":
		return "text:" + truncate(strings.Join(strings.Fields(d.Text), " "), 32)
	case d.ImagePath != "":
		return d.ImagePath
	default:
		return d.FilePath
	}
}

func IsPDF(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

// Device is one destination configured in the print spooler.
type Device struct {
	Name      string
	URI       string
	IsDefault bool
}

type HistoryEntry struct {
	ID      string
	Time    time.Time
	Printer string
	File    string
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
