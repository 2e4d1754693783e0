// Package history keeps the append-only log of successful print jobs.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lprun/internal/domain"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	separator  = " | "
)

type FileSystem interface {
	AppendLine(path, line string) error
	ReadFile(path string) ([]byte, error)
}

type Store struct {
	Path  string
	FS    FileSystem
	Now   func() time.Time
	NewID func() string
}

// DefaultPath is $HOME/.programs/bin/lprun/history.log.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".programs", "bin", "lprun", "history.log"), nil
}

// Add appends one record and returns it.
func (s Store) Add(printer, file string) (domain.HistoryEntry, error) {
	entry := domain.HistoryEntry{
		ID:      s.newID(),
		Time:    s.now(),
		Printer: field(printer),
		File:    field(file),
	}
	if err := s.FS.AppendLine(s.Path, FormatEntry(entry)); err != nil {
		return entry, fmt.Errorf("append history %s: %w", s.Path, err)
	}
	return entry, nil
}

// Entries returns all records in file order. A missing log is empty;
// lines that do not parse are skipped.
func (s Store) Entries() ([]domain.HistoryEntry, error) {
	data, err := s.FS.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", s.Path, err)
	}

	var entries []domain.HistoryEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if entry, ok := ParseEntry(scanner.Text()); ok {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}

// FormatEntry renders
//
//	2026-10-15 09:30:00 | Printer: Office | File: report.pdf | ID: 4f1c...
func FormatEntry(e domain.HistoryEntry) string {
	return strings.Join([]string{
		e.Time.Format(timeLayout),
		"Printer: " + field(e.Printer),
		"File: " + field(e.File),
		"ID: " + e.ID,
	}, separator)
}

func ParseEntry(line string) (domain.HistoryEntry, bool) {
	parts := strings.Split(line, separator)
	if len(parts) < 3 {
		return domain.HistoryEntry{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, strings.TrimSpace(parts[0]), time.Local)
	if err != nil {
		return domain.HistoryEntry{}, false
	}
	entry := domain.HistoryEntry{Time: ts}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, ": ")
		if !ok {
			continue
		}
		switch key {
		case "Printer":
			entry.Printer = value
		case "File":
			entry.File = value
		case "ID":
			entry.ID = value
		}
	}
	if entry.Printer == "" {
		return domain.HistoryEntry{}, false
	}
	return entry, true
}

// field flattens a value onto one line and keeps the separator out of it.
func field(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	return strings.ReplaceAll(value, "|", "/")
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Store) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
