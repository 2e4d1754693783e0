// Package cups talks to the local CUPS spooler through its command line
// tools (lpstat, lp).
package cups

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lprun/internal/domain"
	"lprun/internal/infra/shell"
)

const (
	devicePrefix  = "device for "
	defaultPrefix = "system default destination:"
	requestPrefix = "request id is "
)

// ErrNoJobID is returned when lp succeeded but printed no request id.
var ErrNoJobID = errors.New("lp did not report a request id")

type Client struct {
	Shell shell.Commander
}

// Devices lists configured destinations in lpstat order.
func (c Client) Devices(ctx context.Context) ([]domain.Device, error) {
	out, err := c.Shell.Run(ctx, "lpstat", "-v")
	if err != nil && len(out) == 0 {
		return nil, err
	}
	devices := ParseDevices(out)

	// lpstat -d exits non-zero when no default is set; that is not an error.
	if def, derr := c.Shell.Run(ctx, "lpstat", "-d"); derr == nil || len(def) > 0 {
		name := ParseDefault(def)
		for i := range devices {
			devices[i].IsDefault = devices[i].Name == name
		}
	}
	return devices, nil
}

// Submit queues file on printer and returns the spooler job id.
func (c Client) Submit(ctx context.Context, printer, file, title string, options map[string]string) (int, error) {
	args := []string{"-d", printer, "-t", title}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-o", k+"="+options[k])
	}
	args = append(args, file)

	out, err := c.Shell.Run(ctx, "lp", args...)
	if err != nil {
		return 0, err
	}
	return ParseJobID(out)
}

// ParseDevices reads `lpstat -v` output:
//
//	device for Canon_G3020_series: usb://Canon/G3020%20series?serial=...
func ParseDevices(out []byte) []domain.Device {
	var devices []domain.Device
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, devicePrefix)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(devicePrefix):]
		colon := strings.Index(rest, ":")
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(rest[:colon])
		if name == "" {
			continue
		}
		devices = append(devices, domain.Device{
			Name: name,
			URI:  strings.TrimSpace(rest[colon+1:]),
		})
	}
	return devices
}

func ParseDefault(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), defaultPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// ParseJobID extracts 42 from "request id is Printer-42 (1 file(s))".
func ParseJobID(out []byte) (int, error) {
	text := string(out)
	idx := strings.Index(text, requestPrefix)
	if idx < 0 {
		return 0, ErrNoJobID
	}
	fields := strings.Fields(text[idx+len(requestPrefix):])
	if len(fields) == 0 {
		return 0, ErrNoJobID
	}
	request := fields[0]
	dash := strings.LastIndex(request, "-")
	if dash < 0 {
		return 0, fmt.Errorf("unexpected request id %q", request)
	}
	id, err := strconv.Atoi(request[dash+1:])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("unexpected request id %q", request)
	}
	return id, nil
}

// ColorOptions maps a color mode to CUPS job options. Auto leaves the
// choice to the printer.
func ColorOptions(mode domain.ColorMode) map[string]string {
	switch mode {
	case domain.ColorFull:
		return map[string]string{"ColorModel": "RGB", "ColorSpace": "sRGB"}
	case domain.ColorGrayscale:
		return map[string]string{"ColorModel": "Gray", "ColorSpace": "Gray"}
	default:
		return nil
	}
}
