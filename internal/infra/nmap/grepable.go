// Package nmap finds raw/IPP printers on the local /24 by running an nmap
// port scan and reading its grepable output.
package nmap

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// PrinterPorts are probed in this order: JetDirect raw, the Canon/BJNP
// alternative raw port, and IPP.
var PrinterPorts = []int{9100, 8611, 631}

const (
	hostMarker  = "Host:"
	portsMarker = "Ports:"
)

// PortEntry is one comma separated element of the Ports: field,
// e.g. "9100/open/tcp//jetdirect///".
type PortEntry struct {
	Port    int
	State   string
	Proto   string
	Service string
}

type HostLine struct {
	IP    string
	Ports []PortEntry
}

// Open reports whether any of ports is open on the host.
func (h HostLine) Open(ports ...int) bool {
	for _, entry := range h.Ports {
		if entry.State != "open" {
			continue
		}
		for _, p := range ports {
			if entry.Port == p {
				return true
			}
		}
	}
	return false
}

// ParseHostLine reads a grepable line such as
//
//	Host: 192.168.1.40 ()	Ports: 9100/open/tcp//jetdirect///, 631/open/tcp//ipp///
//
// Lines that are not host lines, or have no Ports field, are rejected.
func ParseHostLine(line string) (HostLine, bool) {
	rest, ok := strings.CutPrefix(line, hostMarker)
	if !ok {
		return HostLine{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return HostLine{}, false
	}
	host := HostLine{IP: fields[0]}

	idx := strings.Index(rest, portsMarker)
	if idx < 0 {
		return HostLine{}, false
	}
	portsField := rest[idx+len(portsMarker):]
	// Further tab separated sections ("Ignored State:", ...) follow the ports.
	if tab := strings.Index(portsField, "\t"); tab >= 0 {
		portsField = portsField[:tab]
	}

	for _, raw := range strings.Split(portsField, ",") {
		parts := strings.Split(strings.TrimSpace(raw), "/")
		if len(parts) < 3 {
			continue
		}
		port, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		entry := PortEntry{Port: port, State: parts[1], Proto: parts[2]}
		if len(parts) > 4 {
			entry.Service = parts[4]
		}
		host.Ports = append(host.Ports, entry)
	}
	return host, true
}

// FirstPrinter returns the first host with any printer port open.
func FirstPrinter(out []byte) (HostLine, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		host, ok := ParseHostLine(scanner.Text())
		if !ok {
			continue
		}
		if host.Open(PrinterPorts...) {
			return host, true
		}
	}
	return HostLine{}, false
}

func portList() string {
	parts := make([]string, len(PrinterPorts))
	for i, p := range PrinterPorts {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
