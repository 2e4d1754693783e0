// Package avahi resolves IPP printers advertised over mDNS using
// avahi-browse in parsable mode.
package avahi

import (
	"bufio"
	"bytes"
	"strings"
)

// Field positions in an `avahi-browse --parsable` line. A resolved record
// looks like:
//
//	=;enp3s0;IPv4;My Printer;_ipp._tcp;local;printer.local;192.168.1.40;631;"txt"
const (
	fieldEvent = iota
	fieldInterface
	fieldProtocol
	fieldName
	fieldType
	fieldDomain
	fieldHost
	fieldAddress
	fieldPort
	fieldTXT
)

// minResolvedFields is the token count needed to reach the address field.
const minResolvedFields = fieldAddress + 1

type Record struct {
	Event     string
	Interface string
	Protocol  string
	Name      string
	Type      string
	Domain    string
	Host      string
	Address   string
	Port      string
	TXT       string
}

// ParseRecord splits one parsable line. Lines too short to carry an
// address are reported as malformed.
func ParseRecord(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, ";")
	if len(fields) < minResolvedFields {
		return Record{}, false
	}

	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Record{
		Event:     get(fieldEvent),
		Interface: get(fieldInterface),
		Protocol:  get(fieldProtocol),
		Name:      get(fieldName),
		Type:      get(fieldType),
		Domain:    get(fieldDomain),
		Host:      get(fieldHost),
		Address:   strings.TrimSpace(get(fieldAddress)),
		Port:      get(fieldPort),
		TXT:       strings.Join(fields[min(fieldTXT, len(fields)):], ";"),
	}, true
}

// FirstAddress returns the address of the first well-formed record that
// carries one.
func FirstAddress(out []byte) (Record, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		rec, ok := ParseRecord(scanner.Text())
		if !ok || rec.Address == "" {
			continue
		}
		return rec, true
	}
	return Record{}, false
}
