package domain

import (
	"fmt"
	"net"
	"strconv"
)

// DefaultRawPort is the JetDirect/AppSocket port most network printers listen on.
const DefaultRawPort uint16 = 9100

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSpooler
	TargetNetwork
)

// Target is the printer a job is sent to. Exactly one of the spooler name or
// the network address is meaningful, selected by Kind.
type Target struct {
	Kind TargetKind
	Name string
	IP   string
	Port uint16
}

func NewSpoolerTarget(name string) Target {
	return Target{Kind: TargetSpooler, Name: name}
}

func NewNetworkTarget(ip string, port uint16) Target {
	if port == 0 {
		port = DefaultRawPort
	}
	return Target{Kind: TargetNetwork, IP: ip, Port: port}
}

func (t Target) IsZero() bool {
	return t.Kind == TargetNone
}

func (t Target) IsSpooler() bool {
	return t.Kind == TargetSpooler
}

func (t Target) IsNetwork() bool {
	return t.Kind == TargetNetwork
}

// Address returns host:port for network targets.
func (t Target) Address() string {
	return net.JoinHostPort(t.IP, strconv.Itoa(int(t.Port)))
}

// String identifies the target in logs and history records.
func (t Target) String() string {
	switch t.Kind {
	case TargetSpooler:
		return t.Name
	case TargetNetwork:
		return t.Address()
	default:
		return "<none>"
	}
}

func (k TargetKind) String() string {
	switch k {
	case TargetSpooler:
		return "spooler"
	case TargetNetwork:
		return "network"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
