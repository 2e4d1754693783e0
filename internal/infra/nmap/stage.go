package nmap

import (
	"context"
	"fmt"

	"lprun/internal/domain"
	"lprun/internal/infra/shell"
)

// Stage scans every host of the local /24. It is by far the slowest
// discovery step and therefore runs last.
type Stage struct {
	Shell   shell.Commander
	Subnet  func() (string, error)
	RawPort uint16
}

func (Stage) Name() string { return "portscan" }

func (s Stage) Discover(ctx context.Context) (domain.Target, bool, error) {
	subnet, err := s.Subnet()
	if err != nil {
		return domain.Target{}, false, fmt.Errorf("resolve subnet: %w", err)
	}

	out, err := s.Shell.Run(ctx, "nmap", "-p", portList(), "--open", "-oG", "-", subnet)
	host, ok := FirstPrinter(out)
	if !ok {
		return domain.Target{}, false, err
	}
	return domain.NewNetworkTarget(host.IP, s.RawPort), true, nil
}
