package avahi

import (
	"context"

	"lprun/internal/domain"
	"lprun/internal/infra/shell"
)

const ippService = "_ipp._tcp"

// Stage asks avahi for resolved IPP services. The advertised port is the
// IPP port; jobs still go to RawPort on the resolved address.
type Stage struct {
	Shell   shell.Commander
	RawPort uint16
}

func (Stage) Name() string { return "mdns" }

func (s Stage) Discover(ctx context.Context) (domain.Target, bool, error) {
	out, err := s.Shell.Run(ctx, "avahi-browse", "-rt", ippService, "--resolve", "--parsable")
	rec, ok := FirstAddress(out)
	if !ok {
		return domain.Target{}, false, err
	}
	return domain.NewNetworkTarget(rec.Address, s.RawPort), true, nil
}
