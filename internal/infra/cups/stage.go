package cups

import (
	"context"

	"lprun/internal/domain"
)

// DeviceStage is the first discovery step: an already configured spooler
// destination needs no network I/O at all.
type DeviceStage struct {
	Client Client
}

func (DeviceStage) Name() string { return "spooler" }

func (s DeviceStage) Discover(ctx context.Context) (domain.Target, bool, error) {
	out, err := s.Client.Shell.Run(ctx, "lpstat", "-v")
	devices := ParseDevices(out)
	if len(devices) == 0 {
		return domain.Target{}, false, err
	}
	return domain.NewSpoolerTarget(devices[0].Name), true, nil
}
