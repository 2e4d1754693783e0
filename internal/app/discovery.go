package app

import (
	"context"

	"lprun/internal/domain"
	appErrors "lprun/internal/errors"
	"lprun/internal/logging"
)

// Chain tries its strategies in order and stops at the first hit. Later,
// more expensive stages never run once a printer is known.
type Chain struct {
	Strategies []Strategy
	Feedback   Feedback
	Logger     logging.Logger
}

func (c Chain) Discover(ctx context.Context) (domain.Target, error) {
	for _, strategy := range c.Strategies {
		target, ok, err := c.run(ctx, strategy)
		if err != nil {
			c.Logger.Verbosef("%s discovery failed: %v", strategy.Name(), err)
		}
		if ok && !target.IsZero() {
			c.Logger.Verbosef("%s discovery found %s", strategy.Name(), target)
			if c.Feedback != nil {
				c.Feedback.TargetFound(target)
			}
			return target, nil
		}
	}
	return domain.Target{}, appErrors.Wrap(appErrors.DiscoveryExhausted, "discover", "", appErrors.ErrDiscoveryExhausted)
}

func (c Chain) run(ctx context.Context, strategy Strategy) (domain.Target, bool, error) {
	stop := c.Logger.Measure(strategy.Name() + " discovery")
	defer stop()

	if c.Feedback != nil {
		activity := c.Feedback.Begin(stageLabel(strategy.Name()))
		defer activity.End()
	}
	return strategy.Discover(ctx)
}

func stageLabel(name string) string {
	switch name {
	case "spooler":
		return "Looking up spooler printers"
	case "mdns":
		return "Browsing mDNS for IPP printers"
	case "portscan":
		return "Scanning local network for printers"
	default:
		return "Discovering printers (" + name + ")"
	}
}
