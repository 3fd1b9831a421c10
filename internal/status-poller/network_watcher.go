package status_poller

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

type NetworkListener interface {
	NetworkRestored()
	NetworkLost()
}

type NetworkWatcher interface {
	Run(ctx context.Context) error
}

type networkWatcher struct {
	listener NetworkListener
	interval time.Duration
	online   func() (bool, error)
	logger   *zap.Logger
}

// Run reports online/offline transitions to the listener. The first successful observation is the
// baseline and is not reported.
func (w *networkWatcher) Run(ctx context.Context) error {
	var last *bool
	observe := func() {
		online, err := w.online()
		if err != nil {
			w.logger.Warn("failed to inspect network interfaces", zap.Error(fmt.Errorf("networkWatcher.Run: %w", err)))
			return
		}
		if last != nil && *last != online {
			if online {
				w.listener.NetworkRestored()
			} else {
				w.listener.NetworkLost()
			}
		}
		last = &online
	}

	observe()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			observe()
		}
	}
}

// hostOnline reports whether any interface other than loopback is up and has an address.
func hostOnline() (bool, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if len(addrs) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func NewNetworkWatcher(listener NetworkListener, interval time.Duration, logger *zap.Logger) (NetworkWatcher, error) {
	if interval <= 0 {
		return nil, errors.New("NewNetworkWatcher: interval must be > 0")
	}
	return &networkWatcher{
		listener: listener,
		interval: interval,
		online:   hostOnline,
		logger:   logger,
	}, nil
}
