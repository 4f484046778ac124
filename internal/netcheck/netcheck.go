// Package netcheck asks NetworkManager whether the machine can reach the
// internet, so the update step can warn before a doomed update.
package netcheck

import (
	"context"
	"fmt"

	"github.com/Wifx/gonetworkmanager/v2"
	"github.com/rostart/rostart/internal/log"
)

type Connectivity string

const (
	Unknown Connectivity = "unknown"
	None    Connectivity = "none"
	Portal  Connectivity = "portal"
	Limited Connectivity = "limited"
	Full    Connectivity = "full"
)

var queryConnectivity = func() (gonetworkmanager.NmConnectivity, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return gonetworkmanager.NmConnectivityUnknown, fmt.Errorf("failed to connect to NetworkManager: %w", err)
	}
	return nm.GetPropertyConnectivity()
}

// Check returns the current connectivity. Any failure, including a missing
// NetworkManager, reports Unknown.
func Check(ctx context.Context) Connectivity {
	type result struct {
		c   gonetworkmanager.NmConnectivity
		err error
	}
	done := make(chan result, 1)
	go func() {
		c, err := queryConnectivity()
		done <- result{c, err}
	}()

	select {
	case <-ctx.Done():
		return Unknown
	case r := <-done:
		if r.err != nil {
			log.Debugf("connectivity check: %v", r.err)
			return Unknown
		}
		return fromNM(r.c)
	}
}

func fromNM(c gonetworkmanager.NmConnectivity) Connectivity {
	switch c {
	case gonetworkmanager.NmConnectivityFull:
		return Full
	case gonetworkmanager.NmConnectivityLimited:
		return Limited
	case gonetworkmanager.NmConnectivityPortal:
		return Portal
	case gonetworkmanager.NmConnectivityNone:
		return None
	}
	return Unknown
}

// CanUpdate reports whether mirrors are likely reachable.
func (c Connectivity) CanUpdate() bool { return c == Full }
