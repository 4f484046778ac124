package netcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/Wifx/gonetworkmanager/v2"
	"github.com/stretchr/testify/assert"
)

func stubQuery(t *testing.T, c gonetworkmanager.NmConnectivity, err error) {
	t.Helper()
	orig := queryConnectivity
	t.Cleanup(func() { queryConnectivity = orig })
	queryConnectivity = func() (gonetworkmanager.NmConnectivity, error) { return c, err }
}

func TestCheckMapsStates(t *testing.T) {
	tests := []struct {
		nm   gonetworkmanager.NmConnectivity
		want Connectivity
	}{
		{gonetworkmanager.NmConnectivityFull, Full},
		{gonetworkmanager.NmConnectivityLimited, Limited},
		{gonetworkmanager.NmConnectivityPortal, Portal},
		{gonetworkmanager.NmConnectivityNone, None},
		{gonetworkmanager.NmConnectivityUnknown, Unknown},
	}
	for _, tt := range tests {
		stubQuery(t, tt.nm, nil)
		assert.Equal(t, tt.want, Check(context.Background()))
	}
}

func TestCheckUnknownOnError(t *testing.T) {
	stubQuery(t, gonetworkmanager.NmConnectivityFull, errors.New("no bus"))
	assert.Equal(t, Unknown, Check(context.Background()))
	assert.False(t, Unknown.CanUpdate())
	assert.True(t, Full.CanUpdate())
}
