package tui

import (
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/netcheck"
)

type notificationMsg struct {
	notification host.Notification
}

type subscriptionClosedMsg struct{}

type connectivityMsg struct {
	connectivity netcheck.Connectivity
}
