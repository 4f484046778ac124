package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/log"
	"github.com/rostart/rostart/internal/server/models"
)

var notifyKinds = map[string]host.Kind{
	"notify.autostart":    host.KindAutostartStatus,
	"notify.specs":        host.KindSpecsUpdate,
	"notify.theme":        host.KindThemeStatus,
	"notify.language":     host.KindLanguageStatus,
	"notify.updateLog":    host.KindUpdateLog,
	"notify.updateStatus": host.KindUpdateStatus,
	"notify.dismiss":      host.KindDismiss,
}

// NotifyMethod returns the API method that publishes kind.
func NotifyMethod(kind host.Kind) (string, bool) {
	for method, k := range notifyKinds {
		if k == kind {
			return method, true
		}
	}
	return "", false
}

func (s *Server) RouteRequest(conn net.Conn, req models.Request) {
	log.Debugf("API Request: method=%s id=%v", req.Method, req.ID)

	if kind, ok := notifyKinds[req.Method]; ok {
		s.handleNotify(conn, req, kind)
		return
	}

	switch req.Method {
	case "ping":
		models.Respond(conn, req.ID, "pong")
	case "wizard.state":
		if s.state == nil {
			models.RespondError(conn, req.ID, "wizard state not available")
			return
		}
		models.Respond(conn, req.ID, s.state())
	default:
		models.RespondError(conn, req.ID, fmt.Sprintf("unknown method: %s", req.Method))
	}
}

func (s *Server) handleNotify(conn net.Conn, req models.Request, kind host.Kind) {
	raw, err := json.Marshal(req.Params)
	if err != nil {
		models.RespondError(conn, req.ID, fmt.Sprintf("invalid params: %v", err))
		return
	}
	if req.Params == nil {
		raw = nil
	}

	n, err := host.DecodeNotification(kind, raw)
	if err != nil {
		models.RespondError(conn, req.ID, err.Error())
		return
	}

	s.hub.Publish(n)
	models.Respond(conn, req.ID, models.SuccessResult{
		Success: true,
		Message: fmt.Sprintf("published %s", kind),
	})
}

// handleSubscribe streams every dispatched intent until the client goes away
// or ctx is done. The connection is dedicated to the stream afterwards.
func (s *Server) handleSubscribe(ctx context.Context, conn net.Conn, req models.Request) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan host.Intent, 64)
	sinkName := fmt.Sprintf("socket-%p", conn)

	s.hub.AddSink(sinkName, host.SinkFunc(func(_ context.Context, in host.Intent) error {
		select {
		case events <- in:
			return nil
		default:
			return fmt.Errorf("subscriber %s is not keeping up", sinkName)
		}
	}))
	defer s.hub.RemoveSink(sinkName)

	go func() {
		io.Copy(io.Discard, conn)
		cancel()
	}()

	if err := models.Respond(conn, req.ID, models.SuccessResult{Success: true, Message: "subscribed"}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case in := <-events:
			event := models.IntentEvent{
				ID:     in.ID,
				Action: string(in.Action),
				URL:    in.URL(),
				Params: in.Params,
			}
			if err := models.Respond(conn, req.ID, event); err != nil {
				return
			}
		}
	}
}
