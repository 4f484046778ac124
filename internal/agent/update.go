package agent

import (
	"context"
	"time"

	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/log"
)

// startUpdate replays the transcript in the background. A second start
// cancels the first.
func (a *Agent) startUpdate() {
	a.updateMutex.Lock()
	defer a.updateMutex.Unlock()

	if a.updateCancel != nil {
		a.updateCancel()
	}
	ctx, cancel := context.WithCancel(a.baseCtx)
	a.updateCancel = cancel

	a.updateWg.Add(1)
	go func() {
		defer a.updateWg.Done()
		a.simulateUpdate(ctx)
	}()
}

func (a *Agent) simulateUpdate(ctx context.Context) {
	lines := a.opts.Transcript
	log.Infof("Simulating system update (%d steps)", len(lines))

	for i, line := range lines {
		select {
		case <-ctx.Done():
			log.Debugf("System update simulation cancelled at step %d", i)
			return
		case <-time.After(a.opts.StepDelay):
		}

		a.pub.Publish(host.UpdateLog{Message: line})
		a.pub.Publish(host.UpdateStatus{
			Status:     host.UpdateProgress,
			Percentage: (i + 1) * 100 / len(lines),
		})
	}

	if ctx.Err() != nil {
		return
	}
	a.pub.Publish(host.UpdateStatus{Status: host.UpdateCompleted})
}
