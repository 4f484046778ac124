package wizard

import "github.com/rostart/rostart/internal/host"

type UpdatePhase string

const (
	PhaseIdle      UpdatePhase = "idle"
	PhaseUpdating  UpdatePhase = "updating"
	PhaseCompleted UpdatePhase = "completed"
)

const logPrefix = "> "

// UpdateSession mirrors a host-driven system update. It never performs the
// update itself and has no timeout.
type UpdateSession struct {
	Status   UpdatePhase
	Progress int
	Logs     []string
}

func NewUpdateSession() *UpdateSession {
	return &UpdateSession{Status: PhaseIdle}
}

// Start resets the session and returns the intent that asks the host to
// begin.
func (s *UpdateSession) Start() host.Intent {
	s.Status = PhaseUpdating
	s.Progress = 0
	s.Logs = nil
	return host.StartSystemUpdate()
}

func (s *UpdateSession) ApplyLog(msg string) {
	s.Logs = append(s.Logs, logPrefix+msg)
}

func (s *UpdateSession) ApplyStatus(st host.UpdateStatus) {
	switch st.Status {
	case host.UpdateProgress:
		s.Progress = clampPercent(st.Percentage)
	case host.UpdateCompleted:
		s.Progress = 100
		s.Status = PhaseCompleted
	case host.UpdateError:
		s.Status = PhaseIdle
		s.Logs = append(s.Logs, logPrefix+"Error: "+st.Message)
	}
}

// Apply folds update notifications and ignores everything else.
func (s *UpdateSession) Apply(n host.Notification) bool {
	switch v := n.(type) {
	case host.UpdateLog:
		s.ApplyLog(v.Message)
	case host.UpdateStatus:
		s.ApplyStatus(v)
	default:
		return false
	}
	return true
}

func clampPercent(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
