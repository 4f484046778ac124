package host

import (
	"encoding/json"
	"fmt"

	"github.com/rostart/rostart/internal/errdefs"
)

type Kind string

const (
	KindAutostartStatus Kind = "autostart.status"
	KindSpecsUpdate     Kind = "specs.update"
	KindThemeStatus     Kind = "theme.status"
	KindLanguageStatus  Kind = "language.status"
	KindUpdateLog       Kind = "update.log"
	KindUpdateStatus    Kind = "update.status"
	KindDismiss         Kind = "wizard.dismiss"
)

// Notification is an update pushed by the host into the wizard.
type Notification interface {
	Kind() Kind
}

// SystemSpecs describes the machine. Any field may be empty.
type SystemSpecs struct {
	CPU      string `json:"cpu,omitempty"`
	GPU      string `json:"gpu,omitempty"`
	RAM      string `json:"ram,omitempty"`
	Storage  string `json:"storage,omitempty"`
	Distro   string `json:"distro,omitempty"`
	Version  string `json:"version,omitempty"`
	DistroID string `json:"distroId,omitempty"`
	Kernel   string `json:"kernel,omitempty"`
}

// Merge returns s with every non-empty field of other applied on top.
func (s SystemSpecs) Merge(other SystemSpecs) SystemSpecs {
	pick := func(cur, next string) string {
		if next != "" {
			return next
		}
		return cur
	}
	return SystemSpecs{
		CPU:      pick(s.CPU, other.CPU),
		GPU:      pick(s.GPU, other.GPU),
		RAM:      pick(s.RAM, other.RAM),
		Storage:  pick(s.Storage, other.Storage),
		Distro:   pick(s.Distro, other.Distro),
		Version:  pick(s.Version, other.Version),
		DistroID: pick(s.DistroID, other.DistroID),
		Kernel:   pick(s.Kernel, other.Kernel),
	}
}

type AutostartStatus struct {
	Enabled bool `json:"enabled"`
}

type SpecsUpdate struct {
	SystemSpecs
}

type ThemeStatus struct {
	IsDark bool `json:"isDark"`
}

type LanguageStatus struct {
	Language string `json:"language"`
}

type UpdateLog struct {
	Message string `json:"message"`
}

type UpdateState string

const (
	UpdateProgress  UpdateState = "progress"
	UpdateCompleted UpdateState = "completed"
	UpdateError     UpdateState = "error"
)

type UpdateStatus struct {
	Status     UpdateState `json:"status"`
	Percentage int         `json:"percentage,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// Dismiss asks the UI to unmount after a close-welcome intent.
type Dismiss struct{}

func (AutostartStatus) Kind() Kind { return KindAutostartStatus }
func (SpecsUpdate) Kind() Kind     { return KindSpecsUpdate }
func (ThemeStatus) Kind() Kind     { return KindThemeStatus }
func (LanguageStatus) Kind() Kind  { return KindLanguageStatus }
func (UpdateLog) Kind() Kind       { return KindUpdateLog }
func (UpdateStatus) Kind() Kind    { return KindUpdateStatus }
func (Dismiss) Kind() Kind         { return KindDismiss }

// DecodeNotification builds a typed notification from a JSON payload.
func DecodeNotification(kind Kind, payload json.RawMessage) (Notification, error) {
	var n Notification
	var err error

	switch kind {
	case KindAutostartStatus:
		var v AutostartStatus
		err = decodePayload(payload, &v)
		n = v
	case KindSpecsUpdate:
		var v SpecsUpdate
		err = decodePayload(payload, &v.SystemSpecs)
		n = v
	case KindThemeStatus:
		var v ThemeStatus
		err = decodePayload(payload, &v)
		n = v
	case KindLanguageStatus:
		var v LanguageStatus
		err = decodePayload(payload, &v)
		if err == nil && v.Language == "" {
			err = fmt.Errorf("missing language")
		}
		n = v
	case KindUpdateLog:
		var v UpdateLog
		err = decodePayload(payload, &v)
		n = v
	case KindUpdateStatus:
		var v UpdateStatus
		err = decodePayload(payload, &v)
		if err == nil {
			err = v.Validate()
		}
		n = v
	case KindDismiss:
		n = Dismiss{}
	default:
		return nil, errdefs.NewCustomError(errdefs.ErrTypeInvalidNotification, fmt.Sprintf("unknown notification kind: %s", kind))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errdefs.ErrInvalidNotification, kind, err)
	}
	return n, nil
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}

func (s UpdateStatus) Validate() error {
	switch s.Status {
	case UpdateProgress, UpdateCompleted, UpdateError:
		return nil
	}
	return fmt.Errorf("unknown update status %q", s.Status)
}
