package wizard

import (
	"slices"

	"github.com/rostart/rostart/internal/host"
)

// AppSelection is an insertion-ordered set of app identifiers.
type AppSelection struct {
	ids []string
}

func (s *AppSelection) Toggle(id string) {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

func (s *AppSelection) Has(id string) bool { return slices.Contains(s.ids, id) }

func (s *AppSelection) Len() int { return len(s.ids) }

func (s *AppSelection) IDs() []string { return slices.Clone(s.ids) }

// InstallIntent returns the install-apps intent for the current selection.
// The selection is left untouched.
func (s *AppSelection) InstallIntent() (host.Intent, bool) {
	if len(s.ids) == 0 {
		return host.Intent{}, false
	}
	return host.InstallApps(s.IDs()), true
}
