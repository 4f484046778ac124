// Package catalog holds the static content tables shown by the wizard:
// step order, feature list, suggested applications and product info.
package catalog

import "github.com/rostart/rostart/internal/locale"

type General struct {
	AppName string
	Year    string
	Version string
}

var Info = General{
	AppName: "Ro-Start",
	Year:    "2026",
	Version: "2026.01",
}

type StepID string

const (
	StepWelcome        StepID = "welcome"
	StepSystemUpdates  StepID = "system-updates"
	StepDriverUpdates  StepID = "driver-updates"
	StepAppSuggestions StepID = "app-suggestions"
	StepReady          StepID = "ready"
)

// Step describes one screen of the wizard. The list below is consumed in
// order and never mutated.
type Step struct {
	ID   StepID
	Icon string
}

var steps = []Step{
	{ID: StepWelcome, Icon: "✦"},
	{ID: StepSystemUpdates, Icon: "⇩"},
	{ID: StepDriverUpdates, Icon: "▣"},
	{ID: StepAppSuggestions, Icon: "▤"},
	{ID: StepReady, Icon: "✓"},
}

// Steps returns a copy of the ordered step list.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// StepCount is the number of wizard steps.
func StepCount() int { return len(steps) }

// Title returns the localized title of a step.
func (s Step) Title(b *locale.Bundle) string {
	switch s.ID {
	case StepWelcome:
		return b.Welcome.Title
	case StepSystemUpdates:
		return b.SystemUpdates.Title
	case StepDriverUpdates:
		return b.DriverUpdates.Title
	case StepAppSuggestions:
		return b.AppSuggestions.Title
	case StepReady:
		return b.Ready.Title
	}
	return string(s.ID)
}

// Features are keyed into locale.WelcomeStrings.Features.
var Features = []string{"modern", "fast", "secure", "custom"}

type App struct {
	ID       string
	Name     string
	Category string
	Size     string
	Popular  bool
}

var Apps = []App{
	{ID: "google-chrome", Name: "Google Chrome", Category: "internet", Size: "95 MB", Popular: true},
	{ID: "code", Name: "Visual Studio Code", Category: "development", Size: "120 MB", Popular: true},
	{ID: "spotify", Name: "Spotify", Category: "music", Size: "180 MB", Popular: true},
	{ID: "vlc", Name: "VLC Media Player", Category: "media", Size: "45 MB", Popular: true},
	{ID: "gimp", Name: "GIMP", Category: "graphics", Size: "210 MB"},
	{ID: "terminal", Name: "Terminal Emulator", Category: "system", Size: "25 MB", Popular: true},
}

// PopularApps returns the apps offered on the suggestions step.
func PopularApps() []App {
	var out []App
	for _, app := range Apps {
		if app.Popular {
			out = append(out, app)
		}
	}
	return out
}

// UpdateTranscript is replayed by the local host when it simulates a system
// update.
var UpdateTranscript = []string{
	"Hit:1 http://archive.ubuntu.com/ubuntu noble InRelease",
	"Reading package lists... Done",
	"Building dependency tree... Done",
	"Reading state information... Done",
	"Calculated upgrade... Done",
	"The following packages will be upgraded:",
	"  firefox firefox-locale-en libglib2.0-0 libglib2.0-bin",
	"4 upgraded, 0 newly installed, 0 to remove and 0 not upgraded.",
	"Need to get 42.5 MB of archives.",
	"After this operation, 1024 KB of additional disk space will be used.",
	"Fetched 42.5 MB in 2s (18.5 MB/s)",
	"(Reading database ... 185432 files and directories currently installed.)",
	"Preparing to unpack .../libglib2.0-0_2.80.0_amd64.deb ...",
	"Unpacking libglib2.0-0:amd64 (2.80.0) over (2.79.0) ...",
	"Setting up libglib2.0-0:amd64 (2.80.0) ...",
	"done.",
}
