// Package locale holds the translation bundles for every label the wizard
// renders. Bundles are embedded YAML documents, one per language code.
package locale

type Feature struct {
	Title string `yaml:"title"`
	Desc  string `yaml:"desc"`
}

type Bundle struct {
	Welcome        WelcomeStrings       `yaml:"welcome"`
	SystemUpdates  SystemUpdateStrings  `yaml:"systemUpdates"`
	DriverUpdates  DriverUpdateStrings  `yaml:"driverUpdates"`
	AppSuggestions AppSuggestionStrings `yaml:"appSuggestions"`
	Ready          ReadyStrings         `yaml:"ready"`
	Nav            NavStrings           `yaml:"nav"`
	Header         HeaderStrings        `yaml:"header"`
	Footer         FooterStrings        `yaml:"footer"`
}

type WelcomeStrings struct {
	Title       string             `yaml:"title"`
	Subtitle    string             `yaml:"subtitle"`
	Description string             `yaml:"description"`
	Features    map[string]Feature `yaml:"features"`
}

type SystemUpdateStrings struct {
	Title          string         `yaml:"title"`
	Subtitle       string         `yaml:"subtitle"`
	Description    string         `yaml:"description"`
	UpdateButton   string         `yaml:"updateButton"`
	Updating       string         `yaml:"updating"`
	Completed      string         `yaml:"completed"`
	CompletedTitle string         `yaml:"completedTitle"`
	ShowLogs       string         `yaml:"showLogs"`
	HideLogs       string         `yaml:"hideLogs"`
	ProgressTitle  string         `yaml:"progressTitle"`
	Network        NetworkStrings `yaml:"network"`
}

type NetworkStrings struct {
	Full    string `yaml:"full"`
	Limited string `yaml:"limited"`
	Portal  string `yaml:"portal"`
	None    string `yaml:"none"`
	Unknown string `yaml:"unknown"`
}

type SpecStrings struct {
	CPU        string `yaml:"cpu"`
	GPU        string `yaml:"gpu"`
	RAM        string `yaml:"ram"`
	Storage    string `yaml:"storage"`
	CPUVal     string `yaml:"cpuVal"`
	GPUVal     string `yaml:"gpuVal"`
	RAMVal     string `yaml:"ramVal"`
	StorageVal string `yaml:"storageVal"`
}

type DriverUpdateStrings struct {
	Title       string      `yaml:"title"`
	Subtitle    string      `yaml:"subtitle"`
	Description string      `yaml:"description"`
	Specs       SpecStrings `yaml:"specs"`
	OpenManager string      `yaml:"openManager"`
	Footer      string      `yaml:"footer"`
}

type AppSuggestionStrings struct {
	Title       string            `yaml:"title"`
	Subtitle    string            `yaml:"subtitle"`
	Description string            `yaml:"description"`
	Selected    string            `yaml:"selected"`
	Select      string            `yaml:"select"`
	Install     string            `yaml:"install"`
	Categories  map[string]string `yaml:"categories"`
	Footer      string            `yaml:"footer"`
}

type ReadyStrings struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Description string `yaml:"description"`
	System      string `yaml:"system"`
	Version     string `yaml:"version"`
	Status      string `yaml:"status"`
	ReadyStatus string `yaml:"readyStatus"`
	StartButton string `yaml:"startButton"`
	Autostart   string `yaml:"autostart"`
}

type NavStrings struct {
	Back  string `yaml:"back"`
	Next  string `yaml:"next"`
	Start string `yaml:"start"`
	Quit  string `yaml:"quit"`
}

type HeaderStrings struct {
	Theme    string `yaml:"theme"`
	Dark     string `yaml:"dark"`
	Light    string `yaml:"light"`
	Language string `yaml:"language"`
}

type FooterStrings struct {
	Copyright string `yaml:"copyright"`
}

// Category returns the translated category label, or the raw key when the
// bundle has none.
func (b *Bundle) Category(key string) string {
	if label, ok := b.AppSuggestions.Categories[key]; ok && label != "" {
		return label
	}
	return key
}
