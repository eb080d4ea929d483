package entity

// AddonRecord represents one installed workshop addon found under the
// content root. Read-only after enumeration.
type AddonRecord struct {
	ID         string // Numeric published-file id, taken from the folder name
	SourcePath string // Absolute path to the installed addon folder
}

// Status is the terminal state of a translation worker for one addon.
type Status int

const (
	StatusSucceeded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	return [...]string{"succeeded", "skipped", "failed"}[s]
}

// Outcome is the structured result a worker reports back to the coordinator.
type Outcome struct {
	Addon      *AddonRecord
	Status     Status
	Title      string // Sanitized display title the addon was translated under
	OutputPath string // Populated for succeeded addons
	Reason     string // Skip or failure reason, human readable
	Warning    string // Non-fatal trouble (shortcut failed, unsupported platform)
}
