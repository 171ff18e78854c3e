package monitor

import "time"

type Status struct {
	Tasks          int       `json:"tasks"`
	Users          int       `json:"users"`
	JournalEnabled bool      `json:"journal_enabled"`
	JournalEntries int       `json:"journal_entries"`
	LastCheck      time.Time `json:"last_check"`
}
