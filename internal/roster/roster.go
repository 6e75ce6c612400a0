// internal/roster/roster.go

// Package roster exposes the member records the Discord bot maintains:
// XP entries feeding the public leaderboard plus HR and LR activity stats.
package roster

import "errors"

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("roster record not found")

// Table describes one roster table and the columns clients may write.
type Table struct {
	Name     string
	Writable map[string]bool
}

// Bot payloads sometimes carry fields that never became columns; anything
// outside Writable is dropped rather than rejected so older bot versions
// keep working.
var (
	Members = Table{
		Name: "members",
		Writable: map[string]bool{
			"user_id":  true,
			"username": true,
			"xp":       true,
		},
	}

	HRRecords = Table{
		Name: "hr_records",
		Writable: map[string]bool{
			"user_id":      true,
			"username":     true,
			"tryouts":      true,
			"events":       true,
			"phases":       true,
			"courses":      true,
			"inspections":  true,
			"joint_events": true,
		},
	}

	LRRecords = Table{
		Name: "lr_records",
		Writable: map[string]bool{
			"user_id":         true,
			"username":        true,
			"activity":        true,
			"time_guarded":    true,
			"events_attended": true,
		},
	}
)

// FilterPayload returns the subset of data that maps to writable columns.
func (t Table) FilterPayload(data map[string]any) map[string]any {
	payload := make(map[string]any, len(data))
	for k, v := range data {
		if t.Writable[k] {
			payload[k] = v
		}
	}
	return payload
}
