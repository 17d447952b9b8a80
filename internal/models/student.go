package models

import "time"

// Student represents a program participant. The GitHub username is the
// natural key across every table; students are created implicitly the first
// time the classroom sync sees a grade for them.
type Student struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	GithubUsername      string     `gorm:"size:255;uniqueIndex;not null" json:"github_username"`
	ForkCreatedAt       *time.Time `json:"fork_created_at"`
	LastUpdatedAt       *time.Time `json:"last_updated_at"`
	ResolutionTimeHours *int       `json:"resolution_time_hours"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// HasFork reports whether the student accepted their classroom fork.
// A non-nil fork creation timestamp is the canonical signal; the boolean
// flag the upstream sync used to carry is derived, never stored.
func (s Student) HasFork() bool {
	return s.ForkCreatedAt != nil
}

// ResolutionHours returns the whole hours between fork creation and the last
// fork update, or nil when the student has no fork or no update yet.
func (s Student) ResolutionHours() *int {
	if s.ForkCreatedAt == nil || s.LastUpdatedAt == nil {
		return nil
	}

	hours := int(s.LastUpdatedAt.Sub(*s.ForkCreatedAt).Hours())
	return &hours
}
