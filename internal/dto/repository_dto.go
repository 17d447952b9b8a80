package dto

import "time"

// RepositoryInfo is read-only GitHub metadata about a student fork, shown as
// auxiliary dashboard decoration. It is never used for authorization.
type RepositoryInfo struct {
	FullName  string     `json:"full_name"`
	HTMLURL   string     `json:"html_url"`
	IsFork    bool       `json:"is_fork"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	PushedAt  *time.Time `json:"pushed_at"`
}
