package github

import "time"

// Repository is the subset of the GitHub repository record the graph exposes.
type Repository struct {
	Name       string `json:"name"`
	HTMLURL    string `json:"html_url"`
	Stars      int    `json:"stargazers_count"`
	Forks      int    `json:"forks_count"`
	OpenIssues int    `json:"open_issues_count"`
	HasIssues  bool   `json:"has_issues"`
	Archived   bool   `json:"archived"`
	Fork       bool   `json:"fork"`
	Owner      *Owner `json:"owner"` // nil for repositories without an owner reference
}

// Owner is the abbreviated owner reference embedded in a repository record.
// Full user data requires a separate lookup by login.
type Owner struct {
	Login string `json:"login"`
}

// User is a public GitHub user record.
type User struct {
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
	Followers int       `json:"followers"`
	Email     string    `json:"email"` // empty when the user hides their email
}
