package model

import "time"

// PageState represents the visitation state of a URL in the frontier.
//
// Design decision: We use an explicit tagged state rather than a shared
// sentinel value because:
//  1. Reference-identity comparisons are fragile and easy to break
//  2. The zero value naturally means "unvisited"
//  3. The state machine (unvisited -> visited) is visible in the type
type PageState int

const (
	// StateUnvisited marks a URL that has been discovered but not fetched.
	StateUnvisited PageState = iota

	// StateVisited marks a URL that has been fetched successfully.
	StateVisited
)

// String returns a human-readable state name.
func (s PageState) String() string {
	switch s {
	case StateUnvisited:
		return "unvisited"
	case StateVisited:
		return "visited"
	default:
		return "unknown"
	}
}

// PageEntry is the value stored in the frontier for each discovered URL.
// An entry is created in StateUnvisited; a successful fetch transitions it
// to StateVisited and records the page's last-modified timestamp (or the
// fetch time when the server did not provide one).
type PageEntry struct {
	// State is the visitation state of the URL.
	State PageState

	// LastModified is the resolved last-modified date of the page.
	// Only meaningful when State is StateVisited. Only the date component
	// (year-month-day) is significant for sitemap output.
	LastModified time.Time
}

// Visited creates a visited entry with the given timestamp.
func Visited(lastModified time.Time) PageEntry {
	return PageEntry{State: StateVisited, LastModified: lastModified}
}

// Unvisited creates an unvisited entry.
func Unvisited() PageEntry {
	return PageEntry{State: StateUnvisited}
}
