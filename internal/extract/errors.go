// Package extract recovers a structured candidate profile from the rendered DOM of a profile page.
package extract

import "fmt"

// ParseError represents a failure to parse the page HTML into a tree.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NameNotFoundError is raised by callers when a page on the expected host yields no name,
// which usually means the page has not finished loading or uses an unsupported layout.
type NameNotFoundError struct {
	URL  string
	Host string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("could not detect profile name on %s (host %s): is the page fully loaded?", e.URL, e.Host)
}
