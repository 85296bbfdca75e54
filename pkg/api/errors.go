package api

import "fmt"

// FetchError wraps a failed request with enough context for the status
// bar: which endpoint, and the HTTP status when the server answered.
type FetchError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
