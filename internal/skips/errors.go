package skips

import (
	"errors"
	"fmt"
)

// ErrDataFetch matches every failure to obtain a usable skip list,
// whether the request failed or the payload could not be used.
var ErrDataFetch = errors.New("skip data fetch failed")

// FetchError reports a transport failure or a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("execute request: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDataFetch) match.
func (e *FetchError) Is(target error) bool { return target == ErrDataFetch }

// ParseError reports a payload that could not be decoded or that breaks
// the record invariants.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrDataFetch }
