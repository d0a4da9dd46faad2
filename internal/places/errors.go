package places

import (
	"errors"
	"fmt"
)

// ErrUpstream matches every failure of the Places web service
var ErrUpstream = errors.New("places upstream failure")

// UpstreamError describes a failed call to the Places web service
type UpstreamError struct {
	Op         string
	StatusCode int
	Status     string
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("places %s: %v", e.Op, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("places %s: unexpected http status %d", e.Op, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("places %s: status %s: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("places %s: status %s", e.Op, e.Status)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUpstream) true for any *UpstreamError
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
