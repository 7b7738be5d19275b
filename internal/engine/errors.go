package engine

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy shared by all extractors.
var (
	// ErrConfig means a required credential is missing. Fatal for the call, never retried.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidReference means the identifier could not be parsed.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrNoContent means the upstream answered but yielded no usable text.
	ErrNoContent = errors.New("no content")

	// ErrNotFound means a channel or video does not resolve.
	ErrNotFound = errors.New("not found")
)

// UpstreamFetchError reports a non-2xx response or a transport failure.
type UpstreamFetchError struct {
	URL        string
	StatusCode int // 0 on transport failure
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// ExtractionReason classifies a failed video extraction.
type ExtractionReason string

const (
	ReasonInvalidReference ExtractionReason = "invalid_reference"
	ReasonNoContent        ExtractionReason = "no_content"
)

// ExtractionError is returned by video extraction.
// errors.Is matches ErrInvalidReference or ErrNoContent according to Reason.
type ExtractionError struct {
	Reason ExtractionReason
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool {
	switch e.Reason {
	case ReasonInvalidReference:
		return target == ErrInvalidReference
	case ReasonNoContent:
		return target == ErrNoContent
	}
	return false
}

// IsUpstream reports whether err carries an UpstreamFetchError.
func IsUpstream(err error) bool {
	var uerr *UpstreamFetchError
	return errors.As(err, &uerr)
}
