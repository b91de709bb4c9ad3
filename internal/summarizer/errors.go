package summarizer

import "errors"

// Kind categorizes a summarization failure for the front ends: client
// kinds map to 400-class responses, the rest to 500-class.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidInput
	KindTranscriptUnavailable
	KindContentNotFound
	KindContentLoadFailed
	KindGenerationFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindTranscriptUnavailable:
		return "transcript_unavailable"
	case KindContentNotFound:
		return "content_not_found"
	case KindContentLoadFailed:
		return "content_load_failed"
	case KindGenerationFailed:
		return "generation_failed"
	default:
		return "unexpected"
	}
}

// ClientError reports whether the kind describes a caller problem rather
// than a service one.
func (k Kind) ClientError() bool {
	switch k {
	case KindInvalidInput, KindTranscriptUnavailable, KindContentNotFound, KindContentLoadFailed:
		return true
	}
	return false
}

// Error is a categorized summarization failure. Message is safe to show
// to the caller; Err keeps the underlying cause for server-side logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Categorize returns err as a categorized *Error. Uncategorized errors
// become KindUnexpected with a generic caller-safe message; the cause
// stays wrapped for server-side logging only.
func Categorize(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: KindUnexpected, Message: "An unexpected error occurred", Err: err}
}
