package services

import "fmt"

// ExtractionKind classifies why content could not be turned into text.
type ExtractionKind string

const (
	KindInvalidURL         ExtractionKind = "invalid_url"
	KindNoTranscript       ExtractionKind = "no_transcript"
	KindTranscriptDisabled ExtractionKind = "transcript_disabled"
	KindVideoUnavailable   ExtractionKind = "video_unavailable"
	KindUnsupportedType    ExtractionKind = "unsupported_type"
	KindEmptyContent       ExtractionKind = "empty_content"
	KindFetchFailed        ExtractionKind = "fetch_failed"
)

type ExtractionError struct {
	Kind    ExtractionKind
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is matches any *ExtractionError of the same kind, so callers can write
// errors.Is(err, services.ErrNoTranscript).
func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidURL         = &ExtractionError{Kind: KindInvalidURL, Message: "invalid YouTube URL"}
	ErrNoTranscript       = &ExtractionError{Kind: KindNoTranscript, Message: "no transcript available for this video"}
	ErrTranscriptDisabled = &ExtractionError{Kind: KindTranscriptDisabled, Message: "transcripts are disabled for this video"}
	ErrVideoUnavailable   = &ExtractionError{Kind: KindVideoUnavailable, Message: "video is unavailable or private"}
	ErrUnsupportedType    = &ExtractionError{Kind: KindUnsupportedType, Message: "unsupported file type"}
	ErrEmptyContent       = &ExtractionError{Kind: KindEmptyContent, Message: "content is empty"}
	ErrFetchFailed        = &ExtractionError{Kind: KindFetchFailed, Message: "failed to fetch content"}
)

func extractionErr(kind ExtractionKind, msg string, err error) *ExtractionError {
	return &ExtractionError{Kind: kind, Message: msg, Err: err}
}
