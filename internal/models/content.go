package models

type SourceKind string

const (
	SourceYouTube SourceKind = "youtube"
	SourceUpload  SourceKind = "upload"
	SourceRaw     SourceKind = "raw"
)

// ContentSource describes where normalized text should come from. Only the
// fields relevant to Kind are read.
type ContentSource struct {
	Kind     SourceKind
	URL      string // youtube
	Filename string // upload
	Data     []byte // upload
	Text     string // raw
}

// NormalizedContent is the single plain-text view of a source. Text is never
// empty: extraction fails instead.
type NormalizedContent struct {
	Text       string     `json:"content"`
	SourceKind SourceKind `json:"type"`
	SourceID   string     `json:"sourceId,omitempty"`
	Title      string     `json:"title,omitempty"`
	CharCount  int        `json:"charCount"`
}

type YouTubeRequest struct {
	URL string `json:"url"`
}

type RawTextRequest struct {
	Content string `json:"content"`
}
