package models

type NotesStyle string

const (
	StyleBullet   NotesStyle = "bullet"
	StyleOutline  NotesStyle = "outline"
	StyleDetailed NotesStyle = "detailed"
)

func (s NotesStyle) Valid() bool {
	switch s {
	case StyleBullet, StyleOutline, StyleDetailed:
		return true
	}
	return false
}

type NotesSection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

type Notes struct {
	Title    string         `json:"title"`
	Style    string         `json:"style"`
	Sections []NotesSection `json:"sections"`
	Points   []string       `json:"points"`
}

func (Notes) Variant() Variant { return VariantNotes }

type GenerateNotesRequest struct {
	Content string     `json:"content"`
	Style   NotesStyle `json:"style"`
}
