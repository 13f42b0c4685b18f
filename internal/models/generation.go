package models

type Variant string

const (
	VariantSummary    Variant = "summary"
	VariantNotes      Variant = "notes"
	VariantFlashcards Variant = "flashcards"
	VariantQuiz       Variant = "quiz"
)

// Artifact is one of Summary, Notes, FlashcardSet or Quiz.
type Artifact interface {
	Variant() Variant
}

// VariantOptions carries the options for every variant; each generator reads
// only its own fields.
type VariantOptions struct {
	Style         NotesStyle
	Count         int
	QuestionCount int
	Difficulty    Difficulty
}

type GenerationRequest struct {
	Text    string
	Variant Variant
	Options VariantOptions
}
