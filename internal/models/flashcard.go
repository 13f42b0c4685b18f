package models

type Flashcard struct {
	ID       int    `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	Category string `json:"category"`
}

// FlashcardSet never holds more cards than were requested.
type FlashcardSet []Flashcard

func (FlashcardSet) Variant() Variant { return VariantFlashcards }

type GenerateFlashcardsRequest struct {
	Content string `json:"content"`
	Count   *int   `json:"count"`
}
