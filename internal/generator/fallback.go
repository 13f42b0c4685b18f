package generator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"studykit-backend/internal/models"
)

const (
	summaryPlaceholder = "Content summary not available."
	notesTitle         = "Study Notes"
	flashcardCategory  = "General"
	sectionMainContent = "Main Content"
	sectionAdditional  = "Additional Points"

	fallbackMainPoints = 3
	fallbackKeyTopics  = 5
	keyTopicMinRunes   = 7
	fallbackNotePoints = 8
	mainContentPoints  = 4
	flashcardMinWords  = 4
	quizQuestionWords  = 8
)

var quizPlaceholderOptions = [models.QuizOptionCount]string{"Option A", "Option B", "Option C", "Option D"}

func fallbackSummary(text string) models.Summary {
	sentences := splitSentences(text)

	overview := summaryPlaceholder
	if len(sentences) > 0 {
		overview = sentences[0] + "..."
	}

	return models.Summary{
		Overview:   overview,
		MainPoints: append([]string{}, sentences[:min(fallbackMainPoints, len(sentences))]...),
		KeyTopics:  keyTopics(text, fallbackKeyTopics),
	}
}

// keyTopics returns the first n distinct long words of text in encounter
// order, with surrounding punctuation removed.
func keyTopics(text string, n int) []string {
	topics := []string{}
	seen := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if utf8.RuneCountInString(w) < keyTopicMinRunes || seen[w] {
			continue
		}
		seen[w] = true
		topics = append(topics, w)
		if len(topics) == n {
			break
		}
	}
	return topics
}

func fallbackNotes(text string, style models.NotesStyle) models.Notes {
	sentences := splitSentences(text)

	points := make([]string, 0, fallbackNotePoints)
	for i, s := range sentences[:min(fallbackNotePoints, len(sentences))] {
		points = append(points, fmt.Sprintf("%d. %s", i+1, s))
	}

	split := min(mainContentPoints, len(points))
	return models.Notes{
		Title: notesTitle,
		Style: string(style),
		Sections: []models.NotesSection{
			{Heading: sectionMainContent, Items: append([]string{}, points[:split]...)},
			{Heading: sectionAdditional, Items: append([]string{}, points[split:]...)},
		},
		Points: points,
	}
}

// fallbackFlashcards keeps the sentence position as the card id, so skipped
// short sentences leave gaps in the numbering.
func fallbackFlashcards(text string, count int) models.FlashcardSet {
	sentences := splitSentences(text)

	cards := models.FlashcardSet{}
	for i := 0; i < min(count, len(sentences)); i++ {
		words := strings.Fields(sentences[i])
		if len(words) < flashcardMinWords {
			continue
		}
		half := (len(words) + 1) / 2
		cards = append(cards, models.Flashcard{
			ID:       i + 1,
			Front:    "What is: " + phrase(words[:half]) + "?",
			Back:     sentences[i],
			Category: flashcardCategory,
		})
	}
	return cards
}

// fallbackQuiz always marks option A correct.
func fallbackQuiz(text string, questionCount int, difficulty models.Difficulty) models.Quiz {
	sentences := splitSentences(text)

	questions := []models.QuizQuestion{}
	for i := 0; i < min(questionCount, len(sentences)); i++ {
		words := strings.Fields(sentences[i])
		questions = append(questions, models.QuizQuestion{
			ID:            i + 1,
			Question:      "Question about: " + phrase(words[:min(quizQuestionWords, len(words))]) + "?",
			Options:       append([]string(nil), quizPlaceholderOptions[:]...),
			CorrectAnswer: 0,
			Explanation:   sentences[i],
		})
	}

	return models.Quiz{
		Title:       quizTitle(difficulty),
		Difficulty:  string(difficulty),
		Questions:   questions,
		TotalPoints: models.PointsPerQuestion * len(questions),
	}
}

func quizTitle(difficulty models.Difficulty) string {
	d := string(difficulty)
	if d == "" {
		return "Quiz"
	}
	r, size := utf8.DecodeRuneInString(d)
	return string(unicode.ToUpper(r)) + d[size:] + " Quiz"
}
