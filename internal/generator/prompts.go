package generator

import (
	"fmt"

	"studykit-backend/internal/models"
)

// MaxPromptChars bounds the source text sent to the model. The fallback path
// always sees the full text.
const MaxPromptChars = 4000

const defaultTemperature = 0.7

const (
	summaryMaxTokens    = 500
	notesMaxTokens      = 800
	flashcardsMaxTokens = 1000
	quizMaxTokens       = 1200
)

const jsonOnly = "Return ONLY valid JSON. No preamble, no markdown, no backticks."

var notesStyleInstructions = map[models.NotesStyle]string{
	models.StyleBullet:   "Create bullet point notes with clear, concise points.",
	models.StyleOutline:  "Create an outline format with main headings and sub-points.",
	models.StyleDetailed: "Create detailed notes with explanations and examples.",
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func buildSummaryPrompt(text string) Prompt {
	return Prompt{
		System: "You are a helpful assistant that creates concise and informative summaries. " +
			"Return your response as a JSON object with 'mainPoints' (array of key points), " +
			"'keyTopics' (array of main topics), and 'overview' (brief overview paragraph). " + jsonOnly,
		User:        "Please summarize the following content:\n\n" + truncateRunes(text, MaxPromptChars),
		MaxTokens:   summaryMaxTokens,
		Temperature: defaultTemperature,
	}
}

func buildNotesPrompt(text string, style models.NotesStyle) Prompt {
	return Prompt{
		System: "You are a helpful assistant that creates study notes. " + notesStyleInstructions[style] +
			" Return your response as a JSON object with 'title', 'style', 'sections' (array of objects " +
			"with 'heading' and 'items' array), and 'points' (array of all points). " + jsonOnly,
		User:        fmt.Sprintf("Create %s notes from the following content:\n\n%s", style, truncateRunes(text, MaxPromptChars)),
		MaxTokens:   notesMaxTokens,
		Temperature: defaultTemperature,
	}
}

func buildFlashcardsPrompt(text string, count int) Prompt {
	return Prompt{
		System: fmt.Sprintf("You are a helpful assistant that creates flashcards for studying. "+
			"Create %d flashcards with clear questions and answers. Return your response as a JSON array "+
			"of objects, each with 'id', 'front' (question), 'back' (answer), and 'category' properties. %s",
			count, jsonOnly),
		User:        fmt.Sprintf("Create %d flashcards from the following content:\n\n%s", count, truncateRunes(text, MaxPromptChars)),
		MaxTokens:   flashcardsMaxTokens,
		Temperature: defaultTemperature,
	}
}

func buildQuizPrompt(text string, questionCount int, difficulty models.Difficulty) Prompt {
	return Prompt{
		System: fmt.Sprintf("You are a helpful assistant that creates quizzes for studying. "+
			"Create a %s level quiz with %d multiple choice questions. Return your response as a JSON object "+
			"with 'title', 'difficulty', 'questions' (array of objects with 'id', 'question', 'options' array "+
			"of exactly %d strings, 'correctAnswer' index, and 'explanation'), and 'totalPoints'. %s",
			difficulty, questionCount, models.QuizOptionCount, jsonOnly),
		User: fmt.Sprintf("Create a %s quiz with %d questions from the following content:\n\n%s",
			difficulty, questionCount, truncateRunes(text, MaxPromptChars)),
		MaxTokens:   quizMaxTokens,
		Temperature: defaultTemperature,
	}
}
