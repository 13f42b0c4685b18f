package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"studykit-backend/internal/models"
)

// ParseStatus classifies a model reply.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	// ParseMalformedShape: valid JSON, but not the shape the variant needs.
	ParseMalformedShape
	ParseNotJSON
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseMalformedShape:
		return "malformed_shape"
	case ParseNotJSON:
		return "not_json"
	}
	return fmt.Sprintf("ParseStatus(%d)", int(s))
}

// stripFences removes markdown code fences from model output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeJSON unmarshals the JSON value in raw into v. open is '{' or '[' and
// names the top-level kind the caller expects. When raw is not JSON as a whole,
// the outermost open..close span is tried before giving up.
func decodeJSON(raw string, open byte, v any) ParseStatus {
	closeCh := byte('}')
	if open == '[' {
		closeCh = ']'
	}

	data := []byte(stripFences(raw))
	if !json.Valid(data) {
		start := bytes.IndexByte(data, open)
		end := bytes.LastIndexByte(data, closeCh)
		if start < 0 || end <= start || !json.Valid(data[start:end+1]) {
			return ParseNotJSON
		}
		data = data[start : end+1]
	}

	if data[0] != open {
		return ParseMalformedShape
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ParseMalformedShape
	}
	return ParseOK
}

func cleanStrings(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseSummary(raw string) (models.Summary, ParseStatus) {
	var s models.Summary
	if status := decodeJSON(raw, '{', &s); status != ParseOK {
		return models.Summary{}, status
	}

	s.Overview = strings.TrimSpace(s.Overview)
	s.MainPoints = cleanStrings(s.MainPoints)
	s.KeyTopics = cleanStrings(s.KeyTopics)
	if s.Overview == "" && len(s.MainPoints) == 0 {
		return models.Summary{}, ParseMalformedShape
	}
	return s, ParseOK
}

// degradedSummary reuses unstructured model text: the first non-empty line is
// the overview and the first five non-empty lines are the main points.
func degradedSummary(raw string) models.Summary {
	lines := cleanStrings(strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n"))

	s := models.Summary{
		MainPoints: lines[:min(5, len(lines))],
		KeyTopics:  []string{},
	}
	if len(lines) > 0 {
		s.Overview = lines[0]
	}
	return s
}

func parseNotes(raw string, style models.NotesStyle) (models.Notes, ParseStatus) {
	var n models.Notes
	if status := decodeJSON(raw, '{', &n); status != ParseOK {
		return models.Notes{}, status
	}

	sections := []models.NotesSection{}
	for _, sec := range n.Sections {
		sec.Heading = strings.TrimSpace(sec.Heading)
		sec.Items = cleanStrings(sec.Items)
		if sec.Heading == "" && len(sec.Items) == 0 {
			continue
		}
		sections = append(sections, sec)
	}
	n.Sections = sections
	n.Points = cleanStrings(n.Points)

	if len(n.Sections) == 0 && len(n.Points) == 0 {
		return models.Notes{}, ParseMalformedShape
	}
	if len(n.Points) == 0 {
		for _, sec := range n.Sections {
			n.Points = append(n.Points, sec.Items...)
		}
	}
	if strings.TrimSpace(n.Title) == "" {
		n.Title = notesTitle
	}
	if strings.TrimSpace(n.Style) == "" {
		n.Style = string(style)
	}
	return n, ParseOK
}

// parseFlashcards accepts only a JSON array. Card ids are renumbered by
// position and the set is capped at count. An array with no usable card is
// malformed unless count is zero.
func parseFlashcards(raw string, count int) (models.FlashcardSet, ParseStatus) {
	type cardJSON struct {
		Front    string `json:"front"`
		Back     string `json:"back"`
		Category string `json:"category"`
	}

	var cards []cardJSON
	if status := decodeJSON(raw, '[', &cards); status != ParseOK {
		return nil, status
	}

	out := models.FlashcardSet{}
	for _, c := range cards {
		if len(out) >= count {
			break
		}
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		if c.Front == "" || c.Back == "" {
			continue
		}
		if strings.TrimSpace(c.Category) == "" {
			c.Category = flashcardCategory
		}
		out = append(out, models.Flashcard{
			ID:       len(out) + 1,
			Front:    c.Front,
			Back:     c.Back,
			Category: c.Category,
		})
	}

	if len(out) == 0 && count > 0 {
		return nil, ParseMalformedShape
	}
	return out, ParseOK
}

func parseQuiz(raw string, questionCount int, difficulty models.Difficulty) (models.Quiz, ParseStatus) {
	var q struct {
		Title      string `json:"title"`
		Difficulty string `json:"difficulty"`
		Questions  []struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer int      `json:"correctAnswer"`
			Explanation   string   `json:"explanation"`
		} `json:"questions"`
	}
	if status := decodeJSON(raw, '{', &q); status != ParseOK {
		return models.Quiz{}, status
	}

	questions := []models.QuizQuestion{}
	for _, qq := range q.Questions {
		if len(questions) >= questionCount {
			break
		}
		qq.Question = strings.TrimSpace(qq.Question)
		options := cleanStrings(qq.Options)
		if qq.Question == "" || len(qq.Options) != models.QuizOptionCount || len(options) != models.QuizOptionCount {
			continue
		}
		correct := qq.CorrectAnswer
		if correct < 0 || correct >= models.QuizOptionCount {
			correct = 0
		}
		questions = append(questions, models.QuizQuestion{
			ID:            len(questions) + 1,
			Question:      qq.Question,
			Options:       options,
			CorrectAnswer: correct,
			Explanation:   strings.TrimSpace(qq.Explanation),
		})
	}

	if len(questions) == 0 && questionCount > 0 {
		return models.Quiz{}, ParseMalformedShape
	}

	quiz := models.Quiz{
		Title:       strings.TrimSpace(q.Title),
		Difficulty:  strings.TrimSpace(q.Difficulty),
		Questions:   questions,
		TotalPoints: models.PointsPerQuestion * len(questions),
	}
	if quiz.Title == "" {
		quiz.Title = quizTitle(difficulty)
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = string(difficulty)
	}
	return quiz, ParseOK
}
