package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studykit-backend/internal/models"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n[1,2]\n```", "[1,2]"},
		{"bare fence", "```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"no fence", "  {\"a\":1}  ", "{\"a\":1}"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.input))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		open byte
		want ParseStatus
	}{
		{"object", `{"overview":"x"}`, '{', ParseOK},
		{"fenced array", "```json\n[{\"front\":\"a\"}]\n```", '[', ParseOK},
		{"object in prose", `Sure! {"overview":"x"} Hope that helps.`, '{', ParseOK},
		{"array when object expected", `["a"]`, '{', ParseMalformedShape},
		{"object when array expected", `{"a":1}`, '[', ParseMalformedShape},
		{"wrong field type", `{"overview":42}`, '{', ParseMalformedShape},
		{"plain prose", "I cannot do that.", '{', ParseNotJSON},
		{"unbalanced", `{"overview":"x"`, '{', ParseNotJSON},
		{"empty", "", '[', ParseNotJSON},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v any
			if tc.open == '{' {
				v = &models.Summary{}
			} else {
				v = &[]map[string]any{}
			}
			assert.Equal(t, tc.want, decodeJSON(tc.raw, tc.open, v))
		})
	}
}

func TestParseSummary_EmptyObjectIsMalformed(t *testing.T) {
	_, status := parseSummary(`{"keyTopics":["a"]}`)
	assert.Equal(t, ParseMalformedShape, status)
}

func TestDegradedSummary_Empty(t *testing.T) {
	s := degradedSummary("  \n\n ")
	assert.Equal(t, "", s.Overview)
	assert.Empty(t, s.MainPoints)
	assert.NotNil(t, s.KeyTopics)
}

func TestParseNotes_DropsEmptySections(t *testing.T) {
	notes, status := parseNotes(`{"sections":[{"heading":" ","items":[""]},{"heading":"Core","items":["a","b"]}],"points":["x"]}`,
		models.StyleOutline)

	require.Equal(t, ParseOK, status)
	assert.Equal(t, "Study Notes", notes.Title)
	assert.Equal(t, "outline", notes.Style)
	require.Len(t, notes.Sections, 1)
	assert.Equal(t, "Core", notes.Sections[0].Heading)
	assert.Equal(t, []string{"x"}, notes.Points)
}

func TestParseNotes_NothingUsable(t *testing.T) {
	_, status := parseNotes(`{"title":"Only a title"}`, models.StyleBullet)
	assert.Equal(t, ParseMalformedShape, status)
}

func TestParseFlashcards(t *testing.T) {
	t.Run("empty array is malformed", func(t *testing.T) {
		cards, status := parseFlashcards(`[]`, 5)
		assert.Equal(t, ParseMalformedShape, status)
		assert.Nil(t, cards)
	})

	t.Run("no valid cards is malformed", func(t *testing.T) {
		_, status := parseFlashcards(`[{"front":"","back":""},{"question":"q"}]`, 5)
		assert.Equal(t, ParseMalformedShape, status)
	})

	t.Run("zero count yields empty set", func(t *testing.T) {
		cards, status := parseFlashcards(`[{"front":"a","back":"b"}]`, 0)
		assert.Equal(t, ParseOK, status)
		assert.Empty(t, cards)
	})
}

func TestParseQuiz_BlankOptionsRejected(t *testing.T) {
	quiz, status := parseQuiz(`{"questions":[`+
		`{"question":"All blank","options":["","","",""],"correctAnswer":0,"explanation":"none"},`+
		`{"question":"One blank","options":["a"," ","c","d"],"correctAnswer":0},`+
		`{"question":"Padded","options":[" a ","b","c","d "],"correctAnswer":2,"explanation":" Because c. "}]}`,
		5, models.DifficultyEasy)

	require.Equal(t, ParseOK, status)
	require.Len(t, quiz.Questions, 1)
	q := quiz.Questions[0]
	assert.Equal(t, "Padded", q.Question)
	assert.Equal(t, []string{"a", "b", "c", "d"}, q.Options)
	assert.Equal(t, 2, q.CorrectAnswer)
	assert.Equal(t, "Because c.", q.Explanation)
}

func TestParseQuiz_OnlyBlankOptionsIsMalformed(t *testing.T) {
	_, status := parseQuiz(`{"questions":[{"question":"Q","options":["","","",""]}]}`, 3, models.DifficultyEasy)
	assert.Equal(t, ParseMalformedShape, status)
}

func TestParseQuiz_OptionCountEnforced(t *testing.T) {
	quiz, status := parseQuiz(`{"questions":[`+
		`{"question":"Five options","options":["a","b","c","d","e"],"correctAnswer":4},`+
		`{"question":"Four options","options":["a","b","c","d"],"correctAnswer":-1}]}`,
		3, models.DifficultyMedium)

	require.Equal(t, ParseOK, status)
	assert.Equal(t, "Medium Quiz", quiz.Title)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "Four options", quiz.Questions[0].Question)
	assert.Equal(t, 0, quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, 10, quiz.TotalPoints)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"basic", "The sky is blue. Water is wet.", []string{"The sky is blue.", "Water is wet."}},
		{"runs of punctuation", "Really?! Yes... ok", []string{"Really?!", "Yes...", "ok"}},
		{"leading punctuation dropped", "... Start here.", []string{"Start here."}},
		{"no punctuation", "just words", []string{"just words"}},
		{"whitespace only", "   ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitSentences(tc.text))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "short", truncateRunes("short", 10))
	assert.Equal(t, "", truncateRunes("abc", 0))
}

func TestQuizTitle(t *testing.T) {
	assert.Equal(t, "Easy Quiz", quizTitle(models.DifficultyEasy))
	assert.Equal(t, "Quiz", quizTitle(""))
}
