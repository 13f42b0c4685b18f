package models

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuizOptionCount is the fixed number of answer options per question.
const QuizOptionCount = 4

// PointsPerQuestion is the score weight used for TotalPoints.
const PointsPerQuestion = 10

type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	Title       string         `json:"title"`
	Difficulty  string         `json:"difficulty"`
	Questions   []QuizQuestion `json:"questions"`
	TotalPoints int            `json:"totalPoints"`
}

func (Quiz) Variant() Variant { return VariantQuiz }

type GenerateQuizRequest struct {
	Content       string     `json:"content"`
	QuestionCount *int       `json:"questionCount"`
	Difficulty    Difficulty `json:"difficulty"`
}
