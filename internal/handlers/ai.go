package handlers

import (
	"context"
	"net/http"
	"strings"

	"studykit-backend/internal/generator"
	"studykit-backend/internal/logger"
	"studykit-backend/internal/models"
)

type artifactGenerator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (models.Artifact, error)
}

// AIHandler serves the four artifact generators. Generation itself never
// fails, so only request validation produces client errors.
type AIHandler struct {
	generator artifactGenerator
	log       *logger.Logger
}

func NewAIHandler(gen artifactGenerator, log *logger.Logger) *AIHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &AIHandler{generator: gen, log: log}
}

func (h *AIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSummaryRequest
	if !decodeBody(w, r, &req) || !requireContent(w, r, req.Content) {
		return
	}
	h.generate(w, r, models.GenerationRequest{Text: req.Content, Variant: models.VariantSummary}, nil)
}

func (h *AIHandler) Notes(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateNotesRequest
	if !decodeBody(w, r, &req) || !requireContent(w, r, req.Content) {
		return
	}

	if req.Style == "" {
		req.Style = models.StyleBullet
	}
	if !req.Style.Valid() {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid notes style",
			map[string]string{"style": "must be one of bullet, outline, detailed"}, r))
		return
	}

	h.generate(w, r, models.GenerationRequest{
		Text:    req.Content,
		Variant: models.VariantNotes,
		Options: models.VariantOptions{Style: req.Style},
	}, func(models.Artifact) map[string]interface{} {
		return map[string]interface{}{"style": req.Style}
	})
}

func (h *AIHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if !decodeBody(w, r, &req) || !requireContent(w, r, req.Content) {
		return
	}

	count := generator.DefaultFlashcardCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid flashcard count",
			map[string]string{"count": "must not be negative"}, r))
		return
	}

	h.generate(w, r, models.GenerationRequest{
		Text:    req.Content,
		Variant: models.VariantFlashcards,
		Options: models.VariantOptions{Count: count},
	}, func(a models.Artifact) map[string]interface{} {
		cards, _ := a.(models.FlashcardSet)
		return map[string]interface{}{"count": len(cards)}
	})
}

func (h *AIHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuizRequest
	if !decodeBody(w, r, &req) || !requireContent(w, r, req.Content) {
		return
	}

	fields := map[string]string{}
	questionCount := generator.DefaultQuestionCount
	if req.QuestionCount != nil {
		questionCount = *req.QuestionCount
	}
	if questionCount < 0 {
		fields["questionCount"] = "must not be negative"
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	if !req.Difficulty.Valid() {
		fields["difficulty"] = "must be one of easy, medium, hard"
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Invalid quiz options", fields, r))
		return
	}

	h.generate(w, r, models.GenerationRequest{
		Text:    req.Content,
		Variant: models.VariantQuiz,
		Options: models.VariantOptions{QuestionCount: questionCount, Difficulty: req.Difficulty},
	}, func(a models.Artifact) map[string]interface{} {
		quiz, _ := a.(models.Quiz)
		return map[string]interface{}{
			"questionCount": len(quiz.Questions),
			"difficulty":    req.Difficulty,
		}
	})
}

// generate writes {"success", "type", <variant>: artifact} plus any fields
// returned by extra.
func (h *AIHandler) generate(
	w http.ResponseWriter,
	r *http.Request,
	req models.GenerationRequest,
	extra func(models.Artifact) map[string]interface{},
) {
	artifact, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		h.log.Error("generation failed", "variant", req.Variant, "error", err)
		captureError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to generate "+string(req.Variant), r))
		return
	}

	resp := map[string]interface{}{
		"success": true,
		"type":    artifact.Variant(),
	}
	if extra != nil {
		for k, v := range extra(artifact) {
			resp[k] = v
		}
	}
	resp[string(artifact.Variant())] = artifact
	writeJSON(w, http.StatusOK, resp)
}

type aiFeature struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Options     []string `json:"options,omitempty"`
}

var aiFeatures = []aiFeature{
	{ID: "summarize", Name: "Summary", Description: "Generate a concise summary of the content"},
	{
		ID:          "notes",
		Name:        "Notes",
		Description: "Create structured notes from the content",
		Options:     []string{string(models.StyleBullet), string(models.StyleOutline), string(models.StyleDetailed)},
	},
	{ID: "flashcards", Name: "Flashcards", Description: "Generate flashcards for study and memorization"},
	{
		ID:          "quiz",
		Name:        "Quiz",
		Description: "Create a quiz to test understanding",
		Options:     []string{string(models.DifficultyEasy), string(models.DifficultyMedium), string(models.DifficultyHard)},
	},
}

// Features lists the available generators and their options.
func (h *AIHandler) Features(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"features": aiFeatures})
}

func requireContent(w http.ResponseWriter, r *http.Request, content string) bool {
	if strings.TrimSpace(content) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Content is required",
			map[string]string{"content": "required"}, r))
		return false
	}
	return true
}
