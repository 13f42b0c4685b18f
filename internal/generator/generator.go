// Package generator turns normalized text into study artifacts. Every variant
// tries the model first and falls back to a deterministic algorithm, so
// generation always yields a structurally valid artifact.
package generator

import (
	"context"
	"fmt"

	"studykit-backend/internal/logger"
	"studykit-backend/internal/models"
)

const (
	DefaultFlashcardCount = 10
	DefaultQuestionCount  = 5
)

type Generator struct {
	invoker Invoker
	log     *logger.Logger
}

// New returns a Generator. A nil invoker means no model is configured and
// every request takes the fallback path.
func New(invoker Invoker, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Generator{invoker: invoker, log: log}
}

// ModelConfigured reports whether requests will attempt the model.
func (g *Generator) ModelConfigured() bool {
	return g.invoker != nil
}

// Generate dispatches req to the matching variant. The only error is an
// unknown variant.
func (g *Generator) Generate(ctx context.Context, req models.GenerationRequest) (models.Artifact, error) {
	switch req.Variant {
	case models.VariantSummary:
		return g.Summary(ctx, req.Text), nil
	case models.VariantNotes:
		return g.Notes(ctx, req.Text, req.Options.Style), nil
	case models.VariantFlashcards:
		return g.Flashcards(ctx, req.Text, req.Options.Count), nil
	case models.VariantQuiz:
		return g.Quiz(ctx, req.Text, req.Options.QuestionCount, req.Options.Difficulty), nil
	default:
		return nil, fmt.Errorf("unknown artifact variant %q", req.Variant)
	}
}

func (g *Generator) Summary(ctx context.Context, text string) models.Summary {
	raw, ok := g.invoke(ctx, models.VariantSummary, buildSummaryPrompt(text))
	if !ok {
		return fallbackSummary(text)
	}

	summary, status := parseSummary(raw)
	if status == ParseOK {
		return summary
	}
	// Unparsed summaries keep the raw reply; the fallback is not used here.
	g.log.Warn("summary reply unparsed, using raw text", "status", status.String())
	return degradedSummary(raw)
}

func (g *Generator) Notes(ctx context.Context, text string, style models.NotesStyle) models.Notes {
	if !style.Valid() {
		style = models.StyleBullet
	}

	raw, ok := g.invoke(ctx, models.VariantNotes, buildNotesPrompt(text, style))
	if !ok {
		return fallbackNotes(text, style)
	}

	notes, status := parseNotes(raw, style)
	if status != ParseOK {
		g.parseFailed(models.VariantNotes, status)
		return fallbackNotes(text, style)
	}
	return notes
}

func (g *Generator) Flashcards(ctx context.Context, text string, count int) models.FlashcardSet {
	count = max(count, 0)

	raw, ok := g.invoke(ctx, models.VariantFlashcards, buildFlashcardsPrompt(text, count))
	if !ok {
		return fallbackFlashcards(text, count)
	}

	cards, status := parseFlashcards(raw, count)
	if status != ParseOK {
		g.parseFailed(models.VariantFlashcards, status)
		return fallbackFlashcards(text, count)
	}
	return cards
}

func (g *Generator) Quiz(ctx context.Context, text string, questionCount int, difficulty models.Difficulty) models.Quiz {
	questionCount = max(questionCount, 0)
	if !difficulty.Valid() {
		difficulty = models.DifficultyMedium
	}

	raw, ok := g.invoke(ctx, models.VariantQuiz, buildQuizPrompt(text, questionCount, difficulty))
	if !ok {
		return fallbackQuiz(text, questionCount, difficulty)
	}

	quiz, status := parseQuiz(raw, questionCount, difficulty)
	if status != ParseOK {
		g.parseFailed(models.VariantQuiz, status)
		return fallbackQuiz(text, questionCount, difficulty)
	}
	return quiz
}

// invoke returns the raw model text and true only when the model produced a
// reply. Unconfigured and failed calls both send the caller to its fallback.
func (g *Generator) invoke(ctx context.Context, variant models.Variant, p Prompt) (string, bool) {
	if g.invoker == nil {
		g.log.Debug("model not configured, using fallback", "variant", variant)
		return "", false
	}

	outcome := g.invoker.Invoke(ctx, p)
	switch outcome.Status {
	case OutcomeSuccess:
		return outcome.Text, true
	case OutcomeUnavailable:
		g.log.Info("model unavailable, using fallback", "variant", variant)
	default:
		g.log.Warn("model invocation failed, using fallback",
			"variant", variant,
			"reason", outcome.Reason,
			"error", outcome.Err,
		)
	}
	return "", false
}

func (g *Generator) parseFailed(variant models.Variant, status ParseStatus) {
	g.log.Warn("model reply unparsed, using fallback", "variant", variant, "status", status.String())
}
