package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"studykit-backend/internal/logger"
	"studykit-backend/internal/models"
)

type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error)
}

type TitleFetcher interface {
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

type DocumentParser interface {
	ExtractPDF(ctx context.Context, data []byte) (string, error)
	ExtractDOCX(ctx context.Context, data []byte) (string, error)
}

const docNotice = "Could not extract text from .doc file. Please convert to .docx or .pdf format."

const videoNoticeFormat = "Video file uploaded: %s. Automatic video transcription is not yet implemented. " +
	"Please provide a YouTube URL or upload a document instead."

var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// SupportedFormat describes an accepted upload extension.
type SupportedFormat struct {
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
	Description string `json:"description"`
}

var SupportedFormats = []SupportedFormat{
	{".pdf", "application/pdf", "PDF Document"},
	{".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "Word Document"},
	{".doc", "application/msword", "Legacy Word Document (best effort)"},
	{".txt", "text/plain", "Plain Text"},
	{".mp4", "video/mp4", "MP4 Video (notice only)"},
	{".avi", "video/x-msvideo", "AVI Video (notice only)"},
	{".mov", "video/quicktime", "QuickTime Video (notice only)"},
	{".mkv", "video/x-matroska", "Matroska Video (notice only)"},
	{".webm", "video/webm", "WebM Video (notice only)"},
}

// Extractor turns a content source into normalized plain text.
type Extractor struct {
	transcripts TranscriptFetcher
	titles      TitleFetcher
	documents   DocumentParser
	log         *logger.Logger
}

// NewExtractor wires the collaborators. titles may be nil to skip video title
// lookups.
func NewExtractor(transcripts TranscriptFetcher, titles TitleFetcher, documents DocumentParser, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{
		transcripts: transcripts,
		titles:      titles,
		documents:   documents,
		log:         log,
	}
}

func (e *Extractor) Extract(ctx context.Context, src models.ContentSource) (models.NormalizedContent, error) {
	switch src.Kind {
	case models.SourceYouTube:
		return e.extractYouTube(ctx, src.URL)
	case models.SourceUpload:
		return e.extractUpload(ctx, src.Filename, src.Data)
	case models.SourceRaw:
		return extractRaw(src.Text)
	default:
		return models.NormalizedContent{}, extractionErr(KindUnsupportedType,
			fmt.Sprintf("unknown source kind %q", src.Kind), nil)
	}
}

// ExtractUploadFile extracts a staged upload and removes the file on every
// return path.
func (e *Extractor) ExtractUploadFile(ctx context.Context, path, filename string) (models.NormalizedContent, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			e.log.Warn("failed to remove staged upload", "path", path, "error", err)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return models.NormalizedContent{}, extractionErr(KindFetchFailed, "failed to read uploaded file", err)
	}
	return e.Extract(ctx, models.ContentSource{Kind: models.SourceUpload, Filename: filename, Data: data})
}

func (e *Extractor) extractYouTube(ctx context.Context, rawURL string) (models.NormalizedContent, error) {
	videoID, err := ParseVideoID(rawURL)
	if err != nil {
		return models.NormalizedContent{}, err
	}

	segments, err := e.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		e.log.Warn("transcript fetch failed", "video_id", videoID, "error", err)
		return models.NormalizedContent{}, classifyTranscriptErr(err)
	}

	text := cleanTranscript(segments)
	if text == "" {
		return models.NormalizedContent{}, ErrNoTranscript
	}

	content := normalized(text, models.SourceYouTube)
	content.SourceID = videoID
	content.Title = e.videoTitle(ctx, videoID)
	return content, nil
}

func (e *Extractor) videoTitle(ctx context.Context, videoID string) string {
	if e.titles == nil {
		return ""
	}
	title, err := e.titles.VideoTitle(ctx, videoID)
	if err != nil {
		e.log.Debug("video title lookup failed", "video_id", videoID, "error", err)
		return ""
	}
	return strings.TrimSpace(title)
}

// classifyTranscriptErr maps a collaborator failure onto an extraction kind by
// its message, since transcript libraries do not expose typed errors.
func classifyTranscriptErr(err error) *ExtractionError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return extractionErr(KindTranscriptDisabled, ErrTranscriptDisabled.Message, err)
	case strings.Contains(msg, "no transcript"):
		return extractionErr(KindNoTranscript, ErrNoTranscript.Message, err)
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "private"):
		return extractionErr(KindVideoUnavailable, ErrVideoUnavailable.Message, err)
	default:
		return extractionErr(KindFetchFailed, "failed to fetch transcript", err)
	}
}

var (
	bracketedPattern  = regexp.MustCompile(`\[[^\]]*\]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// cleanTranscript joins caption fragments, drops bracketed annotations such
// as [Music] and collapses whitespace.
func cleanTranscript(segments []TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	text := strings.Join(parts, " ")
	text = bracketedPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (e *Extractor) extractUpload(ctx context.Context, filename string, data []byte) (models.NormalizedContent, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	switch {
	case ext == ".pdf":
		out, err := e.documents.ExtractPDF(ctx, data)
		if err != nil {
			return models.NormalizedContent{}, extractionErr(KindFetchFailed, "failed to extract text from PDF", err)
		}
		text = out
	case ext == ".docx":
		out, err := e.documents.ExtractDOCX(ctx, data)
		if err != nil {
			return models.NormalizedContent{}, extractionErr(KindFetchFailed, "failed to extract text from DOCX", err)
		}
		text = out
	case ext == ".doc":
		out, err := e.documents.ExtractDOCX(ctx, data)
		if err != nil {
			e.log.Info("legacy .doc could not be parsed", "filename", filename, "error", err)
			out = docNotice
		}
		text = out
	case ext == ".txt":
		text = normalizeExtractedText(strings.ToValidUTF8(string(data), "\uFFFD"))
	case videoExtensions[ext]:
		text = fmt.Sprintf(videoNoticeFormat, filename)
	default:
		return models.NormalizedContent{}, extractionErr(KindUnsupportedType,
			fmt.Sprintf("unsupported file type: %s", ext), nil)
	}

	if strings.TrimSpace(text) == "" {
		return models.NormalizedContent{}, extractionErr(KindEmptyContent, "no text could be extracted from the file", nil)
	}

	content := normalized(text, models.SourceUpload)
	content.Title = filename
	return content, nil
}

func extractRaw(text string) (models.NormalizedContent, error) {
	if strings.TrimSpace(text) == "" {
		return models.NormalizedContent{}, ErrEmptyContent
	}
	return normalized(text, models.SourceRaw), nil
}

func normalized(text string, kind models.SourceKind) models.NormalizedContent {
	return models.NormalizedContent{
		Text:       text,
		SourceKind: kind,
		CharCount:  utf8.RuneCountInString(text),
	}
}
