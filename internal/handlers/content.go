package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"studykit-backend/internal/logger"
	"studykit-backend/internal/models"
	"studykit-backend/internal/services"
)

type contentExtractor interface {
	Extract(ctx context.Context, src models.ContentSource) (models.NormalizedContent, error)
	ExtractUploadFile(ctx context.Context, path, filename string) (models.NormalizedContent, error)
}

type ContentHandler struct {
	extractor      contentExtractor
	storagePath    string
	maxUploadBytes int64
	log            *logger.Logger
}

func NewContentHandler(extractor contentExtractor, storagePath string, maxUploadMB int, log *logger.Logger) *ContentHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ContentHandler{
		extractor:      extractor,
		storagePath:    storagePath,
		maxUploadBytes: int64(maxUploadMB) << 20,
		log:            log,
	}
}

func (h *ContentHandler) YouTube(w http.ResponseWriter, r *http.Request) {
	var req models.YouTubeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "URL is required",
			map[string]string{"url": "required"}, r))
		return
	}

	content, err := h.extractor.Extract(r.Context(), models.ContentSource{Kind: models.SourceYouTube, URL: req.URL})
	if err != nil {
		writeExtractionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"videoId":   content.SourceID,
		"url":       req.URL,
		"title":     content.Title,
		"content":   content.Text,
		"type":      content.SourceKind,
		"charCount": content.CharCount,
	})
}

func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds upload limit", r))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds upload limit", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	path, err := h.stage(file, header.Filename)
	if err != nil {
		h.log.Error("failed to stage upload", "filename", header.Filename, "error", err)
		captureError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}

	content, err := h.extractor.ExtractUploadFile(r.Context(), path, header.Filename)
	if err != nil {
		writeExtractionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"filename":  header.Filename,
		"content":   content.Text,
		"type":      content.SourceKind,
		"charCount": content.CharCount,
	})
}

// stage copies the upload into a temp file under storagePath. The extractor
// removes it once read.
func (h *ContentHandler) stage(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.storagePath, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	tmp, err := os.CreateTemp(h.storagePath, "upload-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (h *ContentHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req models.RawTextRequest
	if !decodeBody(w, r, &req) {
		return
	}

	content, err := h.extractor.Extract(r.Context(), models.ContentSource{Kind: models.SourceRaw, Text: req.Content})
	if err != nil {
		writeExtractionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"content":   content.Text,
		"type":      content.SourceKind,
		"charCount": content.CharCount,
	})
}

// Status reports processing state. Extraction is synchronous, so any id is
// already complete.
func (h *ContentHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      chi.URLParam(r, "id"),
		"status":  "completed",
		"message": "Content processing completed",
	})
}

func (h *ContentHandler) SupportedFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats": services.SupportedFormats,
	})
}
