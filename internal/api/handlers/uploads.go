package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/minutia-ai/minutia/internal/config"
	"github.com/minutia-ai/minutia/internal/extract"
	"github.com/minutia-ai/minutia/internal/models"
	"github.com/minutia-ai/minutia/internal/queue"
	"github.com/minutia-ai/minutia/internal/store"
	"github.com/minutia-ai/minutia/internal/vtt"
)

var audioVideoExts = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".ogg": true, ".flac": true,
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
}

// UploadHandler turns an uploaded file into a transcript record: recordings
// are parked on disk and queued for the worker; subtitle and document
// formats are extracted inline and stored completed.
type UploadHandler struct {
	transcripts *store.Transcripts
	queue       *queue.Client
	cfg         config.UploadConfig
	transcribe  config.TranscribeConfig
	sttModel    string
}

func NewUploadHandler(transcripts *store.Transcripts, q *queue.Client, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		transcripts: transcripts,
		queue:       q,
		cfg:         cfg.Upload,
		transcribe:  cfg.Transcribe,
		sttModel:    cfg.STT.Model,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.cfg.MaxBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d MB limit", h.cfg.MaxBytes>>20))
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d MB limit", h.cfg.MaxBytes>>20))
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	language := r.FormValue("language")
	if language == "" {
		language = h.transcribe.Language
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch {
	case audioVideoExts[ext]:
		h.uploadRecording(w, r, file, title, language, ext)
	case supportedDocExt(ext):
		h.uploadDocument(w, r, file, header.Filename, title, language)
	default:
		writeError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file type %q", ext))
	}
}

// uploadRecording stores the raw file and queues the transcription job.
func (h *UploadHandler) uploadRecording(w http.ResponseWriter, r *http.Request, file io.Reader, title, language, ext string) {
	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "prepare upload dir: "+err.Error())
		return
	}

	path := filepath.Join(h.cfg.Dir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store upload: "+err.Error())
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, "store upload: "+err.Error())
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, "store upload: "+err.Error())
		return
	}

	t, err := h.transcripts.Create(r.Context(), store.CreateTranscript{
		Title:      title,
		SourceType: "audio",
		Language:   language,
		Status:     models.TranscriptStatusPending,
	})
	if err != nil {
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	err = h.queue.EnqueueTranscriptProcess(queue.TranscriptProcessPayload{
		TranscriptID:  t.ID.String(),
		FilePath:      path,
		Language:      language,
		WindowSeconds: h.transcribe.WindowSeconds,
		Model:         h.sttModel,
	})
	if err != nil {
		os.Remove(path)
		_ = h.transcripts.Fail(r.Context(), t.ID, "enqueue failed: "+err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, t)
}

// uploadDocument extracts text inline; no job is queued.
func (h *UploadHandler) uploadDocument(w http.ResponseWriter, r *http.Request, file io.Reader, filename, title, language string) {
	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read upload: "+err.Error())
		return
	}
	if int64(len(data)) > h.cfg.MaxBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d MB limit", h.cfg.MaxBytes>>20))
		return
	}

	res, err := extract.FromFile(bytes.NewReader(data), int64(len(data)), filename)
	if err != nil {
		if errors.Is(err, vtt.ErrNoHeader) {
			writeError(w, http.StatusUnprocessableEntity, "not a recognizable cue sheet: no WEBVTT header")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if res.UsedFallback {
		slog.Warn("structured cue parse failed, used line classifier", "file", filename)
	}

	t, err := h.transcripts.Create(r.Context(), store.CreateTranscript{
		Title:      title,
		SourceType: res.Kind,
		Language:   language,
		Text:       res.Content,
		Status:     models.TranscriptStatusCompleted,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{"transcript": t}
	if res.UsedFallback {
		resp["warning"] = "structured cue parse failed; fell back to line classification"
	}
	writeJSON(w, http.StatusCreated, resp)
}

func supportedDocExt(ext string) bool {
	for _, s := range extract.SupportedTypes() {
		if s == ext {
			return true
		}
	}
	return false
}
