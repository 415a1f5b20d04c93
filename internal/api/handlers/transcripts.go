package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minutia-ai/minutia/internal/store"
)

type TranscriptHandler struct {
	transcripts *store.Transcripts
}

func NewTranscriptHandler(transcripts *store.Transcripts) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

func (h *TranscriptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	transcripts, err := h.transcripts.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"transcripts": transcripts, "count": len(transcripts)})
}

func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transcript ID")
		return
	}

	t, err := h.transcripts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "transcript not found")
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (h *TranscriptHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transcript ID")
		return
	}

	t, err := h.transcripts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "transcript not found")
		return
	}

	resp := map[string]string{"id": t.ID.String(), "status": t.Status}
	if t.Error != "" {
		resp["error"] = t.Error
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TranscriptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transcript ID")
		return
	}

	if err := h.transcripts.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
