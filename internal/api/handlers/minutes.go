package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minutia-ai/minutia/internal/config"
	"github.com/minutia-ai/minutia/internal/llm"
	"github.com/minutia-ai/minutia/internal/minutes"
	"github.com/minutia-ai/minutia/internal/models"
	"github.com/minutia-ai/minutia/internal/queue"
	"github.com/minutia-ai/minutia/internal/store"
)

type MinutesHandler struct {
	transcripts *store.Transcripts
	minutes     *store.MinutesStore
	templates   *minutes.Registry
	gateway     llm.Gateway
	queue       *queue.Client
	defaults    config.LLMConfig
}

func NewMinutesHandler(transcripts *store.Transcripts, minutesStore *store.MinutesStore, templates *minutes.Registry, gw llm.Gateway, q *queue.Client, defaults config.LLMConfig) *MinutesHandler {
	return &MinutesHandler{
		transcripts: transcripts,
		minutes:     minutesStore,
		templates:   templates,
		gateway:     gw,
		queue:       q,
		defaults:    defaults,
	}
}

type generateMinutesRequest struct {
	TemplateName string `json:"template_name,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Model        string `json:"model,omitempty"`
}

// Generate creates a minutes record for a completed transcript and queues
// the generation job.
func (h *MinutesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	transcriptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transcript ID")
		return
	}

	var req generateMinutesRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.TemplateName == "" {
		req.TemplateName = minutes.DefaultTemplateName
	}
	tmpl, ok := h.templates.Get(req.TemplateName)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown template "+req.TemplateName)
		return
	}
	if req.Provider == "" {
		req.Provider = h.defaults.DefaultProvider
	}
	if req.Model == "" {
		req.Model = h.defaults.DefaultModel
	}

	t, err := h.transcripts.GetByID(r.Context(), transcriptID)
	if err != nil {
		writeError(w, http.StatusNotFound, "transcript not found")
		return
	}
	if t.Status != models.TranscriptStatusCompleted {
		writeError(w, http.StatusConflict, "transcript is not completed")
		return
	}

	m, err := h.minutes.Create(r.Context(), transcriptID, req.TemplateName, req.Provider, req.Model)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The template body rides along: the worker's registry only has the
	// seeded defaults, not templates created through this API.
	err = h.queue.EnqueueMinutesGenerate(queue.MinutesGeneratePayload{
		MinutesID:    m.ID.String(),
		TranscriptID: transcriptID.String(),
		TemplateName: req.TemplateName,
		TemplateBody: tmpl.Body,
		Provider:     req.Provider,
		Model:        req.Model,
	})
	if err != nil {
		_ = h.minutes.Fail(r.Context(), m.ID, "enqueue failed: "+err.Error())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, m)
}

func (h *MinutesHandler) ListByTranscript(w http.ResponseWriter, r *http.Request) {
	transcriptID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transcript ID")
		return
	}

	list, err := h.minutes.ListByTranscript(r.Context(), transcriptID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"minutes": list, "count": len(list)})
}

func (h *MinutesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid minutes ID")
		return
	}

	m, err := h.minutes.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "minutes not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MinutesHandler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"models": h.gateway.ListModels()})
}
