package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/minutia-ai/minutia/internal/minutes"
)

type TemplateHandler struct {
	registry *minutes.Registry
}

func NewTemplateHandler(registry *minutes.Registry) *TemplateHandler {
	return &TemplateHandler{registry: registry}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": list, "count": len(list)})
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.registry.Get(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var t minutes.Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.registry.Add(t); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var t minutes.Template
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.Name = chi.URLParam(r, "name")

	if err := h.registry.Update(t); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.registry.Remove(name); err != nil {
		status := http.StatusNotFound
		if strings.Contains(err.Error(), "reserved") {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Export serves the custom templates as downloadable JSON.
func (h *TemplateHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.registry.ExportJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="custom_templates.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import loads custom templates from a previously exported JSON body.
func (h *TemplateHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	imported, err := h.registry.ImportJSON(data)
	if err != nil {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":    err.Error(),
			"imported": imported,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"imported": imported})
}
