package agent

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type auditRequest struct {
	URL        string   `json:"url"`
	FocusAreas []string `json:"focus_areas"`
}

type urlRequest struct {
	URL string `json:"url"`
}

// Handlers exposes the agent workflows as HTTP endpoints.
type Handlers struct {
	agent *Agent
}

// NewHandlers wraps an Agent for HTTP serving.
func NewHandlers(a *Agent) *Handlers {
	return &Handlers{agent: a}
}

// Audit handles POST /agent/audit.
func (h *Handlers) Audit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.agent.RunAudit(r.Context(), req.URL, req.FocusAreas)
	if err != nil {
		writeAgentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"final_report": report})
}

// Backlinks handles POST /agent/backlinks. The request carries the domain in
// the url field, bare domains and full URLs are both accepted.
func (h *Handlers) Backlinks(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.agent.AnalyzeBacklinks(r.Context(), req.URL)
	if err != nil {
		writeAgentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"analysis_report": report})
}

// LinkCategorization handles POST /agent/link-categorization.
func (h *Handlers) LinkCategorization(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	report, err := h.agent.CategorizeLinks(r.Context(), req.URL)
	if err != nil {
		writeAgentError(w, err)
		return
	}
	writeJSON(w, map[string]any{"categorized_report": report})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAgentError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("agent workflow failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
