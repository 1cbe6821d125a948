package faq

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/faq-orchestrator/internal/httpx"
)

type Handler struct {
	svc Service
	log EventLogger
}

func NewHandler(svc Service, log EventLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// HandleQuery returns ranked FAQ suggestions for a free-text query.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("/query POST")

	var payload struct {
		Query *string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "query" {
			h.log.Error("Query: Wrong parameter type: " + typeErr.Value)
			httpx.WriteError(w, httpx.InvalidInput("Wrong 'query' parameter type"))
			return
		}
		h.log.Error("Query: invalid json")
		httpx.WriteError(w, httpx.InvalidInput("invalid json: %v", err))
		return
	}

	if payload.Query == nil {
		h.log.Error("Query: missing query parameter")
		httpx.WriteError(w, httpx.InvalidInput("Missing 'query' parameter"))
		return
	}
	h.log.Info("Query: parameter: " + *payload.Query)

	suggestions, err := h.svc.Resolve(r.Context(), *payload.Query)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	h.log.Debug("/query return")
	httpx.WriteJSON(w, http.StatusOK, suggestions)
}
