package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Vovarama1992/faq-orchestrator/internal/httpx"
)

type selectionRequest struct {
	Query              *string  `json:"query" validate:"required"`
	SelectedName       *string  `json:"selected_name" validate:"required"`
	SelectedConfidence *float64 `json:"selected_confidence" validate:"required"`
	TopName            *string  `json:"top_name"`
	TopConfidence      *float64 `json:"top_confidence"`
	Ranking            *string  `json:"ranking"`
}

type Handler struct {
	svc      Service
	log      EventLogger
	validate *validator.Validate
}

func NewHandler(svc Service, log EventLogger) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{svc: svc, log: log, validate: v}
}

// HandleSelection records which suggestion the user picked.
func (h *Handler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("/selection POST")

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("Selection: invalid json")
		httpx.WriteError(w, httpx.InvalidInput("invalid json: %v", err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			h.log.Error("Selection: missing " + field + " parameter")
			httpx.WriteError(w, httpx.InvalidInput("Missing '%s' parameter", field))
			return
		}
		httpx.WriteError(w, httpx.Internal(err))
		return
	}

	e := Entry{
		Query:              *req.Query,
		SelectedName:       *req.SelectedName,
		SelectedConfidence: *req.SelectedConfidence,
		TopConfidence:      -1,
	}
	if req.TopName != nil {
		e.TopName = *req.TopName
	}
	if req.TopConfidence != nil {
		e.TopConfidence = *req.TopConfidence
	}
	if req.Ranking != nil {
		e.Ranking = *req.Ranking
	}

	h.log.Info("Selection query: " + e.Query)
	h.log.Info("Selection selected: " + e.SelectedName)
	h.log.Info(fmt.Sprintf("Selection confidence: C: %.4f", e.SelectedConfidence))

	// the write outlives a client that hangs up early
	h.svc.Record(context.WithoutCancel(r.Context()), e)

	h.log.Debug("/selection return")
	w.WriteHeader(http.StatusOK)
}
