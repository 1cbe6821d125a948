package console

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.HandleLog)
	r.Get("/log", h.HandleLog)
	r.Get("/selection_log", h.HandleSelectionLog)
	r.Get("/config", h.HandleConfig)
	r.Post("/config", h.HandleConfigSubmit)
	r.Get("/kill", h.HandleKill)
}
