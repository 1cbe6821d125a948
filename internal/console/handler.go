package console

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/faq-orchestrator/internal/tuning"
)

// Renderer writes an HTML fragment, typically a table.
type Renderer interface {
	Render(w io.Writer) error
}

type Tunables interface {
	MaxSuggestions() int
	StripLabels() bool
	Set(maxSuggestions int, stripLabels bool) int
}

type EventLogger interface {
	Info(msg string, indent ...int)
	Debug(msg string, indent ...int)
	Error(msg string, indent ...int)
}

type Handler struct {
	events     Renderer
	selections Renderer
	tunables   Tunables
	log        EventLogger
	terminate  func()
}

// NewHandler builds the console. terminate may be nil to disable /kill.
func NewHandler(events, selections Renderer, tunables Tunables, log EventLogger, terminate func()) *Handler {
	return &Handler{
		events:     events,
		selections: selections,
		tunables:   tunables,
		log:        log,
		terminate:  terminate,
	}
}

func (h *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("/log GET")
	h.renderPage(w, http.StatusOK, h.events.Render)
}

func (h *Handler) HandleSelectionLog(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("/selection_log GET")
	h.renderPage(w, http.StatusOK, h.selections.Render)
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("/config GET")
	h.renderConfig(w, http.StatusOK, "")
}

// HandleConfigSubmit applies the form. Out-of-range counts are clamped to
// [2,8]; a missing or non-numeric count leaves both settings unchanged.
func (h *Handler) HandleConfigSubmit(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("/config POST")

	if err := r.ParseForm(); err != nil {
		h.log.Error("Config: bad form: " + err.Error())
		h.renderConfig(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	raw := strings.TrimSpace(r.PostForm.Get("selected_number"))
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.log.Error(fmt.Sprintf("Config: invalid selected_number %q", raw))
		h.renderConfig(w, http.StatusBadRequest, fmt.Sprintf("Invalid maximum number of options %q", raw))
		return
	}

	strip := r.PostForm.Has("toggle_switch")
	applied := h.tunables.Set(n, strip)
	if applied != n {
		h.log.Error(fmt.Sprintf("Config: selected_number %d clamped to %d", n, applied))
	}
	h.log.Info("MAX_INTENTS = " + strconv.Itoa(applied))
	h.log.Info("FAQ_STRIPPING = " + strconv.FormatBool(strip))

	h.renderConfig(w, http.StatusOK, "")
}

// HandleKill stops the process after answering.
func (h *Handler) HandleKill(w http.ResponseWriter, r *http.Request) {
	if h.terminate == nil {
		http.NotFound(w, r)
		return
	}
	h.log.Debug("/kill GET")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("terminating"))
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	go h.terminate()
}

func (h *Handler) renderConfig(w http.ResponseWriter, status int, errMsg string) {
	view := configView{
		Error: errMsg,
		Max:   h.tunables.MaxSuggestions(),
		Strip: h.tunables.StripLabels(),
	}
	for i := tuning.MinSuggestions; i <= tuning.MaxSuggestions; i++ {
		view.Options = append(view.Options, i)
	}
	h.renderPage(w, status, func(w io.Writer) error {
		return configTmpl.Execute(w, view)
	})
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, body func(io.Writer) error) {
	var buf bytes.Buffer
	if err := body(&buf); err != nil {
		h.log.Error("console render: " + err.Error())
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pageTmpl.Execute(w, template.HTML(buf.String()))
}
