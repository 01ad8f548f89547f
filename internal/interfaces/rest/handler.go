// Package rest is the HTTP boundary: it decodes the JSON body into the
// loosely-typed mapping the dispatcher consumes and serializes the
// (response, code) pair it produces.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/scorepoint/scoring-gateway/internal/application"
)

type Handler struct {
	dispatcher *application.Dispatcher
	logger     *slog.Logger
}

func NewHandler(dispatcher *application.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /method", h.HandleMethod)
	mux.HandleFunc("/", h.handleNotFound)
}

func (h *Handler) HandleMethod(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
	}
	rc := application.RequestContext{"request_id": requestID}

	// UseNumber keeps integers intact; the schema engine coerces them.
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		h.logger.Info("malformed request body",
			"request_id", requestID,
			"error", err,
		)
		WriteResponse(w, nil, http.StatusBadRequest)
		return
	}

	resp, code := h.dispatcher.Dispatch(r.Context(), body, rc)

	h.logger.Info("request handled",
		"request_id", requestID,
		"code", code,
		"context", rc,
	)
	WriteResponse(w, resp, code)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, nil, http.StatusNotFound)
}
