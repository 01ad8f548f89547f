// Package application routes validated method requests to their business
// handlers: envelope validation, authentication, the admin short-circuit,
// argument validation and handler invocation, in that order.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/scorepoint/scoring-gateway/internal/auth"
	"github.com/scorepoint/scoring-gateway/internal/request"
	"github.com/scorepoint/scoring-gateway/internal/scoring"
)

const (
	MethodOnlineScore      = "online_score"
	MethodClientsInterests = "clients_interests"
)

// adminScore is the fixed score returned to authenticated admin callers
// without touching the store.
const adminScore = 42

type Dispatcher struct {
	guard  *auth.Guard
	store  scoring.Store
	logger *slog.Logger
}

func NewDispatcher(guard *auth.Guard, store scoring.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		guard:  guard,
		store:  store,
		logger: logger,
	}
}

// Dispatch validates and routes one request body. The response value and
// status code pair is final: schema and auth failures are resolved here and
// never surface as errors to the transport.
func (d *Dispatcher) Dispatch(ctx context.Context, body map[string]any, rc RequestContext) (any, int) {
	env, errs := request.ParseEnvelope(body)
	if errs != nil {
		return errs, http.StatusUnprocessableEntity
	}

	if !d.guard.Check(env) {
		return nil, http.StatusForbidden
	}

	if d.guard.IsAdmin(env) {
		return map[string]any{"score": adminScore}, http.StatusOK
	}

	switch env.Method {
	case MethodOnlineScore:
		return d.onlineScore(ctx, env, rc)
	case MethodClientsInterests:
		return d.clientsInterests(ctx, env, rc)
	}

	return map[string]string{
		"method": fmt.Sprintf("unknown method %q", env.Method),
	}, http.StatusUnprocessableEntity
}

func (d *Dispatcher) onlineScore(ctx context.Context, env *request.Envelope, rc RequestContext) (any, int) {
	req, errs := request.ParseOnlineScore(env.Arguments)
	if errs != nil {
		return errs, http.StatusUnprocessableEntity
	}

	rc["has"] = req.Populated()

	score, err := scoring.Score(ctx, d.store, req)
	if err != nil {
		d.logger.Error("online_score failed",
			"request_id", rc["request_id"],
			"error", err,
		)
		return nil, http.StatusInternalServerError
	}

	return map[string]any{"score": score}, http.StatusOK
}

func (d *Dispatcher) clientsInterests(ctx context.Context, env *request.Envelope, rc RequestContext) (any, int) {
	req, errs := request.ParseClientsInterests(env.Arguments)
	if errs != nil {
		return errs, http.StatusUnprocessableEntity
	}

	rc["nclients"] = len(req.ClientIDs)

	resp := make(map[string][]string, len(req.ClientIDs))
	for _, cid := range req.ClientIDs {
		interests, err := scoring.Interests(ctx, d.store, cid)
		if err != nil {
			d.logger.Error("clients_interests failed",
				"request_id", rc["request_id"],
				"client_id", cid,
				"error", err,
			)
			return nil, http.StatusInternalServerError
		}
		resp[strconv.FormatInt(cid, 10)] = interests
	}

	return resp, http.StatusOK
}
