// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/setrini/inmobiliaria/internal/core/locality"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
	"github.com/setrini/inmobiliaria/internal/platform/respond"
)

// readinessTimeout bounds each dependency probe.
const readinessTimeout = 2 * time.Second

// Check is one named dependency probe for /ready.
type Check struct {
	Name string
	Run  func(context context.Context) error
}

// HealthDependencies holds the probes behind /ready.
type HealthDependencies struct {
	// Checks gate readiness: any failure yields 503.
	Checks []Check

	// LocalityState is reported but never gates readiness, since searches
	// degrade to empty results while the dataset is unavailable.
	LocalityState func() locality.State
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name      string `json:"name"`
	IsOK      bool   `json:"ok"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready. Probes run in parallel.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, len(handler.dependencies.Checks))

	var group conc.WaitGroup
	for i, check := range handler.dependencies.Checks {
		group.Go(func() {
			results[i] = handler.probe(request.Context(), check)
		})
	}
	group.Wait()

	isSystemReady := true
	for _, result := range results {
		isSystemReady = isSystemReady && result.IsOK
	}

	payload := map[string]any{constants.FieldChecks: results}
	if handler.dependencies.LocalityState != nil {
		payload["locality"] = handler.dependencies.LocalityState()
	}

	if !isSystemReady {
		payload[constants.FieldStatus] = "degraded"
		respond.JSON(writer, http.StatusServiceUnavailable, respond.SuccessEnvelope{Data: payload})
		return
	}

	payload[constants.FieldStatus] = "ready"
	respond.OK(writer, payload)
}

func (handler *healthHandler) probe(parent context.Context, check Check) checkResult {
	ctx, cancel := context.WithTimeout(parent, readinessTimeout)
	defer cancel()

	started := time.Now()
	err := check.Run(ctx)
	result := checkResult{Name: check.Name, IsOK: err == nil, LatencyMs: time.Since(started).Milliseconds()}

	if err != nil {
		result.Error = err.Error()
		handler.logger.ErrorContext(parent, "readiness_check_failed",
			slog.String("dependency", check.Name),
			slog.Any("error", err),
		)
	}
	return result
}
