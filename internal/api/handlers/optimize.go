// Package handlers contains the HTTP handler implementations for the
// FeedGuard optimizer API.
//
// This file implements the optimize handler covering:
//   - Temperature treatment optimization (POST /v1/optimize/temperature)
//   - Waste reduction optimization (POST /v1/optimize/waste)
//   - Cost reduction optimization (POST /v1/optimize/cost)
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedguard/internal/core"
	"feedguard/internal/types"
)

// TemperatureService is the handler-side contract for the temperature
// optimizer. Defined locally to avoid tight coupling per the handler
// injection pattern. The optimizers are pure functions of their request, so
// no context parameter is carried.
type TemperatureService interface {
	Optimize(req types.TemperatureRequest) (*types.TemperatureResult, error)
}

// WasteService is the handler-side contract for the waste optimizer.
type WasteService interface {
	Optimize(req types.WasteRequest) (*types.WasteResult, error)
}

// CostService is the handler-side contract for the cost optimizer.
type CostService interface {
	Optimize(req types.CostRequest) (*types.CostResult, error)
}

// OptimizeHandler maps HTTP requests onto the three optimizer services.
type OptimizeHandler struct {
	temperature TemperatureService
	waste       WasteService
	cost        CostService
	validator   *core.Validator
	logger      *slog.Logger
}

// NewOptimizeHandler creates an OptimizeHandler with the provided dependencies.
func NewOptimizeHandler(
	temperature TemperatureService,
	waste WasteService,
	cost CostService,
	val *core.Validator,
	logger *slog.Logger,
) *OptimizeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OptimizeHandler{
		temperature: temperature,
		waste:       waste,
		cost:        cost,
		validator:   val,
		logger:      logger,
	}
}

// RegisterRoutes mounts the optimizer endpoints onto the mux. The registrar
// is mounted under /v1/optimize by the application entry point.
func (h *OptimizeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/optimize", func(r chi.Router) {
		r.Post("/temperature", h.HandleTemperature)
		r.Post("/waste", h.HandleWaste)
		r.Post("/cost", h.HandleCost)
	})
}

// HandleTemperature handles POST /v1/optimize/temperature.
//  1. Decode and strictly validate the JSON body.
//  2. Validate the request struct against the domain rules.
//  3. Run the temperature optimizer and return the plan.
func (h *OptimizeHandler) HandleTemperature(w http.ResponseWriter, r *http.Request) {
	var req types.TemperatureRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.temperature.Optimize(req)
	if err != nil {
		h.logger.Error("temperature optimization failed",
			slog.String("request_id", types.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}

// HandleWaste handles POST /v1/optimize/waste.
func (h *OptimizeHandler) HandleWaste(w http.ResponseWriter, r *http.Request) {
	var req types.WasteRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.waste.Optimize(req)
	if err != nil {
		h.logger.Error("waste optimization failed",
			slog.String("request_id", types.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}

// HandleCost handles POST /v1/optimize/cost.
func (h *OptimizeHandler) HandleCost(w http.ResponseWriter, r *http.Request) {
	var req types.CostRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	result, err := h.cost.Optimize(req)
	if err != nil {
		h.logger.Error("cost optimization failed",
			slog.String("request_id", types.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: result})
}
