package core

import (
	"net/http"
)

// healthResponse is the JSON response body for the health check endpoint.
// The service holds no external dependencies, so there are no component
// probes: a process that can answer is a healthy process.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// HandleHealth reports process liveness. This endpoint is public and is
// mounted at GET /health, outside the /v1 namespace.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: s.Config.Service,
		Version: s.Config.Build.Version,
	})
}

// indexResponse describes the service and its available endpoints for anyone
// probing the API root.
type indexResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HandleIndex serves a small service descriptor at GET /.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, indexResponse{
		Service: s.Config.Service,
		Version: s.Config.Build.Version,
		Endpoints: map[string]string{
			"health":               "GET /health",
			"metrics":              "GET /metrics",
			"optimize_temperature": "POST /v1/optimize/temperature",
			"optimize_waste":       "POST /v1/optimize/waste",
			"optimize_cost":        "POST /v1/optimize/cost",
		},
	})
}
