package server

import (
	"encoding/json"
	"net/http"

	"github.com/sergeyitaly/tfdiagram/pkg/depgraph"
	"github.com/sergeyitaly/tfdiagram/pkg/diagram"
	apperrors "github.com/sergeyitaly/tfdiagram/pkg/errors"
	"github.com/sergeyitaly/tfdiagram/pkg/export"
	"github.com/sergeyitaly/tfdiagram/pkg/pipeline"
	"github.com/sergeyitaly/tfdiagram/pkg/resource"
)

// diagramRequest is the body of POST /api/v1/diagram and /api/v1/graph.
type diagramRequest struct {
	Resources    []resource.Record   `json:"resources"`
	Dependencies map[string][]string `json:"dependencies,omitempty"`
	Options      diagram.Options     `json:"options"`
	Refresh      bool                `json:"refresh,omitempty"`
}

// diagramResponse is the body of a successful POST /api/v1/diagram.
type diagramResponse struct {
	Diagram       diagram.Diagram     `json:"diagram"`
	ResourcesHash string              `json:"resources_hash"`
	Stats         pipeline.Stats      `json:"stats"`
	Cache         pipeline.CacheInfo  `json:"cache"`
	Deps          map[string][]string `json:"dependencies"`
}

// graphResponse is the body of a successful POST /api/v1/graph.
type graphResponse struct {
	Deps map[string][]string `json:"dependencies"`
	DOT  string              `json:"dot"`
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Generate(r.Context(), req.Resources, pipeline.Options{
		Diagram:      req.Options,
		Dependencies: req.Dependencies,
		Refresh:      req.Refresh,
		Logger:       s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, diagramResponse{
		Diagram:       result.Diagram,
		ResourcesHash: result.ResourcesHash,
		Stats:         result.Stats,
		Cache:         result.CacheInfo,
		Deps:          result.Deps,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	deps := depgraph.Extract(req.Resources, depgraph.Options{
		MaxPerResource:       req.Options.MaxConnectionsPerResource,
		HideImplicit:         req.Options.HideImplicitDependencies,
		HideCrossEnvironment: req.Options.HideCrossEnvironment,
	})

	writeJSON(w, http.StatusOK, graphResponse{
		Deps: deps,
		DOT:  export.ToDOT(req.Resources, deps),
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (diagramRequest, bool) {
	var req diagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  string(apperrors.ErrCodeInvalidFormat),
		})
		return diagramRequest{}, false
	}
	if len(req.Resources) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "no resources provided",
			Code:  string(apperrors.ErrCodeInvalidResource),
		})
		return diagramRequest{}, false
	}
	return req, true
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidOption,
		apperrors.ErrCodeInvalidCanvas,
		apperrors.ErrCodeInvalidResource,
		apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
