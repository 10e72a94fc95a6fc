// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/provgraph-dev/provgraph/internal/core"
	"github.com/provgraph-dev/provgraph/internal/store"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/vertices", s.handleGetVertices)
		r.Get("/vertices/{id}", s.handleGetVertexByID)
		r.Get("/edges", s.handleGetEdges)
		r.Get("/lineage", s.handleGetLineage)
		r.Get("/paths", s.handleGetAllPaths)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetVertices(w http.ResponseWriter, r *http.Request) {
	expression := r.URL.Query().Get("expression")
	if expression == "" {
		s.writeError(w, pgerr.New(pgerr.CodeServerRequestInvalid, "expression parameter is required"))
		return
	}

	s.mu.Lock()
	g, err := s.st.GetVertices(r.Context(), expression)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGetVertexByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, pgerr.Wrap(err, pgerr.CodeServerRequestInvalid, "vertex id must be an integer"))
		return
	}

	s.mu.Lock()
	v, err := s.st.GetVertexByID(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v.Annotations())
}

func (s *Server) handleGetEdges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		g   *core.Graph
		err error
	)
	switch {
	case q.Has("srcId") || q.Has("dstId"):
		var srcID, dstID int64
		srcID, err = queryInt(q.Get("srcId"), "srcId")
		if err == nil {
			dstID, err = queryInt(q.Get("dstId"), "dstId")
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.mu.Lock()
		g, err = s.st.GetEdgesByID(r.Context(), srcID, dstID)
		s.mu.Unlock()
	case q.Has("srcKey") && q.Has("srcValue") && q.Has("dstKey") && q.Has("dstValue"):
		s.mu.Lock()
		g, err = s.st.GetEdges(r.Context(), q.Get("srcKey"), q.Get("srcValue"), q.Get("dstKey"), q.Get("dstValue"))
		s.mu.Unlock()
	default:
		s.writeError(w, pgerr.New(pgerr.CodeServerRequestInvalid,
			"either srcId/dstId or srcKey/srcValue/dstKey/dstValue parameters are required"))
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGetLineage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	src, err := queryInt(q.Get("src"), "src")
	if err != nil {
		s.writeError(w, err)
		return
	}
	depth, err := queryIntDefault(q.Get("depth"), "depth", 5)
	if err != nil {
		s.writeError(w, err)
		return
	}
	terminate, err := queryIntDefault(q.Get("terminate"), "terminate", -1)
	if err != nil {
		s.writeError(w, err)
		return
	}
	direction := core.DirectionDescendants
	if raw := q.Get("direction"); raw != "" {
		direction, err = core.ParseDirection(raw)
		if err != nil {
			s.writeError(w, pgerr.Wrap(err, pgerr.CodeServerRequestInvalid, "invalid direction parameter"))
			return
		}
	}

	s.mu.Lock()
	g, err := s.st.GetLineage(r.Context(), src, int(depth), direction, terminate)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleGetAllPaths(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	src, err := queryInt(q.Get("src"), "src")
	if err != nil {
		s.writeError(w, err)
		return
	}
	dst, err := queryInt(q.Get("dst"), "dst")
	if err != nil {
		s.writeError(w, err)
		return
	}
	maxLength, err := queryIntDefault(q.Get("maxLength"), "maxLength", 5)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	g, err := s.st.GetAllPaths(r.Context(), src, dst, int(maxLength))
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func queryInt(raw, name string) (int64, error) {
	if raw == "" {
		return 0, pgerr.Errorf(pgerr.CodeServerRequestInvalid, "%s parameter is required", name)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pgerr.Wrapf(err, pgerr.CodeServerRequestInvalid, "%s parameter must be an integer", name)
	}
	return n, nil
}

func queryIntDefault(raw, name string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return queryInt(raw, name)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := pgerr.HTTPStatus(err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": err.Error()}
	if code := pgerr.CodeOf(err); code != "" {
		body["code"] = string(code)
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding error response", "error", err)
	}
}
