package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxTransformBytes bounds the request body for ad-hoc transforms.
const maxTransformBytes = 20 << 20 // 20MB

type documentResponse struct {
	Name  string `json:"name"`
	Route string `json:"route"`
	HTML  string `json:"html"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleListDocuments returns all registered documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.Documents())
}

// handleGetDocument serves the processed HTML for one document, from cache
// when present. ?refresh=1 forces a re-fetch.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, ok := s.reg.ByName(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown document")
		return
	}

	refresh := r.URL.Query().Get("refresh") == "1"
	if !refresh {
		cached, err := s.cache.Get(r.Context(), name)
		if err != nil {
			s.log.Error("cache lookup failed", "name", name, "error", err)
			writeError(w, http.StatusInternalServerError, "cache lookup failed")
			return
		}
		if cached != nil {
			writeJSON(w, http.StatusOK, documentResponse{Name: doc.Name, Route: doc.Route, HTML: cached.HTML})
			return
		}
	}

	raw, err := s.fetcher.Fetch(r.Context(), doc)
	if err != nil {
		s.log.Error("fetch failed", "name", name, "error", err)
		writeError(w, http.StatusBadGateway, "fetching document failed")
		return
	}

	processed := s.tr.Process(raw)
	if err := s.cache.Put(r.Context(), name, processed); err != nil {
		s.log.Error("cache write failed", "name", name, "error", err)
	}

	writeJSON(w, http.StatusOK, documentResponse{Name: doc.Name, Route: doc.Route, HTML: processed})
}

// handleInvalidateCache drops the cached transform for one document.
func (s *Server) handleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.reg.ByName(name); !ok {
		writeError(w, http.StatusNotFound, "unknown document")
		return
	}
	if err := s.cache.Invalidate(r.Context(), name); err != nil {
		s.log.Error("cache invalidation failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTransform runs the transform pipeline over the raw HTML in the
// request body and returns the processed document.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxTransformBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body failed")
		return
	}
	if len(raw) == 0 {
		writeError(w, http.StatusBadRequest, "empty request body")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.tr.Process(string(raw))))
}
