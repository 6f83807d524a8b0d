package web

import (
	"context"
	"net/http"
	"time"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
	"github.com/bartekmp/osmosmjerka-sub000/internal/logging"
)

const healthTimeout = 2 * time.Second

// handleHealth reports process and database health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			logging.FromContext(r.Context()).Error("health check failed", "error", err)
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			status["database"] = "ok"
		}
	}

	writeJSON(w, r, code, status)
}

func (s *Server) handleListLanguageSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.service.ListLanguageSets(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if sets == nil {
		sets = []core.LanguageSet{}
	}
	writeJSON(w, r, http.StatusOK, sets)
}

// handleListPhrases serves one page of phrases, filtered by ?category= and
// ?q= and paged by ?page= and ?page_size=.
func (s *Server) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	setID, err := setIDParam(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	page, err := s.service.ListPhrases(r.Context(), core.PhraseFilter{
		LanguageSetID: setID,
		Category:      q.Get("category"),
		Search:        q.Get("q"),
		Page:          parseIntParam(r, "page", 1),
		PageSize:      parseIntParam(r, "page_size", 0),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	setID, err := setIDParam(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	cats, err := s.service.ListCategories(r.Context(), setID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"categories": cats})
}

// handleListImports returns recent import history, newest first.
func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	setID, err := setIDParam(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	recs, err := s.service.ListImports(r.Context(), setID, parseIntParam(r, "limit", 0))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if recs == nil {
		recs = []core.ImportRecord{}
	}
	writeJSON(w, r, http.StatusOK, recs)
}

// handleImportQueueStatus reports the import limiter state, so clients can
// check whether an import would have to wait.
func (s *Server) handleImportQueueStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.Limiter().Status())
}
