package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
	"github.com/bartekmp/osmosmjerka-sub000/internal/logging"
	"github.com/bartekmp/osmosmjerka-sub000/internal/phrase"
	"github.com/bartekmp/osmosmjerka-sub000/internal/web/templates"
)

// phraseRequest is a decoded preview or import body. File is set for
// multipart uploads carrying a "file" part; Payload.Content is empty then.
type phraseRequest struct {
	Payload phrase.Payload
	File    multipart.File
}

func (p *phraseRequest) Close() {
	if p.File != nil {
		p.File.Close()
	}
}

// readPhraseRequest accepts a JSON payload, a multipart form with a "file"
// part or "content" field, or a urlencoded form. The separator comes from
// the "separator" field in every case.
func (s *Server) readPhraseRequest(w http.ResponseWriter, r *http.Request) (*phraseRequest, error) {
	s.limitBody(w, r)
	req := &phraseRequest{}

	switch mediaType(r) {
	case "application/json":
		if err := decodeJSON(r, &req.Payload); err != nil {
			return nil, err
		}

	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err, "invalid multipart form")
		}
		req.Payload.Separator = r.FormValue("separator")
		file, _, err := r.FormFile("file")
		switch {
		case err == nil:
			req.File = file
		case errors.Is(err, http.ErrMissingFile):
			req.Payload.Content = r.FormValue("content")
		default:
			return nil, bodyError(err, "invalid file part")
		}

	default:
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err, "invalid form")
		}
		req.Payload.Content = r.PostFormValue("content")
		req.Payload.Separator = r.PostFormValue("separator")
	}

	return req, nil
}

// handlePreview parses the first lines of the submitted content. The JSON
// response is core.PreviewResponse; HTMX requests get the preview fragment.
// Parser failures are part of a successful response, not an error status.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	setID, err := setIDParam(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	req, err := s.readPhraseRequest(w, r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	defer req.Close()

	content := req.Payload.Content
	if req.File != nil {
		content, err = core.ReadContent(req.File, s.cfg.Import.MaxContentSize)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
	}

	resp, err := s.service.Preview(r.Context(), setID, content, req.Payload.Separator)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.PreviewPanel(resp).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render preview", "error", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleImport imports a JSON phrase.Payload or an uploaded file into the
// language set and returns core.ImportResult.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	setID, err := setIDParam(r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	req, err := s.readPhraseRequest(w, r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	defer req.Close()

	r = withClient(r)

	var result *core.ImportResult
	if req.File != nil {
		result, err = s.service.ImportReader(r.Context(), setID, req.File, req.Payload.Separator)
	} else {
		result, err = s.service.Import(r.Context(), setID, req.Payload)
	}
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ImportSummary(result).Render(r.Context(), w); err != nil {
			logging.FromContext(r.Context()).Error("render import summary", "error", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
