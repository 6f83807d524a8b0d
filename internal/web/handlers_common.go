package web

// Shared request helpers used across handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bartekmp/osmosmjerka-sub000/internal/core"
)

const (
	// multipartMemory is the part of a multipart body kept in memory before
	// spilling to temporary files.
	multipartMemory = 8 << 20

	// bodyOverhead covers JSON escaping and multipart framing on top of the
	// content size limit.
	bodyOverhead = 64 << 10
)

// badRequest builds a user-facing REQ001 error for malformed requests.
func badRequest(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &core.UserError{
		Technical: fmt.Errorf("%w: %s", errBadRequest, msg),
		User: core.UserMessage{
			Message: msg,
			Action:  "Check the request and try again",
			Code:    "REQ001",
		},
	}
}

// setIDParam reads the {setID} URL parameter.
func setIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "setID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid language set id %q", raw)
	}
	return id, nil
}

// parseIntParam parses a positive integer query parameter, falling back to
// defaultVal when it is missing or malformed.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// mediaType returns the lower-cased media type of the request body.
func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// limitBody caps the request body at the import size limit plus framing.
func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxContentSize+bodyOverhead)
}

// decodeJSON decodes the body into v. Unknown fields are rejected.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return bodyError(err, "invalid JSON body")
	}
	if dec.More() {
		return badRequest("request body must hold a single JSON object")
	}
	return nil
}

// bodyError converts a body read failure, reporting oversized bodies as
// core.ErrContentTooLarge.
func bodyError(err error, what string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: body exceeds %d bytes", core.ErrContentTooLarge, tooLarge.Limit)
	}
	if errors.Is(err, io.EOF) {
		return badRequest("%s: empty body", what)
	}
	return badRequest("%s: %v", what, err)
}
