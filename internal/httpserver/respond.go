package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/numberdle/internal/game"
	"github.com/robalobadob/numberdle/internal/store"
)

// apiError is the body of every non-2xx response.
type apiError struct {
	Error     string              `json:"error"`
	Message   string              `json:"message,omitempty"`
	Violation *game.RuleViolation `json:"violation,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, apiError{Error: code, Message: msg})
}

// writeGameErr maps engine and store errors to status codes.
func writeGameErr(w http.ResponseWriter, r *http.Request, err error) {
	var v *game.RuleViolation
	switch {
	case errors.As(err, &v):
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "rule_violation", Message: v.Error(), Violation: v})
	case errors.Is(err, game.ErrInvalidFormat):
		writeErr(w, http.StatusBadRequest, "invalid_format", err.Error())
	case errors.Is(err, game.ErrGameOver):
		writeErr(w, http.StatusConflict, "game_over", err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not_found", "game not found")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeErr(w, http.StatusInternalServerError, "internal", "")
	}
}

// decode reads a JSON body into v, answering 400 bad_json on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}

// decodeOptional is decode for endpoints where an empty body means defaults.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}
