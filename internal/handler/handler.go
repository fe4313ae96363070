package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
)

// maxRequestBody begrenzt die POST-Body-Größe auf 1 MegaByte
const maxRequestBody = 1 << 20

// errorBody ist die einheitliche Fehlerantwort-Struktur.
type errorBody struct {
	Error string `json:"error"`
}

// messageBody ist die Antwort erfolgreicher Verwaltungsaufrufe.
type messageBody struct {
	Message string `json:"message"`
}

// writeJSON setzt den Content-Type-Header und schreibt v als JSON in w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError bildet Domänenfehler auf Statuscodes ab. Unbekannte Fehler
// werden protokolliert und ohne Details beantwortet.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorBody{err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{err.Error()})
	case errors.Is(err, domain.ErrFabricTypeMismatch):
		writeJSON(w, http.StatusConflict, errorBody{err.Error()})
	case errors.Is(err, domain.ErrCapacityReached):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{err.Error()})
	default:
		logger.Error(op, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"interner serverfehler"})
	}
}

// decodeBody liest höchstens maxRequestBody Bytes JSON aus dem Request in v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"ungültiger anfrage-body"})
		return false
	}
	return true
}

// bearerToken gibt das Token aus "Authorization: Bearer <token>" zurück.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
