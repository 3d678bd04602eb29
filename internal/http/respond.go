// internal/http/respond.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Pieroprincipe22/tarea-completa-tc/internal/models"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Error maps a domain error to its HTTP status and writes the JSON error
// body. Unknown errors become an opaque 500 using fallback.
func Error(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrBadRequest):
		JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrReportFinal),
		errors.Is(err, models.ErrBadTransition),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrConflict):
		JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrNotMember):
		JSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		status, msg := PGErrorMessage(err, fallback)
		JSON(w, status, map[string]string{"error": msg})
	}
}
