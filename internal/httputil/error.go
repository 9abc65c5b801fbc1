package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/afcon-predictor/internal/prediction"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

// StatusFor maps an error from the prediction engine to an HTTP status
func StatusFor(err error) int {
	switch {
	case prediction.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, prediction.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, prediction.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// EngineError writes the user-facing message for validation and lock errors,
// storage failures are logged and hidden behind a 500
func EngineError(w http.ResponseWriter, msg string, err error) {
	status := StatusFor(err)
	switch status {
	case http.StatusInternalServerError:
		InternalServerError(w, msg, err)
	case http.StatusNotFound:
		NotFound(w, err.Error(), err)
	default:
		slog.Info("submission rejected", "message", msg, "error", err)
		http.Error(w, err.Error(), status)
	}
}
