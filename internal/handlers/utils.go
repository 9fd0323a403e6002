package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aanandhisonduri/BigBrain/internal/api"
	"github.com/aanandhisonduri/BigBrain/internal/domain/model"
)

func (h *Handler) writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// status line is already out, nothing clean left to send
		h.logger.Error("Error encoding response", "error", err)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	h.writeJsonResponse(w, statusCode, api.ErrorResponse{Code: statusCode, Message: message})
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			h.logger.Error("Couldn't close the request body reader", "error", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		h.logger.Warn("Bad request body", "path", r.URL.Path, "error", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

// writeDomainError maps domain sentinels to HTTP codes. Denied access
// reads as not found so callers can't probe for foreign records.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotAuthenticated):
		h.writeErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, model.ErrNotAuthorized), errors.Is(err, model.ErrNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, model.ErrFileNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "File Not Found")
	case errors.Is(err, model.ErrChatCompletion),
		errors.Is(err, model.ErrEmbeddingService),
		errors.Is(err, model.ErrEmbeddingFormat):
		h.writeErrorResponse(w, http.StatusBadGateway, "Upstream model error")
	default:
		h.logger.Error("Unhandled error", "error", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
