package upload

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// V1CreateSessionResponse is the response to a session creation request
type V1CreateSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

func (h *HandlerV1) CreateSessionV1(w http.ResponseWriter, r *http.Request) {

	totalLength, err := strconv.ParseInt(r.Header.Get("Upload-Length"), 10, 64)
	if err != nil || totalLength <= 0 {
		http.Error(w, "invalid Upload-Length header", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var owner uuid.UUID
	if userID := r.Header.Get("User-Id"); userID != "" {
		owner, err = uuid.Parse(userID)
		if err != nil {
			http.Error(w, "invalid User-Id header", http.StatusBadRequest)
			return
		}
	}

	sessionID, createErr := h.uploadService.CreateSession(r.Context(), owner, totalLength, contentType)
	switch {
	case errors.Is(createErr, domain.ErrUploadTooLarge):
		h.logger.Error("invalid request", "error", createErr)
		http.Error(w, createErr.Error(), http.StatusBadRequest)
		return
	case createErr != nil:
		h.logger.Error("error creating upload session", "error", createErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1CreateSessionResponse{SessionID: sessionID}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
