package upload

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"
)

func (h *HandlerV1) StatusV1(w http.ResponseWriter, r *http.Request) {

	sessionID, ok := h.sessionIDFromQuery(w, r)
	if !ok {
		return
	}

	offset, err := h.uploadService.Status(r.Context(), sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error fetching upload status", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Upload-Offset", strconv.FormatInt(offset, 10))
	w.WriteHeader(http.StatusOK)
}
