package upload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CHANGE-EPFL/drop4crop-api/internal/core/domain"

	"github.com/google/uuid"
)

// V1LayerResponse is the catalog entry returned when a terminal chunk
// finalizes the upload
type V1LayerResponse struct {
	ID            uuid.UUID `json:"id"`
	LayerName     string    `json:"layer_name"`
	Filename      string    `json:"filename"`
	SizeBytes     int64     `json:"size_bytes"`
	MinValue      float64   `json:"min_value"`
	MaxValue      float64   `json:"max_value"`
	GlobalAverage float64   `json:"global_average"`
	Enabled       bool      `json:"enabled"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

func (h *HandlerV1) ReceiveChunkV1(w http.ResponseWriter, r *http.Request) {

	sessionID, ok := h.sessionIDFromQuery(w, r)
	if !ok {
		return
	}

	offset, err := strconv.ParseInt(r.Header.Get("Upload-Offset"), 10, 64)
	if err != nil || offset < 0 {
		http.Error(w, "invalid Upload-Offset header", http.StatusBadRequest)
		return
	}

	totalLength, err := strconv.ParseInt(r.Header.Get("Upload-Length"), 10, 64)
	if err != nil || totalLength <= 0 {
		http.Error(w, "invalid Upload-Length header", http.StatusBadRequest)
		return
	}

	contentLength, err := strconv.ParseInt(r.Header.Get("Content-Length"), 10, 64)
	if err != nil || contentLength <= 0 {
		http.Error(w, "invalid Content-Length header", http.StatusBadRequest)
		return
	}

	filename := r.Header.Get("Upload-Name")
	if filename == "" {
		http.Error(w, "missing Upload-Name header", http.StatusBadRequest)
		return
	}

	var overwrite *bool
	if raw := r.URL.Query().Get("overwrite_duplicates"); raw != "" {
		value, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			http.Error(w, "invalid overwrite_duplicates parameter", http.StatusBadRequest)
			return
		}
		overwrite = &value
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("error reading chunk body", "error", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	result, chunkErr := h.uploadService.ReceiveChunk(r.Context(), domain.ChunkRequest{
		SessionID:     sessionID,
		Offset:        offset,
		TotalLength:   totalLength,
		ContentLength: contentLength,
		Filename:      filename,
		Overwrite:     overwrite,
		Body:          body,
	})
	switch {
	case errors.Is(chunkErr, domain.ErrSessionNotFound):
		http.Error(w, chunkErr.Error(), http.StatusNotFound)
		return
	case errors.Is(chunkErr, domain.ErrValueRangeInvalid):
		h.logger.Error("chunk rejected", "error", chunkErr, "filename", filename)
		http.Error(w, chunkErr.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(chunkErr, domain.ErrDuplicateLayer):
		http.Error(w, chunkErr.Error(), http.StatusConflict)
		return
	case errors.Is(chunkErr, domain.ErrInvalidFilenameFormat), errors.Is(chunkErr, domain.ErrChunkOutOfRange), errors.Is(chunkErr, domain.ErrChunkSizeMismatch), errors.Is(chunkErr, domain.ErrUploadTooLarge):
		h.logger.Error("chunk rejected", "error", chunkErr)
		http.Error(w, chunkErr.Error(), http.StatusBadRequest)
		return
	case chunkErr != nil:
		h.logger.Error("error receiving chunk", "error", chunkErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	if result.Layer != nil {
		resp := V1LayerResponse{
			ID:            result.Layer.ID,
			LayerName:     result.Layer.LayerName,
			Filename:      result.Layer.Filename,
			SizeBytes:     result.Layer.SizeBytes,
			MinValue:      result.Layer.MinValue,
			MaxValue:      result.Layer.MaxValue,
			GlobalAverage: result.Layer.GlobalAverage,
			Enabled:       result.Layer.Enabled,
			UploadedAt:    result.Layer.UploadedAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}

	w.Header().Set("Upload-Offset", strconv.FormatInt(result.NextExpectedOffset, 10))
	w.WriteHeader(http.StatusOK)
}

// sessionIDFromQuery extracts the session id from the `patch` query
// parameter. Some clients send the value wrapped in double quotes.
func (h *HandlerV1) sessionIDFromQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.Trim(r.URL.Query().Get("patch"), `"`)
	if raw == "" {
		http.Error(w, "missing patch parameter", http.StatusBadRequest)
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid patch parameter", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return sessionID, true
}
