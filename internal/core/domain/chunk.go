package domain

import "github.com/google/uuid"

// ChunkRequest carries one client-supplied byte range of an upload
type ChunkRequest struct {
	SessionID     uuid.UUID
	Offset        int64
	TotalLength   int64
	ContentLength int64
	Filename      string
	// Overwrite overrides the configured duplicate policy for this request
	// when non-nil.
	Overwrite *bool
	Body      []byte
}

// ChunkResult reports the outcome of an accepted chunk
type ChunkResult struct {
	Status             UploadSessionStatus
	PartNumber         int
	NextExpectedOffset int64
	// Layer is set only when this chunk was terminal and the finalize
	// sequence registered a catalog entry.
	Layer *Layer
}
