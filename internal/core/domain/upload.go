package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// UploadSessionStatus represents the status of an upload session
type UploadSessionStatus string

const (
	UploadSessionStatusCreated    UploadSessionStatus = "created"
	UploadSessionStatusReceiving  UploadSessionStatus = "receiving"
	UploadSessionStatusCompleting UploadSessionStatus = "completing"
	UploadSessionStatusFinalized  UploadSessionStatus = "finalized"
	UploadSessionStatusAborted    UploadSessionStatus = "aborted"
)

// Terminal reports whether the status admits no further transitions
func (s UploadSessionStatus) Terminal() bool {
	return s == UploadSessionStatusFinalized || s == UploadSessionStatusAborted
}

// UploadSession is the durable record of an in-flight chunked upload
type UploadSession struct {
	ID               uuid.UUID
	Owner            uuid.UUID
	DeclaredName     string
	ContentType      string
	TotalLength      int64
	StorageKey       string
	ProviderUploadID string
	Status           UploadSessionStatus
	CreatedAt        time.Time
	LastActivityAt   time.Time
}

// UploadPart is one accepted chunk, recorded with the storage-assigned tag
// required to complete the multipart upload
type UploadPart struct {
	PartNumber int
	Offset     int64
	Length     int64
	ETag       string
	ReceivedAt time.Time
}

// NextExpectedOffset returns the offset a resuming client should continue
// from: the end of the contiguous prefix of recorded parts. Parts received
// ahead of a gap do not move the offset, the client must fill the hole
// first.
func NextExpectedOffset(parts []UploadPart) int64 {
	sorted := make([]UploadPart, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	var next int64
	for _, p := range sorted {
		if p.Offset != next {
			break
		}
		next += p.Length
	}
	return next
}

// PartsCover reports whether the recorded parts tile [0, totalLength)
// exactly, with no gaps and no overlaps, in part-number order.
func PartsCover(parts []UploadPart, totalLength int64) bool {
	if len(parts) == 0 {
		return totalLength == 0
	}

	sorted := make([]UploadPart, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PartNumber < sorted[j].PartNumber
	})

	var next int64
	for _, p := range sorted {
		if p.Offset != next {
			return false
		}
		next += p.Length
	}
	return next == totalLength
}
