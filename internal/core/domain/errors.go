package domain

import "errors"

// ErrInvalidFilenameFormat is an error thrown when an uploaded filename does not match the layer naming scheme
var ErrInvalidFilenameFormat = errors.New("invalid filename format")

// ErrSessionNotFound is an error thrown when session is not found or already terminal
var ErrSessionNotFound = errors.New("session not found")

// ErrDuplicateLayer is an error thrown when a layer with the same metadata key already exists
var ErrDuplicateLayer = errors.New("duplicate layer")

// ErrLayerNotFound is an error thrown when a layer is not found
var ErrLayerNotFound = errors.New("layer not found")

// ErrStorageUpload is an error thrown when a storage upload operation fails
var ErrStorageUpload = errors.New("storage upload failed")

// ErrValueRangeInvalid is an error thrown when band statistics yield a non-finite value range
var ErrValueRangeInvalid = errors.New("invalid value range")

// ErrChunkSizeMismatch is an error thrown when a non-terminal chunk differs in size from earlier chunks
var ErrChunkSizeMismatch = errors.New("chunk size mismatch")

// ErrChunkOutOfRange is an error thrown when a chunk does not fit the declared upload length
var ErrChunkOutOfRange = errors.New("chunk out of range")

// ErrUploadTooLarge is an error thrown when the declared upload length exceeds the configured maximum
var ErrUploadTooLarge = errors.New("upload too large")
