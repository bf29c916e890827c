package storage

import (
	"context"
	"errors"
)

// coverFolder is the public folder every cover lives under, regardless of
// backend.
const coverFolder = "images/books"

// ErrWrite marks unexpected I/O failures from a cover store. A missing file
// on delete is never an ErrWrite.
var ErrWrite = errors.New("storage write failed")

// CoverStore manages the lifecycle of the single optional cover file per
// catalog entry.
type CoverStore interface {
	// Save persists the bytes under a collision-free generated name that
	// preserves the original file extension, and returns the public
	// reference for the stored file.
	Save(ctx context.Context, data []byte, originalName string) (string, error)

	// DeleteIfExists removes the referenced file. An empty reference or an
	// already-absent file is a no-op, never an error.
	DeleteIfExists(ctx context.Context, path string) error
}
