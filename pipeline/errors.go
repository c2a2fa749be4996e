package pipeline

import "github.com/pkg/errors"

var (
	// ErrWarehouseWriteFailed means a batch insert failed. It is fatal for the
	// artifact: remaining batches, tier uploads and the registry append are skipped.
	ErrWarehouseWriteFailed = errors.New("warehouse write failed")
	// ErrUploadFailed means an object store write failed; fatal for the
	// artifact's remaining steps.
	ErrUploadFailed = errors.New("upload failed")
)
