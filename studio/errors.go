package studio

import "errors"

// Common errors for the studio core.
var (
	// Validation errors, rejected before any network call.
	ErrEmptyText    = errors.New("text cannot be empty")
	ErrTextTooLong  = errors.New("text too long (max 10,000 characters)")
	ErrUnknownVoice = errors.New("unknown voice")

	// Capability errors for premium mode selection.
	ErrDriverMissing = errors.New("GPU detected but CUDA drivers are missing")
	ErrNoGPU         = errors.New("no CUDA-capable GPU available")

	// Artifact errors.
	ErrNoArtifact        = errors.New("no generated audio available")
	ErrFormatUnavailable = errors.New("requested audio format was not produced")
)
