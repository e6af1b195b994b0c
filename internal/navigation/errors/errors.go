package errors

import "errors"

var (
	ErrSessionNotFound          = errors.New("navigation session not found")
	ErrNotReady                 = errors.New("location or map not available")
	ErrNoMarkers                = errors.New("no route markers to move")
	ErrNoRoute                  = errors.New("no route between origin and destination")
	ErrProviderFailure          = errors.New("directions provider failure")
	ErrProviderUnavailable      = errors.New("directions provider temporarily unavailable")
	ErrUnsupportedMode          = errors.New("travel mode not supported by provider")
	ErrProviderNotConfigured    = errors.New("directions provider not configured")
	ErrUnsupportedSchemaVersion = errors.New("unsupported view state schema version")
	ErrInvalidViewState         = errors.New("invalid view state")
	ErrViewStateNotFound        = errors.New("view state not found")
	ErrSessionClosed            = errors.New("navigation session closed")
)
