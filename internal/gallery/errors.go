package gallery

import (
	"errors"
	"fmt"
)

// Configuration failures. A gallery constructed with one of these is inert.
var (
	ErrNoItems    = errors.New("no or empty item list provided")
	ErrNoViewport = errors.New("viewport not found")
)

// ErrUnsupportedType is reported when no content factory handles an item type
// and no default factory is registered.
var ErrUnsupportedType = errors.New("unsupported content type")

// ErrNoContent is reported when a factory returns neither content nor error.
var ErrNoContent = errors.New("factory returned no content")

// ConfigurationError is fatal at construction and leaves the gallery inert.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "gallery: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ContentLoadError marks a single slide whose content failed to load.
// It never blocks navigation to other slides.
type ContentLoadError struct {
	Index int
	URL   string
	Err   error
}

func (e *ContentLoadError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("gallery: slide %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("gallery: slide %d (%s): %v", e.Index, e.URL, e.Err)
}

func (e *ContentLoadError) Unwrap() error {
	return e.Err
}
