// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operations, by the part of the program that reports them.
const (
	// Startup
	OpConfigLoad   Op = "load configuration"
	OpLogOpen      Op = "open log file"
	OpManifestLoad Op = "load manifest"
	OpGalleryInit  Op = "initialize gallery"

	// Slide content
	OpImageLoad   Op = "load image"
	OpImageDecode Op = "decode image"
	OpCoverLoad   Op = "read embedded cover"

	// Cache
	OpCacheRead  Op = "read image cache"
	OpCacheWrite Op = "write image cache"
	OpCachePrune Op = "prune image cache"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
