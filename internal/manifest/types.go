package manifest

import (
	"path"
	"strings"
)

var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".m4a":  "audio/mp4",
	".dsf":  "audio/dsf",
}

// TypeOf returns the MIME type for a file name or URL by extension, or ""
// for unsupported media.
func TypeOf(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 && isURL(location) {
		location = location[:i]
	}
	return mediaTypes[strings.ToLower(path.Ext(location))]
}
