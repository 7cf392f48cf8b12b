package library

import (
	"path/filepath"
	"strings"
)

// AudioExtensions maps file extensions to whether they are accepted audio
// formats. The extension check backs up the MIME check because some
// platforms report unreliable types for audio files.
var AudioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
	".aac": true,
	".ogg": true,
}

// MimeTypes maps accepted extensions to their MIME types.
var MimeTypes = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
	".aac": "audio/aac",
	".ogg": "audio/ogg",
}

// IsAudio reports whether a file should be imported, accepting either a
// declared audio/* MIME type or a known audio extension.
func IsAudio(filename, declaredMime string) bool {
	if strings.HasPrefix(declaredMime, "audio/") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return AudioExtensions[ext]
}

// MimeFor returns the MIME type for a filename, preferring the declared
// type when present. Unknown audio falls back to application/octet-stream.
func MimeFor(filename, declaredMime string) string {
	if declaredMime != "" {
		return declaredMime
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
