package mediatypes

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind represents the handling variant for a media file.
type Kind string

const (
	// KindVideo represents a video file sampled by seeking.
	KindVideo Kind = "video"
	// KindGif represents an animated GIF sampled sequentially.
	KindGif Kind = "gif"
	// KindImage represents a static image yielding a single frame.
	KindImage Kind = "image"
)

// ErrUnsupportedMediaKind is returned when a file extension maps to no
// known handling variant. Callers skip the file and continue.
var ErrUnsupportedMediaKind = errors.New("unsupported media kind")

// VideoExtensions maps file extensions to whether they are treated as video.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
}

// ImageExtensions maps file extensions to whether they are treated as a
// static image. GIFs are deliberately absent; they get their own variant.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

// GifExtensions maps file extensions to whether they are treated as an
// animated GIF.
var GifExtensions = map[string]bool{
	".gif": true,
}

// Classify returns the handling variant for a file path based on its
// extension. It performs no I/O; existence checks belong to the caller.
func Classify(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case VideoExtensions[ext]:
		return KindVideo, nil
	case GifExtensions[ext]:
		return KindGif, nil
	case ImageExtensions[ext]:
		return KindImage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaKind, ext)
}

// IsMediaFile returns true if the extension maps to a supported variant.
func IsMediaFile(path string) bool {
	_, err := Classify(path)
	return err == nil
}
