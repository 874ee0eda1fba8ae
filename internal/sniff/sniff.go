// Package sniff maps filenames to coarse content kinds.
package sniff

import (
	"path/filepath"
	"strings"

	"github.com/feichai0017/document-intake/internal/models"
)

var extKinds = map[string]models.ContentKind{
	".pdf":  models.KindPDF,
	".jpg":  models.KindImage,
	".jpeg": models.KindImage,
	".png":  models.KindImage,
	".tif":  models.KindImage,
	".tiff": models.KindImage,
	".txt":  models.KindText,
}

// Sniff decides the content kind from the filename extension alone,
// case-insensitively. Total: every input yields one of the four kinds and no
// I/O happens.
func Sniff(path string) models.ContentKind {
	if kind, ok := extKinds[strings.ToLower(filepath.Ext(path))]; ok {
		return kind
	}
	return models.KindUnknown
}
