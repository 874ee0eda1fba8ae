package text

import (
	"context"
	"os"
	"strings"

	"github.com/feichai0017/document-intake/internal/models"
)

// Extractor reads plain text files. Invalid UTF-8 bytes are dropped rather
// than failing the read.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, path string) (string, []models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return strings.ToValidUTF8(string(data), ""), nil, nil
}
