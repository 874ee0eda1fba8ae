package pipeline

import (
	"context"
	"fmt"

	cfg "github.com/feichai0017/document-intake/config"
	"github.com/feichai0017/document-intake/internal/enrich"
	"github.com/feichai0017/document-intake/internal/entity"
	"github.com/feichai0017/document-intake/internal/extract"
	"github.com/feichai0017/document-intake/internal/extract/image"
	"github.com/feichai0017/document-intake/internal/extract/pdf"
	"github.com/feichai0017/document-intake/internal/extract/text"
	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// GetProcessor wires a Processor from environment configuration: extractor
// backends, the optional NER model capability, and the vendor table.
func GetProcessor(log logger.Logger) (*Processor, error) {
	pc := cfg.GetPipelineConfig()

	registry := extract.NewRegistry(log)
	registry.Register(models.KindText, text.NewExtractor())
	registry.Register(models.KindPDF, pdf.NewExtractor(log))

	switch pc.ImageBackend {
	case "textract":
		te, err := image.NewTextractExtractor(context.Background(), cfg.GetTextractConfig(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to create textract extractor: %w", err)
		}
		registry.Register(models.KindImage, te)
	case "tesseract":
		registry.Register(models.KindImage, image.NewExtractor(log, nil))
	default:
		return nil, fmt.Errorf("unsupported image backend: %s", pc.ImageBackend)
	}

	// The model capability is a startup fact. Absent model means the regex
	// recognizer carries the whole behavior; there is no per-call fallback.
	var recognizer entity.Recognizer = entity.NewRegexRecognizer()
	if nc := cfg.GetNERConfig(); nc.Available() {
		recognizer = entity.NewModelRecognizer(entity.NewNERClient(nc), log)
	}

	enricher := enrich.NewEnricher()
	if pc.VendorTablePath != "" {
		var err error
		enricher, err = enrich.NewEnricherFromFile(pc.VendorTablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load vendor table: %w", err)
		}
	}

	return NewProcessor(registry, recognizer, enricher, log), nil
}
