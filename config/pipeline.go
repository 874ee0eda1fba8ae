package config

import (
	"sync"
)

var (
	pipelineOnce   sync.Once
	pipelineConfig *PipelineConfig
)

// PipelineConfig selects the pipeline collaborators. Routing thresholds are
// fixed policy constants and deliberately not configurable here.
type PipelineConfig struct {
	VendorTablePath string // YAML vendor reference table; empty means built-in defaults
	ImageBackend    string // "tesseract" or "textract"
	OCRLanguages    string // "+"-joined tesseract languages
}

func GetPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		loadEnv()

		pipelineConfig = &PipelineConfig{
			VendorTablePath: getenv("VENDOR_TABLE_PATH", ""),
			ImageBackend:    getenv("IMAGE_BACKEND", "tesseract"),
			OCRLanguages:    getenv("OCR_LANGUAGES", "eng"),
		}
	})
	return pipelineConfig
}
