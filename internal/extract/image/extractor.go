package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// 图像预处理接口
type Preprocessor interface {
	Process(img image.Image) (image.Image, error)
}

// Options 处理选项
type Options struct {
	Languages   []string
	PageSegMode gosseract.PageSegMode
	Sharpen     float64
	Contrast    float64
}

// Extractor runs Tesseract OCR over a preprocessed image. OCR output has no
// positional structure here, so the tables slice is always empty.
type Extractor struct {
	logger logger.Logger
	opts   *Options
	chain  []Preprocessor
}

func NewExtractor(log logger.Logger, opts *Options) *Extractor {
	if opts == nil {
		opts = &Options{
			Languages:   []string{"eng"},
			PageSegMode: gosseract.PSM_AUTO,
			Sharpen:     0.5,
			Contrast:    10,
		}
	}

	chain := []Preprocessor{
		NewGrayscaleProcessor(),
		NewContrastProcessor(opts.Contrast),
		NewSharpenProcessor(opts.Sharpen),
	}

	return &Extractor{
		logger: log,
		opts:   opts,
		chain:  chain,
	}
}

func (e *Extractor) Extract(_ context.Context, path string) (string, []models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}

	processed, err := e.applyPreprocessing(img)
	if err != nil {
		return "", nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, processed, &jpeg.Options{Quality: 100}); err != nil {
		return "", nil, fmt.Errorf("failed to encode image: %w", err)
	}

	// 每个任务创建新的 Tesseract 客户端
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Join(e.opts.Languages, "+")); err != nil {
		return "", nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(e.opts.PageSegMode); err != nil {
		return "", nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get text: %w", err)
	}

	return text, nil, nil
}

func (e *Extractor) applyPreprocessing(img image.Image) (image.Image, error) {
	result := img
	var err error
	for _, p := range e.chain {
		result, err = p.Process(result)
		if err != nil {
			return nil, fmt.Errorf("preprocessing failed: %w", err)
		}
	}
	return result, nil
}

type GrayscaleProcessor struct{}

func NewGrayscaleProcessor() *GrayscaleProcessor {
	return &GrayscaleProcessor{}
}

func (p *GrayscaleProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

type ContrastProcessor struct {
	amount float64
}

func NewContrastProcessor(amount float64) *ContrastProcessor {
	return &ContrastProcessor{amount: amount}
}

func (p *ContrastProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.AdjustContrast(img, p.amount), nil
}

type SharpenProcessor struct {
	sigma float64
}

func NewSharpenProcessor(sigma float64) *SharpenProcessor {
	return &SharpenProcessor{sigma: sigma}
}

func (p *SharpenProcessor) Process(img image.Image) (image.Image, error) {
	return imaging.Sharpen(img, p.sigma), nil
}
