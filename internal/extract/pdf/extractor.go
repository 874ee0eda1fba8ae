package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// 每个文档同时处理的最大页数
const maxPageWorkers = 4

// Extractor reads PDF text page by page and rebuilds tabular structures from
// the positioned text rows.
type Extractor struct {
	logger logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

func (e *Extractor) Extract(ctx context.Context, path string) (string, []models.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", nil, err
	}

	numPages := pdfReader.NumPage()
	pageTexts := make([]string, numPages+1)
	pageTables := make([][]models.Table, numPages+1)

	// 并行处理每一页
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxPageWorkers)

	for i := 1; i <= numPages; i++ {
		pageNum := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return ctx.Err()
			}

			page := pdfReader.Page(pageNum)
			if page.V.IsNull() {
				return nil
			}

			text, err := page.GetPlainText(nil)
			if err != nil {
				return fmt.Errorf("failed to get text from page %d: %w", pageNum, err)
			}

			pageTexts[pageNum] = text
			pageTables[pageNum] = tablesFromPage(page)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	var tables []models.Table
	for _, pt := range pageTables {
		tables = append(tables, pt...)
	}

	return strings.Join(pageTexts[1:], "\n"), tables, nil
}

// tablesFromPage rebuilds row/column structure from the page's positioned
// text rows. Single-cell rows are plain paragraph text, not table content.
func tablesFromPage(page pdf.Page) []models.Table {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return nil
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cols := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			if s := strings.TrimSpace(word.S); s != "" {
				cols = append(cols, s)
			}
		}
		if len(cols) > 1 {
			cells = append(cells, cols)
		}
	}
	if len(cells) < 2 {
		return nil
	}
	return []models.Table{promoteHeaders(cells)}
}

// promoteHeaders treats the first row as column headers when every row has a
// consistent shape; ragged rows fall back to the headerless row list.
func promoteHeaders(cells [][]string) models.Table {
	width := len(cells[0])
	for _, row := range cells[1:] {
		if len(row) != width {
			return models.Table{Rows: cells}
		}
	}
	return models.Table{Headers: cells[0], Rows: cells[1:]}
}
