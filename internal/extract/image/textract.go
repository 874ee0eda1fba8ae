package image

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	cfg "github.com/feichai0017/document-intake/config"
	"github.com/feichai0017/document-intake/internal/models"
	"github.com/feichai0017/document-intake/pkg/logger"
)

// TextractExtractor uses AWS Textract for scanned documents. Unlike the local
// Tesseract path it recovers tabular structure from the analyzed blocks.
type TextractExtractor struct {
	client *textract.Client
	logger logger.Logger
}

func NewTextractExtractor(ctx context.Context, tc *cfg.TextractConfig, log logger.Logger) (*TextractExtractor, error) {
	creds := credentials.NewStaticCredentialsProvider(tc.AccessKey, tc.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(tc.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &TextractExtractor{
		client: textract.NewFromConfig(awsCfg),
		logger: log,
	}, nil
}

func (e *TextractExtractor) Extract(ctx context.Context, path string) (string, []models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	result, err := e.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
		Document: &types.Document{
			Bytes: data,
		},
		FeatureTypes: []types.FeatureType{types.FeatureTypeTables},
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to analyze document: %w", err)
	}

	byID := make(map[string]types.Block, len(result.Blocks))
	var lines []string
	for _, block := range result.Blocks {
		byID[aws.ToString(block.Id)] = block
		if block.BlockType == types.BlockTypeLine {
			lines = append(lines, aws.ToString(block.Text))
		}
	}

	var tables []models.Table
	for _, block := range result.Blocks {
		if block.BlockType == types.BlockTypeTable {
			if table, ok := e.tableFromBlock(block, byID); ok {
				tables = append(tables, table)
			}
		}
	}

	return strings.Join(lines, "\n"), tables, nil
}

// tableFromBlock rebuilds one table from its CELL children. The grid from
// Textract is rectangular, so the first row is promoted to headers.
func (e *TextractExtractor) tableFromBlock(table types.Block, byID map[string]types.Block) (models.Table, bool) {
	var maxRow, maxCol int
	cells := make(map[[2]int]string)

	for _, rel := range table.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			cell, ok := byID[id]
			if !ok || cell.BlockType != types.BlockTypeCell {
				continue
			}
			row := int(aws.ToInt32(cell.RowIndex))
			col := int(aws.ToInt32(cell.ColumnIndex))
			if row > maxRow {
				maxRow = row
			}
			if col > maxCol {
				maxCol = col
			}
			cells[[2]int{row, col}] = e.cellText(cell, byID)
		}
	}

	if maxRow < 2 || maxCol == 0 {
		return models.Table{}, false
	}

	grid := make([][]string, maxRow)
	for r := 1; r <= maxRow; r++ {
		rowCells := make([]string, maxCol)
		for c := 1; c <= maxCol; c++ {
			rowCells[c-1] = cells[[2]int{r, c}]
		}
		grid[r-1] = rowCells
	}

	return models.Table{Headers: grid[0], Rows: grid[1:]}, true
}

func (e *TextractExtractor) cellText(cell types.Block, byID map[string]types.Block) string {
	var words []string
	for _, rel := range cell.Relationships {
		if rel.Type != types.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			if word, ok := byID[id]; ok && word.BlockType == types.BlockTypeWord {
				words = append(words, aws.ToString(word.Text))
			}
		}
	}
	return strings.Join(words, " ")
}
