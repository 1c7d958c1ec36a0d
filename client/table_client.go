package client

import (
	"fmt"
	"log"
	"os"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
)

// TableClient detects tables geometrically from positioned text fragments.
type TableClient struct {
	config tables.Config
}

func NewTableClient(minConfidence float64) *TableClient {
	cfg := tables.DefaultConfig()
	if minConfidence > 0 {
		cfg.MinConfidence = minConfidence
	}
	return &TableClient{config: cfg}
}

// ExtractTables returns the detected tables of every page, indexed by 0-based page number.
// A page whose tables cannot be read yields no tables rather than failing the document.
func (tc *TableClient) ExtractTables(data []byte) ([][]dto.RawTable, error) {
	tempFile, err := tc.CreateTempFile(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	r, err := reader.Open(tempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF for table detection: %w", err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	detector := tables.NewGeometricDetector()
	if err := detector.Configure(tc.config); err != nil {
		return nil, fmt.Errorf("failed to configure table detector: %w", err)
	}

	out := make([][]dto.RawTable, count)
	for i := 0; i < count; i++ {
		page, err := tc.layoutPage(r, i)
		if err != nil {
			log.Printf("table detection skipped page %d: %v", i+1, err)
			continue
		}
		detected, err := detector.Detect(page)
		if err != nil {
			log.Printf("table detection failed on page %d: %v", i+1, err)
			continue
		}
		for _, t := range detected {
			out[i] = append(out[i], toRawTable(t))
		}
	}
	return out, nil
}

// CreateTempFile writes the document to disk; the reader works on file paths.
func (tc *TableClient) CreateTempFile(data []byte) (string, error) {
	tempFile, err := os.CreateTemp("", "tables-*.pdf")
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := tempFile.Write(data); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}
	return tempFile.Name(), nil
}

func (tc *TableClient) layoutPage(r *reader.Reader, index int) (*model.Page, error) {
	p, err := r.GetPage(index)
	if err != nil {
		return nil, err
	}
	width, height := 612.0, 792.0
	if box, err := p.MediaBox(); err == nil && len(box) == 4 {
		width, height = box[2]-box[0], box[3]-box[1]
	}

	fragments, err := r.ExtractTextFragments(p)
	if err != nil {
		return nil, err
	}

	page := model.NewPage(width, height)
	for _, f := range fragments {
		page.RawText = append(page.RawText, model.TextFragment{
			Text:     f.Text,
			BBox:     model.NewBBox(f.X, f.Y, f.Width, f.Height),
			FontSize: f.FontSize,
			FontName: f.FontName,
		})
	}
	return page, nil
}

func toRawTable(t *model.Table) dto.RawTable {
	raw := make(dto.RawTable, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.Text
		}
		raw = append(raw, cells)
	}
	return raw
}
