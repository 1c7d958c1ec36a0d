package service

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor turns raw PDF bytes into per-page text and tables.
type PDFProcessor interface {
	ExtractDocument(pdfData []byte, password string) (dto.Document, error)
}

// TableExtractor detects tables per page, indexed by 0-based page number.
type TableExtractor interface {
	ExtractTables(pdfData []byte) ([][]dto.RawTable, error)
}

type pdfProcessor struct {
	tables TableExtractor
}

func NewPDFProcessor(tables TableExtractor) PDFProcessor {
	return &pdfProcessor{tables: tables}
}

func (p *pdfProcessor) ExtractDocument(pdfData []byte, password string) (dto.Document, error) {
	pdfData, pageCount, err := p.open(pdfData, password)
	if err != nil {
		return dto.Document{}, err
	}

	texts, err := p.extractPageTexts(pdfData)
	if err != nil {
		return dto.Document{}, fmt.Errorf("failed to extract text: %w", err)
	}

	var tables [][]dto.RawTable
	if p.tables != nil {
		tables, err = p.tables.ExtractTables(pdfData)
		if err != nil {
			// text-only documents still go through the text grammars
			log.Printf("Table extraction failed: %v", err)
		}
	}

	doc := dto.Document{Pages: make([]dto.Page, pageCount)}
	for i := range doc.Pages {
		doc.Pages[i].Number = i + 1
		if i < len(texts) {
			doc.Pages[i].Text = texts[i]
		}
		if i < len(tables) {
			doc.Pages[i].Tables = tables[i]
		}
	}
	return doc, nil
}

// open validates the file and returns its page count. Encrypted files come back decrypted;
// a password sent with a plain file is ignored.
func (p *pdfProcessor) open(pdfData []byte, password string) ([]byte, int, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdfData), conf)
	if errors.Is(err, pdfcpu.ErrWrongPassword) {
		return nil, 0, fmt.Errorf("%w: %v", dto.ErrDecryptionFailed, err)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid PDF: %v", dto.ErrUnsupportedFile, err)
	}
	if ctx.Encrypt == nil {
		return pdfData, ctx.PageCount, nil
	}

	decrypted, err := p.decrypt(pdfData, password)
	if err != nil {
		return nil, 0, err
	}
	return decrypted, ctx.PageCount, nil
}

// decrypt removes the user password so the text and table readers, which have no password
// support, can open the file.
func (p *pdfProcessor) decrypt(pdfData []byte, password string) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrDecryptionFailed, err)
	}
	return out.Bytes(), nil
}

func (p *pdfProcessor) extractPageTexts(pdfData []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, err
	}

	totalPage := r.NumPage()
	texts := make([]string, totalPage)
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("Failed to read text of page %d: %v", pageIndex, err)
			continue
		}

		var textBuilder strings.Builder
		for _, row := range rows {
			textBuilder.WriteString(joinRow(row.Content))
			textBuilder.WriteString("\n")
		}
		texts[pageIndex-1] = textBuilder.String()
	}
	return texts, nil
}

// joinRow rebuilds a printed line from positioned runs, inserting a space wherever the gap
// to the previous run is wider than a fraction of the font size.
func joinRow(runs []pdf.Text) string {
	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			gap := t.X - (prev.X + prev.W)
			if gap > prev.FontSize*0.2 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}
