package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetLoader reads statement exports (.xlsx, .xls) into the same page/table shape the
// PDF processor produces: one page per sheet, the whole sheet as that page's only table.
type SpreadsheetLoader struct{}

func NewSpreadsheetLoader() *SpreadsheetLoader {
	return &SpreadsheetLoader{}
}

func (l *SpreadsheetLoader) Load(filename string, data []byte) (dto.Document, error) {
	var (
		sheets []dto.RawTable
		err    error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		sheets, err = l.loadXLSX(data)
	case ".xls":
		sheets, err = l.loadXLS(data)
	default:
		return dto.Document{}, fmt.Errorf("%w: %s", dto.ErrUnsupportedFile, filename)
	}
	if err != nil {
		return dto.Document{}, err
	}

	doc := dto.Document{Filename: filename}
	for i, rows := range sheets {
		doc.Pages = append(doc.Pages, dto.Page{
			Number: i + 1,
			Text:   sheetText(rows),
			Tables: []dto.RawTable{skipTitleRows(rows)},
		})
	}
	return doc, nil
}

func (l *SpreadsheetLoader) loadXLSX(data []byte) ([]dto.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	var sheets []dto.RawTable
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		sheets = append(sheets, rows)
	}
	return sheets, nil
}

func (l *SpreadsheetLoader) loadXLS(data []byte) ([]dto.RawTable, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open xls: %w", err)
	}

	var sheets []dto.RawTable
	for s := 0; s < book.NumSheets(); s++ {
		sheet := book.GetSheet(s)
		if sheet == nil {
			continue
		}
		var rows dto.RawTable
		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := range cells {
				cells[c] = row.Col(c)
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, rows)
	}
	return sheets, nil
}

// skipTitleRows drops rows above the header that fill fewer than two cells. Exports carry
// the bank name and account number there.
func skipTitleRows(rows dto.RawTable) dto.RawTable {
	for i, row := range rows {
		filled := 0
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				filled++
			}
		}
		if filled >= 2 {
			return rows[i:]
		}
	}
	return rows
}

func sheetText(rows dto.RawTable) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, " "))
		b.WriteString("\n")
	}
	return b.String()
}
