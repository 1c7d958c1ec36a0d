package service

import (
	"fmt"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/utils/invoice"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of the exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService renders extraction results as XLSX workbooks.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Workbook renders any extraction result.
func (s *ExportService) Workbook(result interface{}) ([]byte, string, error) {
	switch v := result.(type) {
	case *dto.StatementResponse:
		b, err := s.BankStatementXLSX(v.Transactions)
		return b, "movimientos_export.xlsx", err
	case *dto.InvoiceResponse:
		b, err := s.InvoiceXLSX(v.Invoice)
		return b, "factura_export.xlsx", err
	case *dto.PilaResponse:
		b, err := s.PilaXLSX(v.Records)
		return b, "pila_export.xlsx", err
	}
	return nil, "", fmt.Errorf("no workbook layout for %T", result)
}

// InvoiceXLSX writes the parties to an "Info" sheet and the line items to an "Items" sheet.
func (s *ExportService) InvoiceXLSX(inv dto.Invoice) ([]byte, error) {
	info := [][]interface{}{
		{"Vendedor", inv.Seller.Name, inv.Seller.TaxID},
		{"Comprador", inv.Buyer.Name, inv.Buyer.TaxID},
	}

	items := make([][]interface{}, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, []interface{}{
			it.Number, it.Code, it.Description, it.Unit,
			it.Quantity.Float64(), it.UnitPrice.Float64(), it.Discount.Float64(), it.Surcharge.Float64(),
			it.VAT.Float64(), it.VATRate.Float64(), it.INC.Float64(), it.INCRate.Float64(),
			it.Total.Float64(),
		})
	}

	return build([]sheetData{
		{name: "Info", headers: headerRow([]string{"Tipo", "Razón Social", "NIT"}), rows: info, widths: []float64{14, 40, 18}},
		{name: "Items", headers: headerRow(invoice.ItemHeaders), rows: items, widths: []float64{6, 12, 40}},
	})
}

// BankStatementXLSX writes one row per transaction.
func (s *ExportService) BankStatementXLSX(rows []dto.TransactionRow) ([]byte, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.Date, r.Description, r.Amount.Float64(), string(r.Direction)})
	}
	return build([]sheetData{
		{name: "Movimientos", headers: headerRow([]string{"Fecha", "Descripción", "Valor", "Tipo"}), rows: data, widths: []float64{12, 48, 16, 10}},
	})
}

var pilaHeaders = []string{
	"No", "Tipo Documento", "Número Documento", "Nombre",
	"AFP", "Días Pensión", "IBC Pensión", "Tarifa Pensión", "Aporte Pensión",
	"EPS", "Días Salud", "IBC Salud", "Tarifa Salud", "Aporte Salud",
	"CCF", "Días CCF", "IBC CCF", "Tarifa CCF", "Aporte CCF",
	"ARL", "Días ARL", "IBC ARL", "Tarifa ARL", "Aporte ARL",
	"SENA", "ICBF", "Total",
}

// PilaXLSX writes one row per contributor, one column per record field.
func (s *ExportService) PilaXLSX(records []dto.PilaRecord) ([]byte, error) {
	data := make([][]interface{}, 0, len(records))
	for _, r := range records {
		row := []interface{}{r.No, r.DocumentType, r.DocumentNumber, r.Name}
		for _, c := range []dto.Contribution{r.Pension, r.Health, r.CompensationFund, r.OccupationalRisk} {
			row = append(row, c.Administrator, c.Days, c.IBC.Float64(), c.Rate.Float64(), c.Amount.Float64())
		}
		row = append(row, r.SENA.Float64(), r.ICBF.Float64(), r.Total.Float64())
		data = append(data, row)
	}
	return build([]sheetData{
		{name: "PILA", headers: headerRow(pilaHeaders), rows: data, widths: []float64{6, 10, 16, 36}},
	})
}

type sheetData struct {
	name    string
	headers []interface{}
	rows    [][]interface{}
	// widths apply to the leading columns
	widths []float64
}

func build(sheets []sheetData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sd := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sd.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sd.name); err != nil {
			return nil, err
		}

		if err := writeRow(f, sd.name, 1, sd.headers); err != nil {
			return nil, err
		}
		for r, row := range sd.rows {
			if err := writeRow(f, sd.name, r+2, row); err != nil {
				return nil, err
			}
		}
		for col, w := range sd.widths {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(sd.name, name, name, w); err != nil {
				return nil, fmt.Errorf("sheet %s column %s: %w", sd.name, name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

func headerRow(names []string) []interface{} {
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
