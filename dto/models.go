package dto

import (
	"strings"

	"github.com/Aashish23092/ledger-extraction/utils/money"
)

type DocumentType string

const (
	DocTypeBankStatement DocumentType = "bank_statement"
	DocTypeInvoice       DocumentType = "invoice"
	DocTypePila          DocumentType = "pila"
)

// RawTable is a table as the extraction layer hands it over: rows of cell strings,
// header first. Cells may be empty or carry embedded line breaks.
type RawTable [][]string

// Header returns the first row, or nil for an empty table.
func (t RawTable) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Page is one page of extracted content. Number is 1-based.
type Page struct {
	Number int
	Text   string
	Tables []RawTable
}

// Document is everything the extraction layer produced for one uploaded file.
type Document struct {
	Filename string
	Pages    []Page
}

// Text joins the page texts in page order.
func (d Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n")
}

// Direction tells incoming from outgoing funds.
type Direction string

const (
	Entrada Direction = "Entrada"
	Salida  Direction = "Salida"
)

// TransactionRow is one ledger line. Amount is always a magnitude; the sign lives in
// Direction.
type TransactionRow struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      money.Value `json:"amount"`
	Direction   Direction   `json:"direction"`
}

// NewSignedTransaction classifies a signed amount: zero and positive are Entrada.
func NewSignedTransaction(date, description string, amount money.Value) TransactionRow {
	dir := Entrada
	if amount.IsNegative() {
		dir = Salida
	}
	return TransactionRow{
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Direction:   dir,
	}
}

type InvoiceParty struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// InvoiceItem mirrors the 13-column item table of the electronic invoice.
type InvoiceItem struct {
	Number      string      `json:"number"`
	Code        string      `json:"code"`
	Description string      `json:"description"`
	Unit        string      `json:"unit"`
	Quantity    money.Value `json:"quantity"`
	UnitPrice   money.Value `json:"unit_price"`
	Discount    money.Value `json:"discount"`
	Surcharge   money.Value `json:"surcharge"`
	VAT         money.Value `json:"vat"`
	VATRate     money.Value `json:"vat_rate"`
	INC         money.Value `json:"inc"`
	INCRate     money.Value `json:"inc_rate"`
	Total       money.Value `json:"total"`
}

type Invoice struct {
	Seller InvoiceParty  `json:"seller"`
	Buyer  InvoiceParty  `json:"buyer"`
	Items  []InvoiceItem `json:"items"`
}

// Contribution is one PILA subsystem block (pension, health, compensation fund, risk).
type Contribution struct {
	Administrator string      `json:"administrator"`
	Days          int         `json:"days"`
	IBC           money.Value `json:"ibc"`
	Rate          money.Value `json:"rate"`
	Amount        money.Value `json:"amount"`
}

// PilaRecord is one contributor row of a PILA payroll contribution report.
type PilaRecord struct {
	No               string       `json:"no"`
	DocumentType     string       `json:"document_type"`
	DocumentNumber   string       `json:"document_number"`
	Name             string       `json:"name"`
	Pension          Contribution `json:"pension"`
	Health           Contribution `json:"health"`
	CompensationFund Contribution `json:"compensation_fund"`
	OccupationalRisk Contribution `json:"occupational_risk"`
	SENA             money.Value  `json:"sena"`
	ICBF             money.Value  `json:"icbf"`
	Total            money.Value  `json:"total"`
}
