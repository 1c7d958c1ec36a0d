// Package invoice reads the parties and item table of a Colombian electronic invoice
// (the DIAN graphic representation).
package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/utils/money"
)

// ItemHeaders are the item table columns in print order.
var ItemHeaders = []string{
	"Nro", "Código", "Descripción", "U/M", "Cantidad", "Precio unitario",
	"Descuento", "Recargo", "IVA", "IVA %", "INC", "INC %", "Total Item",
}

// itemDataRow is the first data row; the header is printed over two rows.
const itemDataRow = 2

var (
	sellerNameRe  = regexp.MustCompile(`(?m)Razón Social:[ \t]*(.*)$`)
	sellerTaxIDRe = regexp.MustCompile(`(?m)Nit del Emisor:[ \t]*(.*)$`)
	buyerNameRe   = regexp.MustCompile(`(?m)Datos del Adquiriente / Comprador[ \t]*\r?\nNombre o Razón Social:[ \t]*(.*)$`)
	buyerTaxIDRe  = regexp.MustCompile(`(?m)Número Documento:[ \t]*(.*)$`)
)

// Parse reads an invoice from an extracted document.
func Parse(doc dto.Document) (dto.Invoice, error) {
	seller, buyer := ParseParties(doc.Text())
	inv := dto.Invoice{
		Seller: seller,
		Buyer:  buyer,
		Items:  ParseItems(doc.Pages),
	}
	if seller == (dto.InvoiceParty{}) && buyer == (dto.InvoiceParty{}) && len(inv.Items) == 0 {
		return dto.Invoice{}, fmt.Errorf("%w: %s", dto.ErrNoInvoiceData, doc.Filename)
	}
	return inv, nil
}

// ParseParties extracts seller and buyer. A party is only filled when both its name and its
// tax ID are present.
func ParseParties(text string) (seller, buyer dto.InvoiceParty) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	seller = party(text, sellerNameRe, sellerTaxIDRe)
	buyer = party(text, buyerNameRe, buyerTaxIDRe)
	return seller, buyer
}

func party(text string, nameRe, idRe *regexp.Regexp) dto.InvoiceParty {
	name := nameRe.FindStringSubmatch(text)
	id := idRe.FindStringSubmatch(text)
	if name == nil || id == nil {
		return dto.InvoiceParty{}
	}
	return dto.InvoiceParty{
		Name:  strings.TrimSpace(name[1]),
		TaxID: strings.TrimSpace(id[1]),
	}
}

// ParseItems reads the first table of the first page. Rows with an unreadable amount are
// skipped, as are blank rows.
func ParseItems(pages []dto.Page) []dto.InvoiceItem {
	if len(pages) == 0 {
		return nil
	}
	first := pages[0]
	for _, p := range pages[1:] {
		if p.Number < first.Number {
			first = p
		}
	}
	if len(first.Tables) == 0 || len(first.Tables[0]) <= itemDataRow {
		return nil
	}

	var items []dto.InvoiceItem
	for _, row := range first.Tables[0][itemDataRow:] {
		if blank(row) {
			continue
		}
		item, err := ParseItem(row)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}

// ParseItem maps one item row. Missing trailing cells read as empty.
func ParseItem(row []string) (dto.InvoiceItem, error) {
	r := cellReader{row: row}
	item := dto.InvoiceItem{
		Number:      r.text(0),
		Code:        r.text(1),
		Description: r.text(2),
		Unit:        r.text(3),
		Quantity:    r.amount(4),
		UnitPrice:   r.amount(5),
		Discount:    r.amount(6),
		Surcharge:   r.amount(7),
		VAT:         r.amount(8),
		VATRate:     r.rate(9),
		INC:         r.amount(10),
		INCRate:     r.rate(11),
		Total:       r.amount(12),
	}
	if r.err != nil {
		return dto.InvoiceItem{}, fmt.Errorf("item %q: %w", item.Number, r.err)
	}
	return item, nil
}

type cellReader struct {
	row []string
	err error
}

func (r *cellReader) raw(i int) string {
	if i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r *cellReader) text(i int) string {
	return strings.Join(strings.Fields(r.raw(i)), " ")
}

func (r *cellReader) amount(i int) money.Value {
	s := r.raw(i)
	if s == "" || r.err != nil {
		return money.FromInt(0)
	}
	v, err := money.Normalize(s)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", ItemHeaders[i], err)
		return money.FromInt(0)
	}
	return v
}

func (r *cellReader) rate(i int) money.Value {
	s := r.raw(i)
	if s == "" || r.err != nil {
		return money.FromInt(0)
	}
	d, err := money.ParseRate(s)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", ItemHeaders[i], err)
		return money.FromInt(0)
	}
	return d
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
