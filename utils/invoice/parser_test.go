package invoice

import (
	"testing"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoiceText = `Factura Electrónica de Venta FE-1043
Datos del Emisor / Vendedor
Razón Social: DISTRIBUIDORA ANDINA S.A.S.
Nit del Emisor: 900123456-7
Datos del Adquiriente / Comprador
Nombre o Razón Social: FERRETERIA EL PROGRESO LTDA
Tipo de Documento: NIT
Número Documento: 800765432
Forma de pago: Contado`

func itemTable() dto.RawTable {
	return dto.RawTable{
		{"Nro", "Código", "Descripción", "U/M", "Cantidad", "Precio", "Descuento", "Recargo", "IVA", "IVA", "INC", "INC", "Total"},
		{"", "", "", "", "", "unitario", "", "", "", "%", "", "%", "Item"},
		{"1", "A-100", "TORNILLO\nHEXAGONAL 1/2", "UND", "100,00", "1.250,00", "0,00", "0,00", "23.750,00", "19,00", "0,00", "0,00", "148.750,00"},
		{"", "", "", "", "", "", "", "", "", "", "", "", ""},
		{"2", "B-200", "CEMENTO GRIS", "BTO", "5", "32.500,50", "", "", "30.875,48", "19", "", "", "193.378,00"},
		{"3", "C-300", "ROTO", "UND", "abc", "1", "", "", "", "", "", "", "1"},
	}
}

func TestParseParties(t *testing.T) {
	seller, buyer := ParseParties(invoiceText)

	assert.Equal(t, dto.InvoiceParty{Name: "DISTRIBUIDORA ANDINA S.A.S.", TaxID: "900123456-7"}, seller)
	assert.Equal(t, dto.InvoiceParty{Name: "FERRETERIA EL PROGRESO LTDA", TaxID: "800765432"}, buyer)
}

func TestParsePartiesNeedsNameAndID(t *testing.T) {
	seller, buyer := ParseParties("Razón Social: SOLO NOMBRE\n")
	assert.Empty(t, seller)
	assert.Empty(t, buyer)
}

func TestParsePartiesCRLF(t *testing.T) {
	text := "Razón Social: ACME\r\nNit del Emisor: 123\r\n"
	seller, _ := ParseParties(text)
	assert.Equal(t, "ACME", seller.Name)
	assert.Equal(t, "123", seller.TaxID)
}

func TestParseItems(t *testing.T) {
	pages := []dto.Page{
		{Number: 2, Tables: []dto.RawTable{{{"otra"}, {"tabla"}, {"x"}}}},
		{Number: 1, Tables: []dto.RawTable{itemTable(), {{"ignored"}}}},
	}

	items := ParseItems(pages)
	require.Len(t, items, 2, "blank and unreadable rows are skipped")

	first := items[0]
	assert.Equal(t, "1", first.Number)
	assert.Equal(t, "TORNILLO HEXAGONAL 1/2", first.Description)
	assert.Equal(t, "100", first.Quantity.String())
	assert.Equal(t, "1250", first.UnitPrice.String())
	assert.Equal(t, "19", first.VATRate.String())
	assert.Equal(t, "148750", first.Total.String())

	second := items[1]
	assert.Equal(t, "32500.50", second.UnitPrice.String())
	assert.True(t, second.Discount.IsZero())
	assert.Equal(t, "30875.48", second.VAT.String())
}

func TestParseItemShortRow(t *testing.T) {
	item, err := ParseItem([]string{"7", "Z", "SERVICIO"})
	require.NoError(t, err)
	assert.Equal(t, "SERVICIO", item.Description)
	assert.True(t, item.Total.IsZero())
}

func TestParse(t *testing.T) {
	doc := dto.Document{
		Filename: "fe-1043.pdf",
		Pages:    []dto.Page{{Number: 1, Text: invoiceText, Tables: []dto.RawTable{itemTable()}}},
	}

	inv, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "900123456-7", inv.Seller.TaxID)
	assert.Len(t, inv.Items, 2)
}

func TestParseNothingFound(t *testing.T) {
	_, err := Parse(dto.Document{Filename: "blank.pdf", Pages: []dto.Page{{Number: 1, Text: "hola"}}})
	assert.ErrorIs(t, err, dto.ErrNoInvoiceData)
}
