package textpattern

import (
	"strings"
	"testing"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const styleAText = `EXTRACTO DE CUENTA
FECHA DESCRIPCION VALOR SALDO
01/02 ABONO NOMINA 2,500,000.00 2,800,000.00
03/02 COMPRA EN TIENDA -45,300.50 2,754,699.50
07/02 PAGO PSE -100,000.00 2,654,699.50
SALDO FINAL 2,654,699.50`

const styleBText = `Fecha Oficina Descripción Débitos Créditos
05 03 101 CONSIGNACION NACIONAL - 1.500.000,00
06 03 101 RETIRO CAJERO $ 200.000,00 $ 0,00
09 03 245 PAGO SERVICIOS 85.320,45 -
12 03 245 TRANSFERENCIA RECIBIDA 0,00 320.000,00
15 03 999 CUOTA MANEJO 12.500,00 -
Total movimientos`

func TestParseStyleA(t *testing.T) {
	rows := ParseStyleA(styleAText)
	require.Len(t, rows, 3)

	assert.Equal(t, "01/02", rows[0].Date)
	assert.Equal(t, "ABONO NOMINA", rows[0].Description)
	assert.Equal(t, "2500000", rows[0].Amount.String())
	assert.Equal(t, dto.Entrada, rows[0].Direction)

	assert.Equal(t, "45300.50", rows[1].Amount.String())
	assert.Equal(t, dto.Salida, rows[1].Direction)
	assert.Equal(t, dto.Salida, rows[2].Direction)
}

func TestParseStyleB(t *testing.T) {
	rows := ParseStyleB(styleBText)
	require.Len(t, rows, 5)

	assert.Equal(t, "05/03", rows[0].Date)
	assert.Equal(t, "CONSIGNACION NACIONAL", rows[0].Description)
	assert.Equal(t, "1500000", rows[0].Amount.String())
	assert.Equal(t, dto.Entrada, rows[0].Direction)

	assert.Equal(t, dto.Salida, rows[1].Direction)
	assert.Equal(t, "200000", rows[1].Amount.String())

	assert.Equal(t, "85320.45", rows[2].Amount.String())
	assert.Equal(t, dto.Salida, rows[2].Direction)

	assert.Equal(t, dto.Entrada, rows[3].Direction)
}

func TestStyleBDropsAmbiguousRows(t *testing.T) {
	rows := ParseStyleB("05 03 101 AJUSTE 1.000,00 2.000,00\n06 03 101 NADA - -\n")
	assert.Empty(t, rows)
}

func TestGrammarsKeepTheirOwnNumberFormat(t *testing.T) {
	// comma-decimal literals are not style A amounts even though they contain digits
	assert.Empty(t, ParseStyleA("01/02 ABONO 1.500,00 2.000,00"))
	// point-decimal literals are not style B amounts
	assert.Empty(t, ParseStyleB("05 03 101 ABONO 1,500.00 -"))
}

func TestMatchPicksLongerGrammar(t *testing.T) {
	text := styleAText + "\n\n" + styleBText

	grammar, rows, err := Match(text)
	require.NoError(t, err)
	assert.Equal(t, StyleB, grammar)
	assert.Len(t, rows, 5)
	assert.Equal(t, "CONSIGNACION NACIONAL", rows[0].Description)
}

func TestMatchTieGoesToStyleA(t *testing.T) {
	text := "01/02 ABONO 100.00 100.00\n\n05 03 101 ABONO 1.000,00 -"

	grammar, rows, err := Match(text)
	require.NoError(t, err)
	assert.Equal(t, StyleA, grammar)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].Amount.String())
}

func TestExtractNothingFound(t *testing.T) {
	_, err := Extract("Estimado cliente,\nsu extracto no tiene movimientos.")
	assert.ErrorIs(t, err, dto.ErrNoTransactionsFound)
}

func TestContinuationBeforeAmounts(t *testing.T) {
	text := "01/02 TRANSFERENCIA A\nJUAN PEREZ -150,000.00 1,200.00\n02/02 ABONO 10.00 1,210.00"

	rows := ParseStyleA(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "TRANSFERENCIA A JUAN PEREZ", rows[0].Description)
	assert.Equal(t, dto.Salida, rows[0].Direction)
	assert.Equal(t, "ABONO", rows[1].Description)
}

func TestContinuationAfterAmounts(t *testing.T) {
	text := "05 03 101 PAGO PSE 85.000,00 -\n   EMPRESA   DE ENERGIA\n06 03 101 ABONO - 10,00"

	rows := ParseStyleB(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "PAGO PSE EMPRESA DE ENERGIA", rows[0].Description)
	assert.Equal(t, "ABONO", rows[1].Description)
	assert.Equal(t, "10", rows[1].Amount.String())
}

func TestStopLineEndsRecord(t *testing.T) {
	text := "01/02 ABONO 10.00 20.00\nSaldo anterior 20.00\nPágina 1 de 2"

	rows := ParseStyleA(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABONO", rows[0].Description)
}

func TestWordStartingLikeStopTokenIsContinuation(t *testing.T) {
	text := "01/02 PAGO PSE -150,000.00 1,200.00\nTOTALGAS SA ESP\n02/02 ABONO 10.00 1,210.00"

	rows := ParseStyleA(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "PAGO PSE TOTALGAS SA ESP", rows[0].Description)
	assert.Equal(t, "ABONO", rows[1].Description)
}

func TestIsStopLine(t *testing.T) {
	for _, line := range []string{"Saldo anterior 20.00", "TOTAL: 1.210,00", "Página 1 de 2", "page 2"} {
		assert.True(t, isStopLine(line), line)
	}
	for _, line := range []string{"TOTALGAS SA ESP", "SALDOS A FAVOR", "FECHAS VARIAS", "PAGES LTDA"} {
		assert.False(t, isStopLine(line), line)
	}
}

func TestJoinContinuations(t *testing.T) {
	text := strings.Join([]string{
		"header line",
		"01/02 first",
		"wrapped",
		"",
		"orphan after blank",
		"02/02 second",
	}, "\n")

	recs := JoinContinuations(text, styleAAnchor)
	require.Len(t, recs, 2)
	assert.Equal(t, "01/02 first wrapped", recs[0].Joined())
	assert.Equal(t, "02/02 second", recs[1].Joined())
	assert.Empty(t, recs[1].Continuations)
}
