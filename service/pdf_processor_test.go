package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singlePagePDF builds a one-page PDF showing text in Helvetica.
func singlePagePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return b.Bytes()
}

func encrypted(t *testing.T, plain []byte, userPW string) []byte {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.UserPW = userPW
	conf.OwnerPW = "propietario"

	var out bytes.Buffer
	require.NoError(t, api.Encrypt(bytes.NewReader(plain), &out, conf))
	return out.Bytes()
}

func TestExtractDocumentPlainPDF(t *testing.T) {
	doc, err := NewPDFProcessor(nil).ExtractDocument(singlePagePDF("NOMINA"), "")
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, 1, doc.Pages[0].Number)
}

func TestExtractDocumentIgnoresPasswordForPlainPDF(t *testing.T) {
	doc, err := NewPDFProcessor(nil).ExtractDocument(singlePagePDF("NOMINA"), "1234")
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 1)
}

func TestExtractDocumentEncryptedPDF(t *testing.T) {
	data := encrypted(t, singlePagePDF("NOMINA"), "1234")

	doc, err := NewPDFProcessor(nil).ExtractDocument(data, "1234")
	require.NoError(t, err)
	assert.Len(t, doc.Pages, 1)

	for _, pw := range []string{"", "9999"} {
		_, err := NewPDFProcessor(nil).ExtractDocument(data, pw)
		assert.ErrorIs(t, err, dto.ErrDecryptionFailed, "password %q", pw)
		assert.NotErrorIs(t, err, dto.ErrUnsupportedFile)
	}
}

func TestExtractDocumentRejectsGarbage(t *testing.T) {
	_, err := NewPDFProcessor(nil).ExtractDocument([]byte("not a pdf"), "")
	assert.ErrorIs(t, err, dto.ErrUnsupportedFile)
}
