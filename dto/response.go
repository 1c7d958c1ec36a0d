package dto

import "errors"

// Custom errors
var (
	ErrNoTransactionsFound = errors.New("no transactions found")
	ErrUnrecognizedLayout  = errors.New("unrecognized layout")
	ErrNoInvoiceData       = errors.New("no invoice data found")
	ErrUnsupportedFile     = errors.New("unsupported file type")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrDecryptionFailed    = errors.New("could not decrypt PDF")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type StatementResponse struct {
	Filename     string           `json:"filename"`
	Strategy     string           `json:"strategy"`
	Transactions []TransactionRow `json:"transactions"`
	TotalIn      string           `json:"total_in"`
	TotalOut     string           `json:"total_out"`
	ProcessedAt  string           `json:"processed_at"`
}

type InvoiceResponse struct {
	Filename    string  `json:"filename"`
	Invoice     Invoice `json:"invoice"`
	ProcessedAt string  `json:"processed_at"`
}

type PilaResponse struct {
	Filename    string       `json:"filename"`
	Records     []PilaRecord `json:"records"`
	ProcessedAt string       `json:"processed_at"`
}
