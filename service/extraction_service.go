package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/utils/invoice"
	"github.com/Aashish23092/ledger-extraction/utils/ledger"
	"github.com/Aashish23092/ledger-extraction/utils/money"
	"github.com/Aashish23092/ledger-extraction/utils/pila"
	"github.com/Aashish23092/ledger-extraction/utils/textpattern"
)

// Strategy is one way of pulling transactions out of a bank statement.
type Strategy int

const (
	// StrategyTables classifies extracted tables and infers their column roles.
	StrategyTables Strategy = iota
	// StrategyText runs the line grammars over the page text.
	StrategyText
)

func (s Strategy) String() string {
	if s == StrategyText {
		return "text"
	}
	return "tables"
}

// statementStrategies is the priority order for bank statements.
var statementStrategies = []Strategy{StrategyTables, StrategyText}

type ExtractionService struct {
	pdfProcessor PDFProcessor
	spreadsheets *SpreadsheetLoader
	classifier   *ledger.Classifier
}

func NewExtractionService(
	pdfProcessor PDFProcessor,
	spreadsheets *SpreadsheetLoader,
	classifier *ledger.Classifier,
) *ExtractionService {
	return &ExtractionService{
		pdfProcessor: pdfProcessor,
		spreadsheets: spreadsheets,
		classifier:   classifier,
	}
}

// Process reads the uploaded file and runs the extractor for the requested document type.
// The result is a *dto.StatementResponse, *dto.InvoiceResponse or *dto.PilaResponse.
func (s *ExtractionService) Process(ctx context.Context, req *dto.ExtractionRequest) (interface{}, error) {
	f, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", req.File.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", req.File.Filename, err)
	}

	doc, err := s.LoadDocument(req.File.Filename, data, req.Password)
	if err != nil {
		return nil, err
	}
	logf(ctx, "Loaded %s: %d pages", doc.Filename, len(doc.Pages))

	switch req.DocType {
	case dto.DocTypeBankStatement:
		return s.ExtractBankStatement(ctx, doc)
	case dto.DocTypeInvoice:
		return s.ExtractInvoice(ctx, doc)
	case dto.DocTypePila:
		return s.ExtractPila(ctx, doc)
	}
	return nil, fmt.Errorf("%w: %s", dto.ErrUnknownDocumentType, req.DocType)
}

// LoadDocument dispatches on the file extension.
func (s *ExtractionService) LoadDocument(filename string, data []byte, password string) (dto.Document, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		doc, err := s.pdfProcessor.ExtractDocument(data, password)
		if err != nil {
			return dto.Document{}, fmt.Errorf("failed to process PDF %s: %w", filename, err)
		}
		doc.Filename = filename
		return doc, nil
	case ".xlsx", ".xls":
		return s.spreadsheets.Load(filename, data)
	}
	return dto.Document{}, fmt.Errorf("%w: %s", dto.ErrUnsupportedFile, filename)
}

// ExtractBankStatement tries each strategy in priority order and keeps the first that
// yields rows.
func (s *ExtractionService) ExtractBankStatement(ctx context.Context, doc dto.Document) (*dto.StatementResponse, error) {
	for _, strategy := range statementStrategies {
		rows, label, err := s.attempt(strategy, doc)
		if err != nil {
			logf(ctx, "Strategy %s found nothing in %s: %v", strategy, doc.Filename, err)
			continue
		}
		logf(ctx, "Strategy %s extracted %d transactions from %s", label, len(rows), doc.Filename)

		in, out := totals(rows)
		return &dto.StatementResponse{
			Filename:     doc.Filename,
			Strategy:     label,
			Transactions: rows,
			TotalIn:      in.String(),
			TotalOut:     out.String(),
			ProcessedAt:  time.Now().Format(time.RFC3339),
		}, nil
	}
	return nil, fmt.Errorf("%w in %s", dto.ErrNoTransactionsFound, doc.Filename)
}

func (s *ExtractionService) attempt(strategy Strategy, doc dto.Document) ([]dto.TransactionRow, string, error) {
	switch strategy {
	case StrategyTables:
		rows, err := s.classifier.ExtractRows(doc.Pages)
		return rows, strategy.String(), err
	case StrategyText:
		grammar, rows, err := textpattern.Match(doc.Text())
		return rows, grammar.String(), err
	}
	return nil, "", errors.New("unknown strategy")
}

func (s *ExtractionService) ExtractInvoice(ctx context.Context, doc dto.Document) (*dto.InvoiceResponse, error) {
	inv, err := invoice.Parse(doc)
	if err != nil {
		return nil, err
	}
	logf(ctx, "Invoice %s: %d items", doc.Filename, len(inv.Items))
	return &dto.InvoiceResponse{
		Filename:    doc.Filename,
		Invoice:     inv,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, nil
}

func (s *ExtractionService) ExtractPila(ctx context.Context, doc dto.Document) (*dto.PilaResponse, error) {
	res, err := pila.MapTables(doc.Pages)
	for _, rowErr := range res.Failed {
		logf(ctx, "Dropped PILA row in %s: %v", doc.Filename, rowErr)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Filename, err)
	}
	logf(ctx, "PILA %s: %d records", doc.Filename, len(res.Records))
	return &dto.PilaResponse{
		Filename:    doc.Filename,
		Records:     res.Records,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, nil
}

func totals(rows []dto.TransactionRow) (in, out money.Value) {
	var credits, debits []money.Value
	for _, r := range rows {
		if r.Direction == dto.Entrada {
			credits = append(credits, r.Amount)
		} else {
			debits = append(debits, r.Amount)
		}
	}
	return money.Sum(credits...), money.Sum(debits...)
}

type requestIDKey struct{}

// WithRequestID tags ctx so service log lines can be matched to a request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func logf(ctx context.Context, format string, args ...interface{}) {
	if id := RequestIDFromContext(ctx); id != "" {
		format = "[" + id + "] " + format
	}
	log.Printf(format, args...)
}
