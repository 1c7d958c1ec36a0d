package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Aashish23092/ledger-extraction/dto"
	"github.com/Aashish23092/ledger-extraction/service"

	"github.com/gin-gonic/gin"
)

// Extractor is the part of the extraction service the handler depends on.
type Extractor interface {
	Process(ctx context.Context, req *dto.ExtractionRequest) (interface{}, error)
}

type ExtractionHandler struct {
	extractor Extractor
	exporter  *service.ExportService
}

func NewExtractionHandler(extractor Extractor, exporter *service.ExportService) *ExtractionHandler {
	return &ExtractionHandler{
		extractor: extractor,
		exporter:  exporter,
	}
}

// ExtractStatement handles POST /statements/extract
func (h *ExtractionHandler) ExtractStatement(c *gin.Context) {
	h.extract(c, dto.DocTypeBankStatement)
}

// ExtractInvoice handles POST /invoices/extract
func (h *ExtractionHandler) ExtractInvoice(c *gin.Context) {
	h.extract(c, dto.DocTypeInvoice)
}

// ExtractPila handles POST /pila/extract
func (h *ExtractionHandler) ExtractPila(c *gin.Context) {
	h.extract(c, dto.DocTypePila)
}

func (h *ExtractionHandler) extract(c *gin.Context, docType dto.DocumentType) {
	requestID := c.GetString(requestIDKey)
	log.Printf("[%s] Received %s extraction request", requestID, docType)

	file, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.sendError(c, http.StatusRequestEntityTooLarge, "File too large", err)
		return
	}
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	request := &dto.ExtractionRequest{
		File:     file,
		Password: c.PostForm("password"),
		DocType:  docType,
		Format:   c.DefaultQuery("format", c.PostForm("format")),
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("[%s] Processing %s (%d bytes)", requestID, file.Filename, file.Size)

	result, err := h.extractor.Process(c.Request.Context(), request)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to extract document", err)
		return
	}

	if request.WantsSpreadsheet() {
		data, filename, err := h.exporter.Workbook(result)
		if err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to build workbook", err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, service.XLSXContentType, data)
		return
	}

	log.Printf("[%s] Extraction of %s completed successfully", requestID, file.Filename)
	c.JSON(http.StatusOK, result)
}

// statusFor maps extraction errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrNoTransactionsFound),
		errors.Is(err, dto.ErrUnrecognizedLayout),
		errors.Is(err, dto.ErrNoInvoiceData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dto.ErrUnsupportedFile),
		errors.Is(err, dto.ErrUnknownDocumentType),
		errors.Is(err, dto.ErrDecryptionFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends a structured error response
func (h *ExtractionHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("[%s] Error: %s - %v", c.GetString(requestIDKey), message, err)
	}

	code := "INTERNAL_ERROR"
	switch statusCode {
	case http.StatusBadRequest:
		code = "INVALID_REQUEST"
	case http.StatusUnprocessableEntity:
		code = "EXTRACTION_FAILED"
	case http.StatusRequestEntityTooLarge:
		code = "FILE_TOO_LARGE"
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
