package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// ExtractionRequest represents the incoming upload
type ExtractionRequest struct {
	File     *multipart.FileHeader
	Password string
	DocType  DocumentType
	Format   string
}

// Validate performs basic validation on the request
func (r *ExtractionRequest) Validate() error {
	if r.File == nil {
		return fmt.Errorf("file is required")
	}

	ext := strings.ToLower(filepath.Ext(r.File.Filename))
	switch {
	case ext == ".pdf":
	case (ext == ".xlsx" || ext == ".xls") && r.DocType == DocTypeBankStatement:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}

	if r.Format != "" && r.Format != "json" && r.Format != "xlsx" {
		return fmt.Errorf("invalid format %q. Supported: json, xlsx", r.Format)
	}
	return nil
}

// WantsSpreadsheet reports whether the caller asked for an xlsx attachment
func (r *ExtractionRequest) WantsSpreadsheet() bool {
	return r.Format == "xlsx"
}
