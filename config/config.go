package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	ServerPort string
	GinMode    string
	// MaxFileSize caps an upload request body in bytes.
	MaxFileSize int64
	// KeywordsFile overrides the embedded ledger header vocabulary when set.
	KeywordsFile string
	// TableMinConfidence is the table detector's acceptance threshold (0-1).
	TableMinConfidence float64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = "release"
	}

	maxUploadMB := int64(32)
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUploadMB = n
		} else {
			log.Printf("Ignoring invalid MAX_UPLOAD_MB=%q", v)
		}
	}

	minConfidence := 0.5
	if v := os.Getenv("TABLE_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			minConfidence = f
		} else {
			log.Printf("Ignoring invalid TABLE_MIN_CONFIDENCE=%q", v)
		}
	}

	return &Config{
		ServerPort:         serverPort,
		GinMode:            ginMode,
		MaxFileSize:        maxUploadMB << 20,
		KeywordsFile:       os.Getenv("KEYWORDS_FILE"),
		TableMinConfidence: minConfidence,
	}
}
