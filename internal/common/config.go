package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	OCR      OCRConfig
	LLM      LLMConfig
	Import   ImportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver           string
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	PDFToTextBin     string
	PDFToPPMBin      string
	TesseractBin     string
	Language         string
	DPI              int
	TessdataDir      string
	ArtifactCacheDir string
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// ImportConfig holds the import queue knobs
type ImportConfig struct {
	MaxBatchFiles     int
	Workers           int
	MinDraftFields    int
	MaxWarnings       int
	TripDestination   string
	AllowedExtensions []string
	WatchDir          string
	SkipHidden        bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:           getEnv("DB_DRIVER", "sqlite"),
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		OCR: OCRConfig{
			PDFToTextBin:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			PDFToPPMBin:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractBin:     getEnv("TESSERACT_BIN", "tesseract"),
			Language:         getEnv("OCR_LANG", "por+eng"),
			DPI:              getEnvAsInt("OCR_DPI", 300),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", "./tmp"),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Import: ImportConfig{
			MaxBatchFiles:     getEnvAsInt("IMPORT_MAX_BATCH_FILES", 5),
			Workers:           getEnvAsInt("IMPORT_WORKERS", 3),
			MinDraftFields:    getEnvAsInt("IMPORT_MIN_DRAFT_FIELDS", 2),
			MaxWarnings:       getEnvAsInt("IMPORT_MAX_WARNINGS", 5),
			TripDestination:   getEnv("TRIP_DESTINATION", ""),
			AllowedExtensions: getEnvAsList("IMPORT_ALLOWED_EXTS", []string{"pdf", "jpg", "jpeg", "png", "txt", "eml"}),
			WatchDir:          getEnv("IMPORT_WATCH_DIR", ""),
			SkipHidden:        getEnvAsBool("IMPORT_SKIP_HIDDEN", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if c.Database.DSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres driver", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "DB_DRIVER must be sqlite or postgres", ErrInvalidInput)
	}
	if c.Import.MaxBatchFiles <= 0 {
		return NewAppError("CONFIG_ERROR", "IMPORT_MAX_BATCH_FILES must be positive", ErrInvalidInput)
	}
	if c.Import.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "IMPORT_WORKERS must be positive", ErrInvalidInput)
	}
	if c.Import.MinDraftFields < 0 {
		return NewAppError("CONFIG_ERROR", "IMPORT_MIN_DRAFT_FIELDS must not be negative", ErrInvalidInput)
	}
	if c.Import.MaxWarnings <= 0 {
		return NewAppError("CONFIG_ERROR", "IMPORT_MAX_WARNINGS must be positive", ErrInvalidInput)
	}
	if c.LLM.APIKey != "" && c.LLM.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_BASE_URL is required when OPENAI_API_KEY is set", ErrInvalidInput)
	}
	return nil
}
