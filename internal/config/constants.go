// Package config provides centralized configuration and constants for the deepl-desktop application.
package config

import "time"

// API endpoints
const (
	DeepLFreeEndpoint = "https://api-free.deepl.com/v2"
	DeepLProEndpoint  = "https://api.deepl.com/v2"

	// DeepLFreeKeySuffix marks a free-tier authentication key.
	DeepLFreeKeySuffix = ":fx"

	// DeepLAuthScheme prefixes the key in the Authorization header.
	DeepLAuthScheme = "DeepL-Auth-Key"
)

// Batch settings
const (
	// MaxBatchTexts is the per-request text ceiling of POST /translate.
	MaxBatchTexts = 50

	// SubtitleChunkSize is how many captions are sent per translate call.
	SubtitleChunkSize = MaxBatchTexts
)

// Document polling
const (
	// PollIntervalCap bounds a single wait between status checks.
	PollIntervalCap = 5 * time.Second

	// PollIntervalDefault is used when the service omits seconds_remaining.
	PollIntervalDefault = 2 * time.Second

	// DownloadChunkSize is the buffer used to stream translated documents to disk.
	DownloadChunkSize = 8192
)

// Retry settings
const (
	// DefaultMaxRetries is the number of attempts made beyond the first.
	DefaultMaxRetries     = 3
	DefaultRetryDelayBase = time.Second
	DefaultBackoffFactor  = 2.0

	// MaxRetryAfter caps how long a Retry-After header may stall a retry.
	MaxRetryAfter = 30 * time.Second
)

// HTTP client settings
const (
	HTTPConnectTimeout      = 10 * time.Second
	HTTPReadTimeout         = 60 * time.Second
	HTTPMaxIdleConns        = 10
	HTTPMaxIdleConnsPerHost = 10
	HTTPIdleConnTimeout     = 90 * time.Second
)

// OCR settings
const (
	DefaultOCRLanguages = "eng+ind"
	TesseractBinary     = "tesseract"
	ExecTimeoutOCR      = 2 * time.Minute

	// MaxConcurrentOCR bounds simultaneous tesseract processes.
	MaxConcurrentOCR = 2
)

// WindowsTesseractPaths are the usual install locations checked when tesseract is not on PATH.
var WindowsTesseractPaths = []string{
	`C:\Program Files\Tesseract-OCR\tesseract.exe`,
	`C:\Program Files (x86)\Tesseract-OCR\tesseract.exe`,
	`C:\Tesseract-OCR\tesseract.exe`,
}

// Default languages
const (
	DefaultTargetLang = "ID"
)

// TargetLanguages are the DeepL target codes offered in the language pickers.
var TargetLanguages = []string{"ID", "EN-US", "EN-GB", "DE", "FR", "ES", "IT", "JA", "ZH", "RU", "PT-BR", "PT-PT"}
