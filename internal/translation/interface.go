// Package translation provides interfaces and helpers shared by translation backends.
package translation

import (
	"context"
	"errors"
	"fmt"
)

// ProgressCallback is called during translation to report progress.
type ProgressCallback func(current, total int)

// ErrBatchTooLarge is returned when a batch exceeds the backend's per-request ceiling.
var ErrBatchTooLarge = errors.New("too many texts in one translation request")

// BatchTranslator translates an ordered batch of texts in a single request.
// The result has the same length and order as texts. Callers keep batches
// at or below the backend's ceiling.
type BatchTranslator interface {
	TranslateTexts(ctx context.Context, texts []string, targetLang string) ([]string, error)
}

// DocumentTranslator converts a whole document remotely and writes the result to outputPath.
type DocumentTranslator interface {
	TranslateDocument(ctx context.Context, inputPath, targetLang, outputPath string) error
}

// Chunk splits texts into consecutive groups of at most size entries.
// Concatenating the groups yields texts again.
func Chunk(texts []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	chunks := make([][]string, 0, (len(texts)+size-1)/size)
	for i := 0; i < len(texts); i += size {
		end := i + size
		if end > len(texts) {
			end = len(texts)
		}
		chunks = append(chunks, texts[i:end])
	}
	return chunks
}

// TranslateChunked sends texts through t in chunks of size, one request per
// chunk in order, and returns the concatenated results. The first failing
// chunk aborts the whole call and nothing is returned.
func TranslateChunked(ctx context.Context, t BatchTranslator, texts []string, targetLang string, size int, onProgress ProgressCallback) ([]string, error) {
	result := make([]string, 0, len(texts))
	done := 0
	for i, chunk := range Chunk(texts, size) {
		translated, err := t.TranslateTexts(ctx, chunk, targetLang)
		if err != nil {
			return nil, &ChunkError{Chunk: i + 1, Err: err}
		}
		if len(translated) != len(chunk) {
			return nil, &ChunkError{Chunk: i + 1, Err: errors.New("translation count does not match input")}
		}
		result = append(result, translated...)
		done += len(chunk)
		if onProgress != nil {
			onProgress(done, len(texts))
		}
	}
	return result, nil
}

// ChunkError identifies the 1-based chunk that failed in TranslateChunked.
type ChunkError struct {
	Chunk int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("batch %d: %v", e.Chunk, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }
