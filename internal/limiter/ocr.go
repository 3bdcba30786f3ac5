// Package limiter provides global resource limiters for CPU-intensive operations.
package limiter

import (
	"context"

	"deepl-desktop/internal/config"
)

// ocrSemaphore limits how many tesseract processes run at once across the
// GUI and the CLI. Each OCR call starts a fresh process.
var ocrSemaphore = make(chan struct{}, config.MaxConcurrentOCR)

// AcquireOCRSlot blocks until an OCR slot is free or ctx is done.
func AcquireOCRSlot(ctx context.Context) error {
	select {
	case ocrSemaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseOCRSlot releases a slot taken by AcquireOCRSlot (use defer).
func ReleaseOCRSlot() {
	<-ocrSemaphore
}
