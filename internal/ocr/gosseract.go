//go:build gosseract

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"deepl-desktop/internal/limiter"
)

// GosseractEngine calls libtesseract in-process. One client is created per
// call because gosseract clients are not safe for concurrent use.
type GosseractEngine struct{}

func defaultEngine(string) Engine {
	return GosseractEngine{}
}

func (GosseractEngine) RecognizeBytes(ctx context.Context, data []byte, langs string) (string, error) {
	return recognize(ctx, langs, func(c *gosseract.Client) error {
		return c.SetImageFromBytes(data)
	})
}

func (GosseractEngine) RecognizeFile(ctx context.Context, path, langs string) (string, error) {
	return recognize(ctx, langs, func(c *gosseract.Client) error {
		return c.SetImage(path)
	})
}

func recognize(ctx context.Context, langs string, setImage func(*gosseract.Client) error) (string, error) {
	if err := limiter.AcquireOCRSlot(ctx); err != nil {
		return "", err
	}
	defer limiter.ReleaseOCRSlot()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(langs, "+")...); err != nil {
		return "", fmt.Errorf("%w: language %q: %v", ErrEngineMissing, langs, err)
	}
	if err := setImage(client); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", setupError(err)
	}
	return text, nil
}

// setupError maps libtesseract initialization failures, such as missing
// tessdata or language packs, to ErrEngineMissing.
func setupError(err error) error {
	if strings.Contains(err.Error(), "TessBaseAPI") {
		return fmt.Errorf("%w: %v", ErrEngineMissing, err)
	}
	return err
}
