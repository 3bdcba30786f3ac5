//go:build gosseract

package ocr

import (
	"context"
	"errors"
	"image"
	"testing"
)

func TestSetupError(t *testing.T) {
	initErr := errors.New("failed to initialize TessBaseAPI with code -1: Failed loading language 'xyz'")
	if err := setupError(initErr); !errors.Is(err, ErrEngineMissing) {
		t.Errorf("setupError(init failure) = %v, want ErrEngineMissing", err)
	}

	other := errors.New("image too small to scale")
	if err := setupError(other); errors.Is(err, ErrEngineMissing) || err != other {
		t.Errorf("setupError(other) = %v, want it unchanged", err)
	}
}

func TestGosseractEngine_MissingLanguagePack(t *testing.T) {
	x := newTestExtractor(t, GosseractEngine{})
	_, err := x.Extract(context.Background(), image.NewGray(image.Rect(0, 0, 32, 32)), "zz-no-such-lang")
	if !errors.Is(err, ErrEngineMissing) {
		t.Errorf("error = %v, want ErrEngineMissing", err)
	}
}
