//go:build !gosseract

package ocr

func defaultEngine(cmd string) Engine {
	return NewTesseractEngine(cmd)
}
