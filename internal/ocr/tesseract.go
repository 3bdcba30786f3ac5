package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"deepl-desktop/internal/config"
	"deepl-desktop/internal/limiter"
)

// lookPath is replaced in tests to simulate a missing binary.
var lookPath = exec.LookPath

// TesseractEngine runs the tesseract command line tool.
type TesseractEngine struct {
	cmd     string
	timeout time.Duration
}

// NewTesseractEngine creates an engine for the given binary. An empty cmd
// means auto-detect on first use.
func NewTesseractEngine(cmd string) *TesseractEngine {
	return &TesseractEngine{cmd: cmd, timeout: config.ExecTimeoutOCR}
}

// FindTesseract resolves the binary: the configured path first, then PATH,
// then the usual install locations on Windows.
func FindTesseract(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		if p, err := lookPath(configured); err == nil {
			return p, nil
		}
		return "", ErrEngineMissing
	}

	if p, err := lookPath(config.TesseractBinary); err == nil {
		return p, nil
	}
	if runtime.GOOS == "windows" {
		for _, p := range config.WindowsTesseractPaths {
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", ErrEngineMissing
}

// CheckInstalled reports ErrEngineMissing when no binary can be found.
func (e *TesseractEngine) CheckInstalled() error {
	_, err := FindTesseract(e.cmd)
	return err
}

// RecognizeBytes pipes data to tesseract on stdin.
func (e *TesseractEngine) RecognizeBytes(ctx context.Context, data []byte, langs string) (string, error) {
	return e.run(ctx, bytes.NewReader(data), "stdin", "stdout", "-l", langs)
}

// RecognizeFile passes path to tesseract directly.
func (e *TesseractEngine) RecognizeFile(ctx context.Context, path, langs string) (string, error) {
	return e.run(ctx, nil, path, "stdout", "-l", langs)
}

func (e *TesseractEngine) run(ctx context.Context, stdin *bytes.Reader, args ...string) (string, error) {
	bin, err := FindTesseract(e.cmd)
	if err != nil {
		return "", err
	}

	if err := limiter.AcquireOCRSlot(ctx); err != nil {
		return "", err
	}
	defer limiter.ReleaseOCRSlot()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", ErrEngineMissing
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return stdout.String(), nil
}
