package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"deepl-desktop/internal/deepl"
	"deepl-desktop/internal/subtitle"
	"deepl-desktop/internal/translation"
)

// fakeBackend records calls and prefixes each text with the target language.
type fakeBackend struct {
	mu         sync.Mutex
	calls      [][]string
	failOnCall int // 1-based call number that fails, 0 = never
	usageErr   error
	usageCalls int
	docCalls   []string
	docErr     error
}

func (f *fakeBackend) TranslateTexts(_ context.Context, texts []string, targetLang string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), texts...))
	if f.failOnCall == len(f.calls) {
		return nil, &deepl.TranslationError{Err: errors.New("HTTP 456 Quota exceeded")}
	}
	out := make([]string, len(texts))
	for i, s := range texts {
		out[i] = "[" + targetLang + "] " + s
	}
	return out, nil
}

func (f *fakeBackend) TranslateDocument(_ context.Context, inputPath, targetLang, outputPath string) error {
	f.mu.Lock()
	f.docCalls = append(f.docCalls, inputPath)
	f.mu.Unlock()
	if f.docErr != nil {
		return f.docErr
	}
	return os.WriteFile(outputPath, []byte("translated "+targetLang), 0644)
}

func (f *fakeBackend) Usage(context.Context) (*deepl.Usage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usageCalls++
	if f.usageErr != nil {
		return nil, f.usageErr
	}
	return &deepl.Usage{CharacterCount: 10, CharacterLimit: 500000}, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func makeSRT(n int) string {
	subs := make(subtitle.List, n)
	for i := range subs {
		start := time.Duration(i) * 2 * time.Second
		subs[i] = subtitle.Subtitle{
			Index:     i + 1,
			StartTime: start,
			EndTime:   start + 1500*time.Millisecond,
			Text:      fmt.Sprintf("Line %d", i+1),
		}
	}
	return subtitle.FormatSRT(subs)
}

func TestOutputPath(t *testing.T) {
	dir := filepath.Join("home", "user", "docs")
	tests := []struct {
		input, lang, want string
	}{
		{filepath.Join(dir, "movie.srt"), "DE", filepath.Join(dir, "movie_DE.srt")},
		{filepath.Join(dir, "report.final.pdf"), "EN-US", filepath.Join(dir, "report.final_EN-US.pdf")},
		{filepath.Join(dir, "notes.TXT"), "ID", filepath.Join(dir, "notes_ID.TXT")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.input, tt.lang); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.lang, got, tt.want)
		}
	}
}

func TestSupportedExtensions(t *testing.T) {
	got := strings.Join(SupportedExtensions(), " ")
	if got != ".docx .pdf .srt .txt" {
		t.Errorf("SupportedExtensions() = %q", got)
	}
	if !IsSupported("A.SRT") || IsSupported("book.epub") {
		t.Error("IsSupported() mismatch")
	}
}

func TestTranslateFile_UnsupportedFormat(t *testing.T) {
	b := &fakeBackend{}
	s := NewTranslatorService(b)

	_, err := s.TranslateFile(context.Background(), writeFile(t, "book.epub", "x"), "DE")
	var fmtErr *UnsupportedFormatError
	if !errors.As(err, &fmtErr) || fmtErr.Ext != ".epub" {
		t.Fatalf("error = %v, want UnsupportedFormatError", err)
	}
	if b.usageCalls != 0 {
		t.Error("unsupported files must be rejected before contacting the service")
	}
}

func TestTranslateFile_InvalidKey(t *testing.T) {
	b := &fakeBackend{usageErr: errors.New("HTTP 403 Forbidden")}
	s := NewTranslatorService(b)

	in := writeFile(t, "a.txt", "hello")
	_, err := s.TranslateFile(context.Background(), in, "DE")
	if err == nil || !strings.Contains(err.Error(), "invalid API key") {
		t.Fatalf("error = %v", err)
	}
	if len(b.calls) != 0 {
		t.Error("no translation after failed key check")
	}
	if _, err := os.Stat(OutputPath(in, "DE")); !os.IsNotExist(err) {
		t.Error("no output expected")
	}
}

func TestTranslateFile_Text(t *testing.T) {
	b := &fakeBackend{}
	s := NewTranslatorService(b)

	content := "First paragraph.\n\nSecond paragraph."
	in := writeFile(t, "letter.txt", content)

	out, err := s.TranslateFile(context.Background(), in, "FR")
	if err != nil {
		t.Fatalf("TranslateFile() error = %v", err)
	}
	if out != OutputPath(in, "FR") {
		t.Errorf("output = %q", out)
	}
	if len(b.calls) != 1 || len(b.calls[0]) != 1 || b.calls[0][0] != content {
		t.Errorf("text file should be sent as one text, got %q", b.calls)
	}
	data, _ := os.ReadFile(out)
	if string(data) != "[FR] "+content {
		t.Errorf("output content = %q", data)
	}
}

func TestTranslateSubtitleFile_Batches(t *testing.T) {
	b := &fakeBackend{}
	s := NewTranslatorService(b)

	var percents []int
	s.SetProgressCallback(func(stage string, percent int, message string) {
		percents = append(percents, percent)
	})

	in := writeFile(t, "episode.srt", makeSRT(51))
	out, err := s.TranslateFile(context.Background(), in, "DE")
	if err != nil {
		t.Fatalf("TranslateFile() error = %v", err)
	}

	if len(b.calls) != 2 || len(b.calls[0]) != 50 || len(b.calls[1]) != 1 {
		sizes := make([]int, len(b.calls))
		for i, c := range b.calls {
			sizes[i] = len(c)
		}
		t.Fatalf("batch sizes = %v, want [50 1]", sizes)
	}

	orig, _ := subtitle.ParseSRTString(makeSRT(51))
	got, err := subtitle.ParseSRTFile(out)
	if err != nil {
		t.Fatalf("output is not valid SRT: %v", err)
	}
	if len(got) != len(orig) {
		t.Fatalf("caption count = %d, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i].Index != orig[i].Index || got[i].StartTime != orig[i].StartTime || got[i].EndTime != orig[i].EndTime {
			t.Errorf("caption %d timing/index changed: %+v vs %+v", i, got[i], orig[i])
		}
		if got[i].Text != "[DE] "+orig[i].Text {
			t.Errorf("caption %d text = %q", i, got[i].Text)
		}
	}
	if len(percents) == 0 || percents[len(percents)-1] != 100 {
		t.Errorf("progress = %v, want to end at 100", percents)
	}
}

func TestTranslateSubtitleFile_SmallFileOneBatch(t *testing.T) {
	b := &fakeBackend{}
	s := NewTranslatorService(b)

	in := writeFile(t, "short.srt", makeSRT(3))
	if err := s.TranslateSubtitleFile(context.Background(), in, "ES", OutputPath(in, "ES")); err != nil {
		t.Fatal(err)
	}
	if len(b.calls) != 1 || len(b.calls[0]) != 3 {
		t.Errorf("calls = %v", b.calls)
	}
}

func TestTranslateSubtitleFile_FailureWritesNothing(t *testing.T) {
	b := &fakeBackend{failOnCall: 2}
	s := NewTranslatorService(b)

	in := writeFile(t, "episode.srt", makeSRT(120))
	_, err := s.TranslateFile(context.Background(), in, "DE")

	var chunkErr *translation.ChunkError
	if !errors.As(err, &chunkErr) {
		t.Fatalf("error = %v, want *translation.ChunkError", err)
	}
	var trErr *deepl.TranslationError
	if !errors.As(err, &trErr) {
		t.Errorf("error = %v, want wrapped *deepl.TranslationError", err)
	}
	if len(b.calls) != 2 {
		t.Errorf("calls = %d, want abort after the failing batch", len(b.calls))
	}
	if _, err := os.Stat(OutputPath(in, "DE")); !os.IsNotExist(err) {
		t.Error("output must not be written when a batch fails")
	}
}

func TestTranslateSubtitleFile_Malformed(t *testing.T) {
	b := &fakeBackend{}
	s := NewTranslatorService(b)

	in := writeFile(t, "broken.srt", "1\nnot a timing line\nHello\n")
	if _, err := s.TranslateFile(context.Background(), in, "DE"); err == nil {
		t.Fatal("expected parse error")
	}
	if len(b.calls) != 0 {
		t.Error("no translation for unparseable input")
	}
}

func TestTranslateFile_Documents(t *testing.T) {
	for _, name := range []string{"report.docx", "scan.PDF"} {
		b := &fakeBackend{}
		s := NewTranslatorService(b)

		in := writeFile(t, name, "binary")
		out, err := s.TranslateFile(context.Background(), in, "IT")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(b.docCalls) != 1 || b.docCalls[0] != in {
			t.Errorf("%s: document calls = %v", name, b.docCalls)
		}
		if len(b.calls) != 0 {
			t.Errorf("%s: documents must not use the text endpoint", name)
		}
		if data, _ := os.ReadFile(out); string(data) != "translated IT" {
			t.Errorf("%s: output = %q", name, data)
		}
	}
}

func TestTranslateFile_DocumentError(t *testing.T) {
	jobErr := &deepl.DocumentJobError{DocumentID: "d1", Message: "quota exceeded"}
	b := &fakeBackend{docErr: jobErr}
	s := NewTranslatorService(b)

	_, err := s.TranslateFile(context.Background(), writeFile(t, "a.docx", "x"), "DE")
	if !errors.Is(err, jobErr) {
		t.Errorf("error = %v, want %v", err, jobErr)
	}
}
