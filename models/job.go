package models

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type TaskKind string

const (
	KindTranslateFile TaskKind = "translate"
	KindOCR           TaskKind = "ocr"
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Task is one long-running user action: a file translation or an OCR run.
type Task struct {
	ID          string
	Kind        TaskKind
	InputPath   string
	FileName    string
	TargetLang  string
	Status      TaskStatus
	OutputPath  string
	Text        string // OCR result
	Translated  string // Text translated to TargetLang, when requested
	Error       error
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func NewTask(kind TaskKind, inputPath, targetLang string) *Task {
	return &Task{
		ID:         uuid.New().String(),
		Kind:       kind,
		InputPath:  inputPath,
		FileName:   filepath.Base(inputPath),
		TargetLang: targetLang,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
}

func (t *Task) Start() {
	t.Status = StatusRunning
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) Complete(outputPath string) {
	t.Status = StatusCompleted
	t.OutputPath = outputPath
	now := time.Now()
	t.CompletedAt = &now
}

func (t *Task) Fail(err error) {
	t.Status = StatusFailed
	t.Error = err
	now := time.Now()
	t.CompletedAt = &now
}

// Done reports whether the task has finished, successfully or not.
func (t *Task) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// Elapsed is the run time so far, or the total run time once done.
func (t *Task) Elapsed() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	if t.CompletedAt != nil {
		return t.CompletedAt.Sub(*t.StartedAt)
	}
	return time.Since(*t.StartedAt)
}

func (t *Task) StatusText() string {
	switch t.Status {
	case StatusPending:
		return "Ready"
	case StatusRunning:
		if t.Kind == KindOCR {
			return "Extracting text..."
		}
		return "Translating..."
	case StatusCompleted:
		return "Completed!"
	case StatusFailed:
		if t.Error != nil {
			return "Failed: " + t.Error.Error()
		}
		return "Failed"
	default:
		return string(t.Status)
	}
}

// StatusIcon returns an emoji icon representing the task status
func (t *Task) StatusIcon() string {
	switch t.Status {
	case StatusPending:
		return "⏳"
	case StatusRunning:
		return "🔄"
	case StatusCompleted:
		return "✅"
	case StatusFailed:
		return "❌"
	default:
		return "📄"
	}
}
