package ui

import (
	"fmt"
	"strings"
	"sync"

	"deepl-desktop/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// maxLogLines bounds the log box so long sessions stay responsive.
const maxLogLines = 500

type ProgressPanel struct {
	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	stageLabel  *widget.Label
	fileLabel   *widget.Label
	logBox      *widget.Entry

	mu    sync.Mutex
	lines []string
}

func NewProgressPanel() *ProgressPanel {
	p := &ProgressPanel{
		progressBar: widget.NewProgressBar(),
		statusLabel: widget.NewLabel("Idle"),
		stageLabel:  widget.NewLabel(""),
		fileLabel:   widget.NewLabel("No task yet"),
		logBox:      widget.NewMultiLineEntry(),
	}
	p.logBox.Wrapping = fyne.TextWrapWord
	p.logBox.Disable()
	return p
}

func (p *ProgressPanel) Build() fyne.CanvasObject {
	p.progressBar.Min = 0
	p.progressBar.Max = 100

	header := container.NewVBox(
		p.fileLabel,
		container.NewHBox(widget.NewLabel("Status:"), p.statusLabel),
		container.NewHBox(widget.NewLabel("Stage:"), p.stageLabel),
		p.progressBar,
		widget.NewSeparator(),
		widget.NewLabel("Log:"),
	)
	return container.NewBorder(header, nil, nil, nil, p.logBox)
}

// SetTask shows the state of task. Call on the UI goroutine.
func (p *ProgressPanel) SetTask(task *models.Task) {
	p.fileLabel.SetText(fmt.Sprintf("File: %s", task.FileName))
	p.statusLabel.SetText(fmt.Sprintf("%s %s", task.StatusIcon(), task.StatusText()))
	switch task.Status {
	case models.StatusRunning:
		p.progressBar.SetValue(0)
	case models.StatusCompleted:
		p.progressBar.SetValue(100)
	case models.StatusFailed:
		p.stageLabel.SetText("Error")
		p.progressBar.SetValue(0)
	}
}

func (p *ProgressPanel) SetProgress(stage string, percent int) {
	fyne.Do(func() {
		p.stageLabel.SetText(stage)
		p.progressBar.SetValue(float64(percent))
	})
}

func (p *ProgressPanel) SetStatus(status string) {
	fyne.Do(func() {
		p.statusLabel.SetText(status)
	})
}

// Write appends log output to the log box; it lets the panel act as a
// logger sink and is safe to call from any goroutine.
func (p *ProgressPanel) Write(b []byte) (int, error) {
	text := strings.TrimRight(string(b), "\n")
	if text == "" {
		return len(b), nil
	}

	p.mu.Lock()
	p.lines = append(p.lines, strings.Split(text, "\n")...)
	if len(p.lines) > maxLogLines {
		p.lines = p.lines[len(p.lines)-maxLogLines:]
	}
	content := strings.Join(p.lines, "\n")
	p.mu.Unlock()

	fyne.Do(func() {
		p.logBox.SetText(content)
	})
	return len(b), nil
}
