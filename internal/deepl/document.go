package deepl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deepl-desktop/internal/config"
	"deepl-desktop/internal/translation"
)

var _ translation.DocumentTranslator = (*Client)(nil)

// DocumentHandle identifies an uploaded document. Both values are issued by
// the service and are needed for every later call.
type DocumentHandle struct {
	ID  string `json:"document_id"`
	Key string `json:"document_key"`
}

// DocumentState is the server-side status of a document job.
type DocumentState string

const (
	StatusQueued      DocumentState = "queued"
	StatusTranslating DocumentState = "translating"
	StatusDone        DocumentState = "done"
	StatusError       DocumentState = "error"
)

// DocumentStatus is one answer of POST /document/{id}.
type DocumentStatus struct {
	ID               string        `json:"document_id"`
	Status           DocumentState `json:"status"`
	SecondsRemaining *float64      `json:"seconds_remaining"`
	BilledCharacters int64         `json:"billed_characters"`
	ErrorMessage     string        `json:"error_message"`
}

// Terminal reports whether polling can stop.
func (s DocumentStatus) Terminal() bool {
	return s.Status == StatusDone || s.Status == StatusError
}

// PollInterval is the wait before the next status check: the server hint
// (PollIntervalDefault when absent), capped at PollIntervalCap and raised to
// minWait when shorter.
func PollInterval(secondsRemaining *float64, minWait time.Duration) time.Duration {
	wait := config.PollIntervalDefault
	if secondsRemaining != nil {
		// Cap before converting: large hints overflow time.Duration.
		if s := *secondsRemaining; s >= config.PollIntervalCap.Seconds() {
			wait = config.PollIntervalCap
		} else {
			wait = time.Duration(s * float64(time.Second))
		}
	}
	if wait > config.PollIntervalCap {
		wait = config.PollIntervalCap
	}
	if wait < minWait {
		wait = minWait
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}

// TranslateDocument uploads inputPath, waits for the job to finish and
// streams the result to outputPath. A job reported as "error" returns
// *DocumentJobError and nothing is downloaded. A failure during the download
// can leave a partial outputPath behind.
func (c *Client) TranslateDocument(ctx context.Context, inputPath, targetLang, outputPath string) error {
	if strings.EqualFold(filepath.Ext(inputPath), ".pdf") {
		c.preflightPDF(inputPath)
	}

	c.log.Info("uploading %s (target %s)", filepath.Base(inputPath), targetLang)
	handle, err := c.UploadDocument(ctx, inputPath, targetLang)
	if err != nil {
		return err
	}
	c.log.Debug("document %s uploaded", handle.ID)

	status, err := c.WaitForDocument(ctx, handle)
	if err != nil {
		return err
	}
	c.log.Info("document %s translated, %d characters billed", handle.ID, status.BilledCharacters)

	n, err := c.DownloadDocument(ctx, handle, outputPath)
	if err != nil {
		return err
	}
	c.log.Info("saved %s (%d bytes)", outputPath, n)
	return nil
}

// UploadDocument sends the file as multipart/form-data and returns the job handle.
func (c *Client) UploadDocument(ctx context.Context, inputPath, targetLang string) (DocumentHandle, error) {
	body, contentType, err := documentForm(inputPath, targetLang)
	if err != nil {
		return DocumentHandle{}, &DocumentError{Phase: PhaseUpload, Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, "/document", body, contentType)
	if err != nil {
		return DocumentHandle{}, &DocumentError{Phase: PhaseUpload, Err: err}
	}

	var handle DocumentHandle
	if err := decodeJSON(resp, &handle); err != nil {
		return DocumentHandle{}, &DocumentError{Phase: PhaseUpload, Err: err}
	}
	if handle.ID == "" || handle.Key == "" {
		return DocumentHandle{}, &DocumentError{Phase: PhaseUpload, Err: errors.New("response is missing document_id or document_key")}
	}
	return handle, nil
}

// documentForm buffers the upload so the transport can replay it on retry.
func documentForm(inputPath, targetLang string) (*bytes.Buffer, string, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("target_lang", targetLang); err != nil {
		return nil, "", err
	}
	part, err := w.CreateFormFile("file", filepath.Base(inputPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", inputPath, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func keyForm(handle DocumentHandle) io.Reader {
	form := url.Values{}
	form.Set("document_key", handle.Key)
	return strings.NewReader(form.Encode())
}

// DocumentStatus asks for the current state of a job.
func (c *Client) DocumentStatus(ctx context.Context, handle DocumentHandle) (DocumentStatus, error) {
	resp, err := c.do(ctx, http.MethodPost, "/document/"+url.PathEscape(handle.ID),
		keyForm(handle), "application/x-www-form-urlencoded")
	if err != nil {
		return DocumentStatus{}, err
	}
	var status DocumentStatus
	if err := decodeJSON(resp, &status); err != nil {
		return DocumentStatus{}, err
	}
	return status, nil
}

// WaitForDocument polls until the job is done or failed. There is no
// attempt limit; only a transport failure or ctx ends the loop early.
func (c *Client) WaitForDocument(ctx context.Context, handle DocumentHandle) (DocumentStatus, error) {
	for {
		status, err := c.DocumentStatus(ctx, handle)
		if err != nil {
			return DocumentStatus{}, &DocumentError{Phase: PhasePoll, Err: err}
		}

		switch status.Status {
		case StatusDone:
			return status, nil
		case StatusError:
			return status, &DocumentJobError{DocumentID: handle.ID, Message: status.ErrorMessage}
		}

		wait := PollInterval(status.SecondsRemaining, c.minPoll)
		c.log.Debug("document %s is %s, next check in %s", handle.ID, status.Status, wait)
		if err := c.sleep(ctx, wait); err != nil {
			return DocumentStatus{}, err
		}
	}
}

// DownloadDocument streams the translated file to outputPath in
// config.DownloadChunkSize pieces and returns the number of bytes written.
func (c *Client) DownloadDocument(ctx context.Context, handle DocumentHandle, outputPath string) (int64, error) {
	resp, err := c.do(ctx, http.MethodPost, "/document/"+url.PathEscape(handle.ID)+"/result",
		keyForm(handle), "application/x-www-form-urlencoded")
	if err != nil {
		return 0, &DocumentError{Phase: PhaseDownload, Err: err}
	}
	defer resp.Body.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, &DocumentError{Phase: PhaseDownload, Err: err}
	}

	written, copyErr := copyChunked(out, resp.Body, config.DownloadChunkSize)
	closeErr := out.Close()
	if copyErr != nil {
		return written, &DocumentError{Phase: PhaseDownload, Err: copyErr}
	}
	if closeErr != nil {
		return written, &DocumentError{Phase: PhaseDownload, Err: closeErr}
	}
	return written, nil
}

func copyChunked(dst io.Writer, src io.Reader, chunkSize int) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err != nil {
				return written, err
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}
