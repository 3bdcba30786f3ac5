package deepl

import (
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disablePDFConfigDir sync.Once

// preflightPDF checks a PDF locally before upload. Problems are logged and the
// upload goes ahead: the service is the authority on what it can translate.
func (c *Client) preflightPDF(path string) {
	// pdfcpu would otherwise create a config directory under the user's home.
	disablePDFConfigDir.Do(api.DisableConfigDir)

	name := filepath.Base(path)
	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		c.log.Warn("%s did not pass PDF validation: %v", name, err)
		return
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		c.log.Warn("%s: page count unavailable: %v", name, err)
		return
	}
	c.log.Info("%s: %d pages", name, pages)
}
