package deepl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"deepl-desktop/internal/config"
	"deepl-desktop/internal/translation"
)

var _ translation.BatchTranslator = (*Client)(nil)

type translateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// TranslateTexts translates up to config.MaxBatchTexts texts in one request.
// The result has the same length and order as texts. Every failure comes
// back as *TranslationError.
func (c *Client) TranslateTexts(ctx context.Context, texts []string, targetLang string) ([]string, error) {
	if len(texts) > config.MaxBatchTexts {
		return nil, &TranslationError{Err: fmt.Errorf("%w: %d > %d", translation.ErrBatchTooLarge, len(texts), config.MaxBatchTexts)}
	}
	if len(texts) == 0 {
		return []string{}, nil
	}

	form := url.Values{}
	for _, text := range texts {
		form.Add("text", text)
	}
	form.Set("target_lang", targetLang)

	c.log.Debug("translating %d texts to %s", len(texts), targetLang)

	resp, err := c.do(ctx, http.MethodPost, "/translate",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, &TranslationError{Err: err}
	}

	var body translateResponse
	if err := decodeJSON(resp, &body); err != nil {
		return nil, &TranslationError{Err: err}
	}
	if len(body.Translations) != len(texts) {
		return nil, &TranslationError{Err: fmt.Errorf("service returned %d translations for %d texts", len(body.Translations), len(texts))}
	}

	result := make([]string, len(texts))
	for i, t := range body.Translations {
		result[i] = t.Text
	}
	return result, nil
}

// Translate translates a single text.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	out, err := c.TranslateTexts(ctx, []string{text}, targetLang)
	if err != nil {
		return "", err
	}
	return out[0], nil
}
