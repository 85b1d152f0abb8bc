package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPTranslator calls an external translation engine over HTTP. The engine
// is a black box: it receives masked text and is expected to leave the
// placeholder tokens alone.
type HTTPTranslator struct {
	engineURL  string
	httpClient *http.Client
}

// NewHTTPTranslator creates a translator client for the given engine URL.
func NewHTTPTranslator(engineURL string) *HTTPTranslator {
	return &HTTPTranslator{
		engineURL: engineURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // model inference can be slow
		},
	}
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Translate sends masked text to the engine. Transport failures and 5xx
// responses surface as ErrUnavailable so the pipeline can fall back per
// field instead of failing the document.
func (t *HTTPTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Text:           text,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	})
	if err != nil {
		return "", fmt.Errorf("translator: encode request: %w", err)
	}

	url := t.engineURL + "/api/v1/translate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("translator: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translator: engine request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translator: read response body: %w", err)
	}

	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("translator: engine returned %d: %w", resp.StatusCode, ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translator: engine returned %d: %s", resp.StatusCode, string(respBody))
	}

	var out translateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("translator: parse response: %w", err)
	}

	return out.TranslatedText, nil
}
