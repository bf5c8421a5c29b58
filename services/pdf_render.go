package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxRenderedPDFSize caps how much of a renderer response is read.
const maxRenderedPDFSize = 32 << 20

// ErrRendererStatus is returned when the remote renderer answers with a
// non-2xx status.
var ErrRendererStatus = errors.New("pdf renderer returned an error status")

// HTMLRenderer converts an HTML document into a PDF through a remote
// service that accepts {"html": "..."} and answers with the PDF bytes.
type HTMLRenderer struct {
	url    string
	token  string
	client *http.Client
}

// NewHTMLRenderer returns nil when url is empty, which callers treat as
// "render locally".
func NewHTMLRenderer(url, token string, timeout time.Duration) *HTMLRenderer {
	if url == "" {
		return nil
	}
	return &HTMLRenderer{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

// Render posts html to the renderer and returns the PDF it produced.
func (r *HTMLRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"html": html})
	if err != nil {
		return nil, fmt.Errorf("encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call pdf renderer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrRendererStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRenderedPDFSize))
	if err != nil {
		return nil, fmt.Errorf("read rendered pdf: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("pdf renderer returned an empty body")
	}
	return body, nil
}
