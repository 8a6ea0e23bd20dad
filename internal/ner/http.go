package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/job-requirements-extractor/internal/extract"
)

// DefaultHTTPTimeout bounds a single recognition request
const DefaultHTTPTimeout = 30 * time.Second

const maxErrorBody = 512

// HTTP calls a Hugging Face style token-classification endpoint
type HTTP struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTP creates a recognizer for endpoint; token is sent as a bearer token
// when non-empty
func NewHTTP(endpoint, token string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTP{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

type httpRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Recognize posts text and decodes the returned entity records
func (h *HTTP) Recognize(ctx context.Context, text string) ([]extract.RawEntity, error) {
	body, err := json.Marshal(httpRequest{
		Inputs:     text,
		Parameters: map[string]any{"aggregation_strategy": "simple"},
	})
	if err != nil {
		return nil, &RecognizerError{Backend: "http", Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RecognizerError{Backend: "http", Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &RecognizerError{Backend: "http", Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RecognizerError{Backend: "http", Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		snippet := data
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &RecognizerError{
			Backend:    "http",
			Message:    fmt.Sprintf("unexpected response %q", bytes.TrimSpace(snippet)),
			StatusCode: resp.StatusCode,
		}
	}

	return decodeEntities("http", data)
}

// decodeEntities accepts a flat array of records or a single-input batch
// (an array holding one array)
func decodeEntities(backend string, data []byte) ([]extract.RawEntity, error) {
	var items []json.RawMessage
	if err := unmarshalNumbers(data, &items); err != nil {
		return nil, &RecognizerError{Backend: backend, Message: "response is not a JSON array", Cause: err}
	}

	if len(items) == 1 && len(bytes.TrimSpace(items[0])) > 0 && bytes.TrimSpace(items[0])[0] == '[' {
		return decodeEntities(backend, items[0])
	}

	out := make([]extract.RawEntity, 0, len(items))
	for _, item := range items {
		var record extract.RawEntity
		// Non-object elements become nil records and are skipped downstream
		if err := unmarshalNumbers(item, &record); err != nil {
			record = nil
		}
		out = append(out, record)
	}
	return out, nil
}

func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
