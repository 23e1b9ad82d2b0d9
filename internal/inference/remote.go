package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteModel calls an HTTP model server exposing POST /predict and POST /predict_proba
type RemoteModel struct {
	baseURL  string
	features []string
	client   *http.Client
}

// NewRemoteModel creates a client for the model server at baseURL
func NewRemoteModel(baseURL string, features []string, timeout time.Duration) *RemoteModel {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteModel{
		baseURL:  strings.TrimRight(baseURL, "/"),
		features: features,
		client:   &http.Client{Timeout: timeout},
	}
}

type remoteRequest struct {
	Features []string    `json:"features"`
	Rows     [][]float64 `json:"rows"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

type probaResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// Predict implements Regressor
func (m *RemoteModel) Predict(ctx context.Context, rows [][]float64) ([]float64, error) {
	var resp predictResponse
	if err := m.post(ctx, "/predict", rows, &resp); err != nil {
		return nil, err
	}
	if len(resp.Predictions) != len(rows) {
		return nil, fmt.Errorf("model server returned %d predictions for %d rows", len(resp.Predictions), len(rows))
	}
	return resp.Predictions, nil
}

// PredictProba implements Classifier
func (m *RemoteModel) PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error) {
	var resp probaResponse
	if err := m.post(ctx, "/predict_proba", rows, &resp); err != nil {
		return nil, err
	}
	if len(resp.Probabilities) != len(rows) {
		return nil, fmt.Errorf("model server returned %d probability rows for %d rows", len(resp.Probabilities), len(rows))
	}
	return resp.Probabilities, nil
}

func (m *RemoteModel) post(ctx context.Context, path string, rows [][]float64, out interface{}) error {
	body, err := json.Marshal(remoteRequest{Features: m.features, Rows: rows})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("model server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("model server %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode model server response: %w", err)
	}
	return nil
}
