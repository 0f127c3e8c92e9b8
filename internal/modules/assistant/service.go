// Package assistant proxies chat messages to the remote conversational
// service. Nothing is stored; the reply passes straight through.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

type Service struct {
	url   string
	httpc *http.Client
}

func NewService(url string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		url:   url,
		httpc: &http.Client{Timeout: timeout},
	}
}

type Reply struct {
	Response string `json:"response"`
}

func (s *Service) Send(ctx context.Context, message string) (*Reply, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out Reply
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode assistant reply: %w", err)
	}
	return &out, nil
}
