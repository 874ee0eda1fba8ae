package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/feichai0017/document-intake/config"
	"github.com/feichai0017/document-intake/internal/models"
)

// NERResponse 定义 NER 服务响应结构
type NERResponse struct {
	Entities []NEREntity `json:"entities"`
	Model    string      `json:"model,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type NEREntity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

// NERClient calls an external named-entity model service over HTTP. It
// implements the Model capability.
type NERClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

func NewNERClient(cfg *config.NERConfig) *NERClient {
	return &NERClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Entities runs text through the model service and groups the returned spans
// by their model-native label, preserving response order within each label.
func (c *NERClient) Entities(ctx context.Context, text string) (models.EntityMap, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"text":  text,
	}

	reqData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/api/ner", bytes.NewReader(reqData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var result NERResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("ner service error: %s", result.Error)
	}

	ents := models.EntityMap{}
	for _, e := range result.Entities {
		ents[e.Label] = append(ents[e.Label], e.Text)
	}
	return ents, nil
}

func (c *NERClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
