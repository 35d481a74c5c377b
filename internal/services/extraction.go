package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/swiftship/courier-backend/internal/config"
	"github.com/swiftship/courier-backend/internal/models"
)

// DocumentAnalyzer extracts text and a document classification from an
// uploaded identity-document image.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, imageBase64 string) (*models.DocumentAnalysis, error)
}

// ExtractionClient calls the vision-based text-extraction service over HTTP.
type ExtractionClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
	log        *zap.Logger
}

// NewExtractionClient creates a client for the text-extraction service. The
// request timeout is owned here, not by the pipeline.
func NewExtractionClient(cfg config.ExtractionConfig, log *zap.Logger) *ExtractionClient {
	return &ExtractionClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

type analyzeRequest struct {
	Image string `json:"image"`
}

// Analyze submits a base64-encoded image and decodes the extraction verdict.
func (c *ExtractionClient) Analyze(ctx context.Context, imageBase64 string) (*models.DocumentAnalysis, error) {
	payload, err := json.Marshal(analyzeRequest{Image: imageBase64})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("extraction service returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var analysis models.DocumentAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	return &analysis, nil
}
