// Package summary provides optional AI-generated product blurbs. It is an
// enrichment only: when unconfigured or failing it degrades to "no summary"
// and must never block catalog or checkout flows.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrmolina/tienda-whatsapp/internal/catalog"
)

var ErrDisabled = errors.New("summary: service disabled, no API key configured")

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	modelPath      = "/v1beta/models/gemini-2.0-flash:generateContent"
	requestTimeout = 10 * time.Second
)

type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (s *Service) Enabled() bool {
	return s.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Summarize asks the generative API for a short sales blurb for the product.
func (s *Service) Summarize(ctx context.Context, p catalog.Product) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	prompt := fmt.Sprintf(
		"Escribe una descripción breve y atractiva (máximo dos frases) para este producto de una tienda en línea: %s. Categoría: %s. Detalles: %s",
		p.Name, p.Category, p.Description,
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("summary: failed to encode request: %w", err)
	}

	url := s.baseURL + modelPath + "?key=" + s.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("summary: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("summary: generation request failed")
		return "", fmt.Errorf("summary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("product_id", p.ID).Msg("summary: generation request rejected")
		return "", fmt.Errorf("summary: unexpected status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("summary: failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("summary: empty response")
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}
