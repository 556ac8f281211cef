package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("gemini: empty response")

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Retries int
}

const defaultBackoff = 300 * time.Millisecond

// contentGenerator is the part of genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client is a thin wrapper around the official genai client that only does
// schema-constrained JSON generation.
type Client struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	retries int
	backoff time.Duration
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 25 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return newClient(cli.Models, cfg), nil
}

func newClient(models contentGenerator, cfg Config) *Client {
	return &Client{
		models:  models,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		retries: cfg.Retries,
		backoff: defaultBackoff,
	}
}

func (c *Client) Name() string { return "gemini:" + c.model }

// GenerateJSON sends prompt under the system instruction and returns the raw JSON
// text of the first candidate. Each attempt gets its own timeout.
func (c *Client) GenerateJSON(ctx context.Context, system, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
		start := time.Now()
		text, err := c.generate(ctx, cfg, prompt)
		if err == nil {
			log.Printf("gemini model=%s attempt=%d ok bytes=%d took=%s", c.model, attempt+1, len(text), time.Since(start))
			return text, nil
		}
		log.Printf("gemini model=%s attempt=%d failed: %v", c.model, attempt+1, err)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *Client) generate(ctx context.Context, cfg *genai.GenerateContentConfig, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := stripCodeFences(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "json") {
		s = strings.TrimSpace(s[4:])
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
