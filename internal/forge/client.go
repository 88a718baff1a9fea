// Package forge is the batch client for the remote image-generation
// endpoint: it turns a list of named prompts into PNG files, one request at
// a time.
package forge

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/encoding/json"
	"github.com/tidwall/gjson"
)

const (
	_defaultMaxTokens = 8096
	_defaultTimeout   = 120 * time.Second
	_textPreviewLen   = 100
	_errorBodyLen     = 200
)

// Config holds the endpoint contract. Every value is passed explicitly.
type Config struct {
	Endpoint  string
	Model     string
	MaxTokens int
	APIKey    string
	Timeout   time.Duration
	Delay     time.Duration
}

// Client sends prompts to the endpoint and saves the returned images.
// Requests are strictly sequential. After each request that was actually
// sent, the client pauses for the configured delay before moving on, except
// after the last item.
type Client struct {
	cfg       Config
	client    *http.Client
	delay     time.Duration
	logger    zerolog.Logger
	progress  func(ItemResult)
	requestID func() string
}

// Status is the outcome of one batch item.
type Status string

const (
	StatusSaved   Status = "saved"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ItemResult is reported to the progress callback after each item.
type ItemResult struct {
	Index  int // 1-based
	Total  int
	Name   string
	Path   string
	Status Status
	Bytes  int
	Err    error
}

// Summary aggregates a batch run. Skipped items count as succeeded.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Failures  []ItemError
}

// NewClient validates cfg and returns a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: endpoint must have http:// or https:// scheme, got: %s", ErrInvalidEndpoint, cfg.Endpoint)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = _defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = _defaultTimeout
	}

	c := &Client{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		delay:     cfg.Delay,
		logger:    zerolog.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type requestBody struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Stream    bool      `json:"stream"`
	Messages  []message `json:"messages"`
}

// Generate sends one prompt and returns the decoded image bytes.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(requestBody{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Stream:    false,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("X-Request-Id", c.requestID())

	data, err := c.loadData(req)
	if err != nil {
		return nil, err
	}
	return c.extractImage(data)
}

func (c *Client) loadData(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(req.Context(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, _errorBodyLen))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(req.Context(), err)
	}
	return data, nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
		return ctxErr
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

// extractImage returns the first base64 image content block. Text blocks
// are logged when no image is present.
func (c *Client) extractImage(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrDecode)
	}
	content := gjson.GetBytes(data, "content")

	var encoded string
	found := false
	content.ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "image" && block.Get("source.type").String() == "base64" {
			encoded = block.Get("source.data").String()
			found = true
			return false
		}
		return true
	})
	if found {
		img, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if len(img) == 0 {
			return nil, fmt.Errorf("%w: image block has empty data", ErrNoImage)
		}
		return img, nil
	}

	content.ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			text := block.Get("text").String()
			if len(text) > _textPreviewLen {
				text = text[:_textPreviewLen]
			}
			c.logger.Info().Str("text", text).Msg("text response")
		}
		return true
	})
	return nil, ErrNoImage
}

// Run processes items in order, writing <name>.png into outputDir. An item
// whose file already exists is skipped without a request and counted as a
// success. Item failures are recorded and never abort the batch; only
// context cancellation or an unusable output directory does.
func (c *Client) Run(ctx context.Context, outputDir string, items []Item) (Summary, error) {
	summary := Summary{Total: len(items)}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return summary, fmt.Errorf("create output directory: %w", err)
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res := ItemResult{Index: i + 1, Total: len(items), Name: item.Name}
		res.Path = filepath.Join(outputDir, item.Name+".png")
		log := c.logger.With().Str("texture", item.Name).Int("index", res.Index).Int("total", res.Total).Logger()

		if _, err := os.Stat(res.Path); err == nil {
			log.Info().Msg("already exists, skipping")
			res.Status = StatusSkipped
			summary.Succeeded++
			summary.Skipped++
			c.report(res)
			continue
		}

		log.Info().Msg("generating")
		img, err := c.Generate(ctx, item.Prompt)
		if err == nil {
			if werr := os.WriteFile(res.Path, img, 0644); werr != nil {
				err = fmt.Errorf("%w: %v", ErrWrite, werr)
			}
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			log.Error().Err(err).Msg("generation failed")
			res.Status = StatusFailed
			res.Err = err
			summary.Failed++
			summary.Failures = append(summary.Failures, ItemError{Name: item.Name, Err: err})
		} else {
			log.Info().Int("bytes", len(img)).Msg("saved")
			res.Status = StatusSaved
			res.Bytes = len(img)
			summary.Succeeded++
		}
		c.report(res)

		if i < len(items)-1 {
			if err := c.pause(ctx); err != nil {
				return summary, err
			}
		}
	}
	return summary, nil
}

// pause waits for the configured delay, starting now.
func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	t := time.NewTimer(c.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) report(res ItemResult) {
	if c.progress != nil {
		c.progress(res)
	}
}
