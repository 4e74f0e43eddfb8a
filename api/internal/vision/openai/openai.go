package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vision-cli/api/internal/util"
	"vision-cli/api/internal/vision"
)

const DefaultEndpoint = "https://api.openai.com/v1"

// Engine talks to an OpenAI-compatible chat completions API. The endpoint is
// the API base URL, so Azure OpenAI or local gateways work too.
type Engine struct {
	Model string
	httpc *http.Client
}

func New(model string, timeout time.Duration) *Engine {
	return &Engine{
		Model: strings.TrimSpace(model),
		httpc: &http.Client{Timeout: timeout},
	}
}

func (e *Engine) Name() string { return "openai" }

func (e *Engine) Authenticate(_ context.Context, creds vision.Credentials) (vision.Client, error) {
	base := strings.TrimSpace(creds.Endpoint)
	if base == "" || strings.EqualFold(base, "default") {
		base = DefaultEndpoint
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("openai: endpoint must be an absolute URL like %s", DefaultEndpoint)
	}
	return &Client{
		completionsURL: strings.TrimRight(u.String(), "/") + "/chat/completions",
		key:            creds.Key,
		model:          e.Model,
		httpc:          e.httpc,
	}, nil
}

type Client struct {
	completionsURL string
	key            string
	model          string
	httpc          *http.Client
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Close() error { return nil }

func (c *Client) AnalyzeURL(ctx context.Context, imageURL string, features vision.Features) (vision.Result, error) {
	return c.analyze(ctx, imageURL, features)
}

func (c *Client) AnalyzeStream(ctx context.Context, image io.Reader, features vision.Features) (vision.Result, error) {
	img, err := util.ReadImage(image)
	if err != nil {
		return vision.Result{}, fmt.Errorf("openai: %w", err)
	}
	dataURL := util.MakeDataURL(util.SniffImageMIME(img), base64.StdEncoding.EncodeToString(img))
	return c.analyze(ctx, dataURL, features)
}

func (c *Client) analyze(ctx context.Context, imageURL string, features vision.Features) (vision.Result, error) {
	body := map[string]any{
		"model": c.model,
		"messages": []any{
			map[string]any{"role": "system", "content": vision.ModelPrompt(features)},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": "Analyze this image. Answer strictly in JSON."},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": imageURL, "detail": "auto"}},
				},
			},
		},
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL, bytes.NewReader(payload))
	if err != nil {
		return vision.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return vision.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return vision.Result{}, fmt.Errorf("openai %d: %s", resp.StatusCode, errorMessage(x))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return vision.Result{}, err
	}
	if len(raw.Choices) == 0 {
		return vision.Result{}, fmt.Errorf("openai: empty response")
	}
	out := util.ExtractJSON(raw.Choices[0].Message.Content)
	res, err := vision.DecodeModelReply(out, features)
	if err != nil {
		return vision.Result{}, fmt.Errorf("openai: %w", err)
	}
	return res, nil
}

func errorMessage(body []byte) string {
	var er struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	return strings.TrimSpace(string(body))
}
