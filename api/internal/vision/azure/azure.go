package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vision-cli/api/internal/vision"
)

// Engine authenticates against Azure AI Vision (Computer Vision REST API).
type Engine struct {
	APIVersion string
	Language   string
	httpc      *http.Client
}

func New(apiVersion, language string, timeout time.Duration) *Engine {
	if apiVersion == "" {
		apiVersion = "v3.2"
	}
	if language == "" {
		language = "en"
	}
	return &Engine{
		APIVersion: apiVersion,
		Language:   language,
		httpc:      &http.Client{Timeout: timeout},
	}
}

func (e *Engine) Name() string { return "azure" }

// Authenticate does not call the service; Azure checks the key on the
// first analyze request.
func (e *Engine) Authenticate(_ context.Context, creds vision.Credentials) (vision.Client, error) {
	u, err := url.Parse(strings.TrimSpace(creds.Endpoint))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("azure: endpoint must be an absolute URL like https://<resource>.cognitiveservices.azure.com/")
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/vision/" + e.APIVersion + "/analyze"
	u.RawQuery = ""
	return &Client{
		analyzeURL: u.String(),
		key:        creds.Key,
		language:   e.Language,
		httpc:      e.httpc,
	}, nil
}

type Client struct {
	analyzeURL string
	key        string
	language   string
	httpc      *http.Client
}

func (c *Client) Name() string { return "azure" }

func (c *Client) Close() error { return nil }

func (c *Client) AnalyzeURL(ctx context.Context, imageURL string, features vision.Features) (vision.Result, error) {
	payload, _ := json.Marshal(map[string]string{"url": imageURL})
	return c.analyze(ctx, bytes.NewReader(payload), "application/json", features)
}

func (c *Client) AnalyzeStream(ctx context.Context, image io.Reader, features vision.Features) (vision.Result, error) {
	return c.analyze(ctx, image, "application/octet-stream", features)
}

type analyzeResponse struct {
	Tags []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"tags"`
	Description *struct {
		Tags     []string `json:"tags"`
		Captions []struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"captions"`
	} `json:"description"`
	Objects []struct {
		Object     string  `json:"object"`
		Confidence float64 `json:"confidence"`
		Parent     *struct {
			Object string `json:"object"`
		} `json:"parent,omitempty"`
	} `json:"objects"`
	RequestID string `json:"requestId"`
}

// errorResponse covers both the v3.x envelope and the flat legacy one.
type errorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) analyze(ctx context.Context, body io.Reader, contentType string, features vision.Features) (vision.Result, error) {
	q := url.Values{}
	q.Set("visualFeatures", strings.Join(features.Strings(), ","))
	if c.language != "" {
		q.Set("language", c.language)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.analyzeURL+"?"+q.Encode(), body)
	if err != nil {
		return vision.Result{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return vision.Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return vision.Result{}, fmt.Errorf("azure %d: %s", resp.StatusCode, errorMessage(x))
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return vision.Result{}, fmt.Errorf("azure: bad JSON: %w", err)
	}
	return out.toResult(), nil
}

func (r analyzeResponse) toResult() vision.Result {
	var res vision.Result
	for _, t := range r.Tags {
		res.Tags = append(res.Tags, vision.Tag{Name: t.Name, Confidence: t.Confidence})
	}
	if r.Description != nil {
		for _, c := range r.Description.Captions {
			res.Captions = append(res.Captions, vision.Caption{Text: c.Text, Confidence: c.Confidence})
		}
	}
	for _, o := range r.Objects {
		res.Objects = append(res.Objects, vision.Object{Name: o.Object, Confidence: o.Confidence})
	}
	return res
}

func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Error != nil && er.Error.Message != "" {
			return er.Error.Message
		}
		if er.Message != "" {
			return er.Message
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "empty response"
}
