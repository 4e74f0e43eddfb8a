package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vision-cli/api/internal/util"
	"vision-cli/api/internal/vision"
)

const DefaultEndpoint = "generativelanguage.googleapis.com:443"

// Engine authenticates against the Gemini API with an API key. The typed-in
// endpoint is the API host; "default" or a URL are both accepted.
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

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Authenticate(ctx context.Context, creds vision.Credentials) (vision.Client, error) {
	if e.Model == "" {
		return nil, errors.New("gemini: model is empty")
	}
	endpoint, err := util.GRPCEndpoint(creds.Endpoint, DefaultEndpoint)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(creds.Key), option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Client{cl: cl, model: e.Model, httpc: e.httpc}, nil
}

type Client struct {
	cl    *genai.Client
	model string
	httpc *http.Client
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Close() error { return c.cl.Close() }

func (c *Client) AnalyzeURL(ctx context.Context, imageURL string, features vision.Features) (vision.Result, error) {
	img, mime, err := util.Download(ctx, c.httpc, imageURL)
	if err != nil {
		return vision.Result{}, fmt.Errorf("gemini: %w", err)
	}
	return c.analyze(ctx, img, mime, features)
}

func (c *Client) AnalyzeStream(ctx context.Context, image io.Reader, features vision.Features) (vision.Result, error) {
	img, err := util.ReadImage(image)
	if err != nil {
		return vision.Result{}, fmt.Errorf("gemini: %w", err)
	}
	return c.analyze(ctx, img, util.SniffImageMIME(img), features)
}

func (c *Client) analyze(ctx context.Context, img []byte, mime string, features vision.Features) (vision.Result, error) {
	m := c.cl.GenerativeModel(c.model)
	if m == nil {
		return vision.Result{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(vision.ModelPrompt(features))},
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text("Analyze this image. Answer strictly in JSON."),
		genai.Blob{MIMEType: mime, Data: img},
	)
	if err != nil {
		return vision.Result{}, fmt.Errorf("gemini: %w", err)
	}
	txt := firstText(resp)
	if txt == "" {
		return vision.Result{}, fmt.Errorf("gemini: empty response")
	}
	res, err := vision.DecodeModelReply(util.ExtractJSON(txt), features)
	if err != nil {
		return vision.Result{}, fmt.Errorf("gemini: %w", err)
	}
	return res, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
