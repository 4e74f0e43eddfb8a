package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vision-cli/api/internal/vision"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string          `json:"role"`
		Content json.RawMessage `json:"content"`
	} `json:"messages"`
}

func reply(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
	return string(b)
}

func TestAnalyze(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		seen = append(seen, string(req.Messages[1].Content))
		_, _ = w.Write([]byte(reply("```json\n" + `{"tags":[{"name":"dog","confidence":0.93}],"captions":[{"text":"a dog on grass","confidence":0.8}],"objects":[{"name":"dog","confidence":0.9},{"name":"ball","confidence":0.7}]}` + "\n```")))
	}))
	defer srv.Close()

	c, err := New("gpt-4o-mini", 5*time.Second).Authenticate(context.Background(), vision.Credentials{Key: "sk-test", Endpoint: srv.URL + "/v1/"})
	require.NoError(t, err)

	res, err := c.AnalyzeURL(context.Background(), "https://example.com/dog.png", vision.DefaultFeatures)
	require.NoError(t, err)
	assert.Equal(t, []vision.Tag{{Name: "dog", Confidence: 0.93}}, res.Tags)
	assert.Equal(t, 2, res.ObjectCount())
	assert.Equal(t, "a dog on grass", res.Description())

	_, err = c.AnalyzeStream(context.Background(), strings.NewReader("\xFF\xD8\xFFjpeg"), vision.DefaultFeatures)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Contains(t, seen[0], "https://example.com/dog.png")
	assert.Contains(t, seen[1], "data:image/jpeg;base64,")
}

func TestAnalyzeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c, err := New("gpt-4o-mini", time.Second).Authenticate(context.Background(), vision.Credentials{Key: "bad", Endpoint: srv.URL})
	require.NoError(t, err)
	_, err = c.AnalyzeURL(context.Background(), "https://example.com/x.png", vision.DefaultFeatures)
	require.EqualError(t, err, "openai 401: Incorrect API key provided")
}

func TestAuthenticateEndpoint(t *testing.T) {
	c, err := New("m", time.Second).Authenticate(context.Background(), vision.Credentials{Key: "k", Endpoint: "default"})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint+"/chat/completions", c.(*Client).completionsURL)

	_, err = New("m", time.Second).Authenticate(context.Background(), vision.Credentials{Key: "k", Endpoint: "api.openai.com"})
	require.Error(t, err)
}
