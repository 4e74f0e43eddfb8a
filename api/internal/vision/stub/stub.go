// Package stub is a deterministic, no-network vision backend for demos and
// end-to-end tests. Output depends only on the submitted image or URL.
package stub

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"vision-cli/api/internal/util"
	"vision-cli/api/internal/vision"
)

var vocabulary = []string{
	"outdoor", "indoor", "person", "sky", "tree", "building", "animal", "water",
	"grass", "car", "text", "food", "cat", "dog", "street", "cloud",
}

type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "stub" }

func (e *Engine) Authenticate(_ context.Context, _ vision.Credentials) (vision.Client, error) {
	return &Client{}, nil
}

type Client struct{}

func (c *Client) Name() string { return "stub" }

func (c *Client) Close() error { return nil }

func (c *Client) AnalyzeURL(_ context.Context, url string, features vision.Features) (vision.Result, error) {
	return analyze([]byte(url), features), nil
}

func (c *Client) AnalyzeStream(_ context.Context, image io.Reader, features vision.Features) (vision.Result, error) {
	b, err := util.ReadImage(image)
	if err != nil {
		return vision.Result{}, fmt.Errorf("stub: %w", err)
	}
	return analyze(b, features), nil
}

func analyze(input []byte, features vision.Features) vision.Result {
	sum := sha256.Sum256(input)
	seed := binary.BigEndian.Uint64(sum[:8])

	var res vision.Result
	if features.Has(vision.FeatureTags) {
		n := 3 + int(sum[8]%4)
		conf := 0.99
		for i := 0; i < n; i++ {
			name := vocabulary[(seed+uint64(i)*7)%uint64(len(vocabulary))]
			res.Tags = append(res.Tags, vision.Tag{Name: name, Confidence: conf})
			conf -= 0.05 + float64(sum[9+i]%10)/100
		}
	}
	if features.Has(vision.FeatureObjects) {
		for i := 0; i < int(sum[20]%4); i++ {
			res.Objects = append(res.Objects, vision.Object{Name: vocabulary[(seed>>8+uint64(i))%uint64(len(vocabulary))], Confidence: 0.8})
		}
	}
	if features.Has(vision.FeatureDescription) && len(res.Tags) > 0 {
		res.Captions = []vision.Caption{{Text: fmt.Sprintf("a picture with %s", res.Tags[0].Name), Confidence: 0.5}}
	}
	return res
}
