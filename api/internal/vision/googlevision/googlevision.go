package googlevision

import (
	"context"
	"fmt"
	"io"
	"strings"

	gcvision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	"vision-cli/api/internal/util"
	"vision-cli/api/internal/vision"
)

const (
	DefaultEndpoint = "vision.googleapis.com:443"
	maxLabels       = 20
)

// Engine authenticates against Google Cloud Vision with an API key.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "googlevision" }

func (e *Engine) Authenticate(ctx context.Context, creds vision.Credentials) (vision.Client, error) {
	endpoint, err := util.GRPCEndpoint(creds.Endpoint, DefaultEndpoint)
	if err != nil {
		return nil, fmt.Errorf("googlevision: %w", err)
	}
	c, err := gcvision.NewImageAnnotatorClient(ctx,
		option.WithAPIKey(creds.Key),
		option.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("googlevision: %w", err)
	}
	return &Client{annotator: annotatorAdapter{c}}, nil
}

type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// Client wraps an ImageAnnotatorClient.
type Client struct {
	annotator annotator
}

type annotatorAdapter struct {
	c *gcvision.ImageAnnotatorClient
}

func (a annotatorAdapter) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
	return a.c.BatchAnnotateImages(ctx, req)
}

func (a annotatorAdapter) Close() error { return a.c.Close() }

func (c *Client) Name() string { return "googlevision" }

func (c *Client) Close() error { return c.annotator.Close() }

func (c *Client) AnalyzeURL(ctx context.Context, imageURL string, features vision.Features) (vision.Result, error) {
	img := &visionpb.Image{Source: &visionpb.ImageSource{ImageUri: imageURL}}
	return c.annotate(ctx, img, features)
}

func (c *Client) AnalyzeStream(ctx context.Context, image io.Reader, features vision.Features) (vision.Result, error) {
	b, err := util.ReadImage(image)
	if err != nil {
		return vision.Result{}, fmt.Errorf("googlevision: %w", err)
	}
	return c.annotate(ctx, &visionpb.Image{Content: b}, features)
}

func (c *Client) annotate(ctx context.Context, img *visionpb.Image, features vision.Features) (vision.Result, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    img,
			Features: toFeatures(features),
		}},
	}
	resp, err := c.annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return vision.Result{}, fmt.Errorf("googlevision: %s", status.Convert(err).Message())
	}
	if len(resp.GetResponses()) == 0 {
		return vision.Result{}, fmt.Errorf("googlevision: empty response")
	}
	r := resp.GetResponses()[0]
	if e := r.GetError(); e != nil && e.GetMessage() != "" {
		return vision.Result{}, fmt.Errorf("googlevision: %s", e.GetMessage())
	}
	return toResult(r), nil
}

// Cloud Vision has no captioning; the web-detection best guess stands in
// for the description.
func toFeatures(fs vision.Features) []*visionpb.Feature {
	var out []*visionpb.Feature
	if fs.Has(vision.FeatureTags) {
		out = append(out, &visionpb.Feature{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: maxLabels})
	}
	if fs.Has(vision.FeatureObjects) {
		out = append(out, &visionpb.Feature{Type: visionpb.Feature_OBJECT_LOCALIZATION})
	}
	if fs.Has(vision.FeatureDescription) {
		out = append(out, &visionpb.Feature{Type: visionpb.Feature_WEB_DETECTION, MaxResults: 1})
	}
	return out
}

func toResult(r *visionpb.AnnotateImageResponse) vision.Result {
	var res vision.Result
	for _, l := range r.GetLabelAnnotations() {
		res.Tags = append(res.Tags, vision.Tag{Name: strings.ToLower(l.GetDescription()), Confidence: float64(l.GetScore())})
	}
	for _, o := range r.GetLocalizedObjectAnnotations() {
		res.Objects = append(res.Objects, vision.Object{Name: o.GetName(), Confidence: float64(o.GetScore())})
	}
	for _, g := range r.GetWebDetection().GetBestGuessLabels() {
		if g.GetLabel() != "" {
			res.Captions = append(res.Captions, vision.Caption{Text: g.GetLabel()})
		}
	}
	return res
}
