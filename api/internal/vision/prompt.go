package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"vision-cli/api/internal/util"
)

// ModelPrompt is the instruction sent to multimodal LLM backends so their
// reply can be decoded into a Result.
func ModelPrompt(features Features) string {
	var b strings.Builder
	b.WriteString("You are an image analysis service. Look at the attached image and return STRICT JSON, no prose, no markdown.\n")
	b.WriteString("Schema:\n{\n")
	var fields []string
	if features.Has(FeatureTags) {
		fields = append(fields, `  "tags": [{"name": string, "confidence": number}]     // 5-15 short lowercase English tags, confidence in [0,1], sorted by confidence desc`)
	}
	if features.Has(FeatureDescription) {
		fields = append(fields, `  "captions": [{"text": string, "confidence": number}] // 1-3 one-sentence captions, best first`)
	}
	if features.Has(FeatureObjects) {
		fields = append(fields, `  "objects": [{"name": string, "confidence": number}]  // one entry per distinct object instance you can localize`)
	}
	b.WriteString(strings.Join(fields, ",\n"))
	b.WriteString("\n}\nUse empty arrays when nothing applies.")
	return b.String()
}

// DecodeModelReply parses the JSON reply produced for ModelPrompt. Sections
// that were not requested are dropped.
func DecodeModelReply(text string, features Features) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return Result{}, fmt.Errorf("bad JSON: %w", err)
	}
	if !features.Has(FeatureTags) {
		r.Tags = nil
	}
	if !features.Has(FeatureDescription) {
		r.Captions = nil
	}
	if !features.Has(FeatureObjects) {
		r.Objects = nil
	}
	tags := r.Tags[:0]
	for _, t := range r.Tags {
		if t.Name = strings.TrimSpace(t.Name); t.Name != "" {
			t.Confidence = util.Clamp01(t.Confidence)
			tags = append(tags, t)
		}
	}
	r.Tags = tags
	caps := r.Captions[:0]
	for _, c := range r.Captions {
		if c.Text = strings.TrimSpace(c.Text); c.Text != "" {
			c.Confidence = util.Clamp01(c.Confidence)
			caps = append(caps, c)
		}
	}
	r.Captions = caps

	objs := r.Objects[:0]
	for _, o := range r.Objects {
		if o.Name = strings.TrimSpace(o.Name); o.Name != "" {
			o.Confidence = util.Clamp01(o.Confidence)
			objs = append(objs, o)
		}
	}
	r.Objects = objs
	return r, nil
}
