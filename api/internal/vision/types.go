package vision

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// NoDescription is shown when the service returned no captions.
const NoDescription = "No description available."

var (
	ErrEmptyLocation = errors.New("image location is empty")
	ErrFileNotFound  = errors.New("the specified file does not exist")
)

// Credentials are typed in per analysis and handed straight to an
// Authenticator. They must never be logged or printed.
type Credentials struct {
	Key      string
	Endpoint string
}

func (c Credentials) Empty() bool {
	return c.Key == "" || c.Endpoint == ""
}

// String keeps credentials out of %v / %s output.
func (c Credentials) String() string { return "vision.Credentials{<redacted>}" }

func (c Credentials) GoString() string { return c.String() }

type SourceKind int

const (
	SourceURL SourceKind = iota
	SourceLocalFile
)

func (k SourceKind) String() string {
	switch k {
	case SourceURL:
		return "URL"
	case SourceLocalFile:
		return "Local File"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// ParseSourceKind maps a menu label back to a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "url":
		return SourceURL, nil
	case "local file", "file", "local":
		return SourceLocalFile, nil
	default:
		return 0, fmt.Errorf("unknown image source %q", s)
	}
}

// Request describes which image to analyze.
type Request struct {
	Source   SourceKind
	Location string
}

// Validate checks the request locally; it never touches the network.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return ErrEmptyLocation
	}
	if r.Source != SourceLocalFile {
		return nil
	}
	fi, err := os.Stat(r.Location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, r.Location)
		}
		return fmt.Errorf("stat %s: %w", r.Location, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFileNotFound, r.Location)
	}
	return nil
}

type Feature string

const (
	FeatureTags        Feature = "Tags"
	FeatureDescription Feature = "Description"
	FeatureObjects     Feature = "Objects"
)

type Features []Feature

// DefaultFeatures is the feature set every analysis asks for.
var DefaultFeatures = Features{FeatureDescription, FeatureTags, FeatureObjects}

func (fs Features) Has(f Feature) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func (fs Features) Strings() []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, string(f))
	}
	return out
}

type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type Caption struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type Object struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Result is what a backend returned. Callers only read it.
type Result struct {
	Tags     []Tag     `json:"tags"`
	Captions []Caption `json:"captions"`
	Objects  []Object  `json:"objects"`
}

func (r Result) ObjectCount() int { return len(r.Objects) }

// Description returns the first caption, or NoDescription.
func (r Result) Description() string {
	if len(r.Captions) > 0 {
		return r.Captions[0].Text
	}
	return NoDescription
}
