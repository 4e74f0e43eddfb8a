package vision

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Client is an authenticated handle to a vision backend.
type Client interface {
	Name() string
	AnalyzeURL(ctx context.Context, url string, features Features) (Result, error)
	AnalyzeStream(ctx context.Context, image io.Reader, features Features) (Result, error)
	Close() error
}

// Authenticator turns typed-in credentials into a Client.
type Authenticator interface {
	Name() string
	Authenticate(ctx context.Context, creds Credentials) (Client, error)
}

// Engines holds every backend the binary was built with, keyed by name.
type Engines map[string]Authenticator

func NewEngines(auths ...Authenticator) Engines {
	e := make(Engines, len(auths))
	for _, a := range auths {
		e[a.Name()] = a
	}
	return e
}

func (e Engines) Names() []string {
	out := make([]string, 0, len(e))
	for n := range e {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (e Engines) GetEngine(name string) (Authenticator, error) {
	if a, ok := e[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("unknown vision backend %q; use one of: %s", name, strings.Join(e.Names(), ", "))
}

// Analyze dispatches a validated request to the matching Client call.
// A local file is opened here and closed before Analyze returns.
func Analyze(ctx context.Context, c Client, req Request, features Features) (Result, error) {
	switch req.Source {
	case SourceURL:
		return c.AnalyzeURL(ctx, strings.TrimSpace(req.Location), features)
	case SourceLocalFile:
		f, err := openImage(req.Location)
		if err != nil {
			return Result{}, err
		}
		defer f.Close()
		return c.AnalyzeStream(ctx, f, features)
	default:
		return Result{}, fmt.Errorf("unsupported image source %v", req.Source)
	}
}
