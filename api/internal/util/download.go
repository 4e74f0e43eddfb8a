package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxImageBytes caps how much of an image is read into memory.
const MaxImageBytes = 20 << 20

// Download fetches an image by URL and returns its bytes and MIME type.
func Download(ctx context.Context, httpc *http.Client, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("bad image url: %w", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("download %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	img, err := ReadImage(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return img, PickMIME(resp.Header.Get("Content-Type"), img), nil
}

// ReadImage reads at most MaxImageBytes and rejects empty or oversized input.
func ReadImage(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	if len(b) > MaxImageBytes {
		return nil, fmt.Errorf("image is larger than %d MB", MaxImageBytes>>20)
	}
	return b, nil
}
