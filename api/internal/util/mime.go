package util

import (
	"bytes"
	"net/http"
	"strings"
)

// SniffImageMIME detects the image type by its magic bytes and falls back to
// http.DetectContentType for anything else.
func SniffImageMIME(b []byte) string {
	switch {
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8:
		return "image/jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png"
	case len(b) >= 6 && (string(b[:6]) == "GIF87a" || string(b[:6]) == "GIF89a"):
		return "image/gif"
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return "image/webp"
	case len(b) >= 2 && b[0] == 'B' && b[1] == 'M':
		return "image/bmp"
	}
	if len(b) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(b)
}

func MakeDataURL(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}

// PickMIME prefers an explicit Content-Type, then sniffs the bytes.
func PickMIME(explicit string, data []byte) string {
	if exp := strings.TrimSpace(explicit); exp != "" {
		if semi := strings.IndexByte(exp, ';'); semi >= 0 {
			exp = strings.TrimSpace(exp[:semi])
		}
		if strings.HasPrefix(exp, "image/") {
			return exp
		}
	}
	return SniffImageMIME(data)
}
