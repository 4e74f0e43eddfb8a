package util

import (
	"fmt"
	"net/url"
	"strings"
)

// GRPCEndpoint turns a typed-in endpoint ("https://host/path", "host" or
// "host:port") into the host:port form gRPC clients dial. Empty or "default"
// yields def.
func GRPCEndpoint(raw, def string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "default") {
		return def, nil
	}
	host := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("bad endpoint %q", raw)
		}
		host = u.Host
	}
	host = strings.TrimRight(host, "/")
	if !strings.Contains(host, ":") {
		host += ":443"
	}
	return host, nil
}
