package session

import (
	"net/url"
	"strings"

	"vision-cli/api/internal/vision"
)

const redacted = "<redacted>"

// scrub returns err's message with every trace of the credentials replaced.
// Transport errors quote the request URL, which embeds the endpoint.
func scrub(err error, c vision.Credentials) string {
	msg := err.Error()
	var secrets []string
	if c.Key != "" {
		secrets = append(secrets, c.Key)
	}
	ep := strings.TrimSpace(c.Endpoint)
	if ep != "" && !strings.EqualFold(ep, "default") {
		secrets = append(secrets, strings.TrimRight(ep, "/"), ep)
		if u, perr := url.Parse(ep); perr == nil && u.Host != "" {
			secrets = append(secrets, u.Host)
		}
	}
	for _, s := range secrets {
		if s != "" {
			msg = strings.ReplaceAll(msg, s, redacted)
		}
	}
	return msg
}
