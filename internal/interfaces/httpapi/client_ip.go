package httpapi

import (
	"net"
	"net/http"
	"strings"
)

// resolveClientIP picks the first parseable address from proxy headers, falling
// back to the socket peer. Values are only used for request logs.
func resolveClientIP(r *http.Request) string {
	if ip := forwardedFor(r.Header.Get("Forwarded")); ip != "" {
		return ip
	}
	for _, header := range []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"} {
		if ip := normalizeIP(firstListItem(r.Header.Get(header))); ip != "" {
			return ip
		}
	}
	return normalizeIP(r.RemoteAddr)
}

// forwardedFor reads the for= parameter of the first RFC 7239 element.
func forwardedFor(raw string) string {
	for _, param := range strings.Split(firstListItem(raw), ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(name, "for") {
			continue
		}
		return normalizeIP(strings.Trim(value, `"`))
	}
	return ""
}

func firstListItem(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	value = strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")

	if parsed := net.ParseIP(value); parsed != nil {
		return parsed.String()
	}
	return ""
}
