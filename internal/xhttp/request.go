package xhttp

import (
	"net"
	"net/http"
)

// GetRequestIP resolves the client IP, preferring X-Forwarded-For when the
// gateway sits behind a proxy.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		if ip, _, err := net.SplitHostPort(xff); err == nil {
			return ip
		}
		return xff
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
