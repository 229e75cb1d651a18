package socialhttp

import (
	"net"
	"net/http"
	"net/netip"
	"slices"
	"strings"
)

// ClientIPFunc determines the client IP used for rate limiting and events.
// An empty result means unknown and makes rate limiting fail open.
type ClientIPFunc func(r *http.Request) string

// DefaultClientIP uses RemoteAddr when it is a public address. Private peers
// are usually proxies, and limiting them would throttle every user at once.
func DefaultClientIP() ClientIPFunc {
	return func(r *http.Request) string {
		if a, ok := peerAddr(r); ok && isPublicAddr(a) {
			return a.String()
		}
		return ""
	}
}

// ClientIPFromForwardedHeaders trusts CF-Connecting-IP, then the left-most
// X-Forwarded-For entry, only when the peer is one of trustedProxies.
func ClientIPFromForwardedHeaders(trustedProxies []netip.Prefix) ClientIPFunc {
	fallback := DefaultClientIP()
	return func(r *http.Request) string {
		peer, ok := peerAddr(r)
		if !ok {
			return ""
		}
		if slices.ContainsFunc(trustedProxies, func(p netip.Prefix) bool { return p.Contains(peer) }) {
			xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
			for _, h := range []string{r.Header.Get("CF-Connecting-IP"), xff} {
				if a, err := netip.ParseAddr(strings.TrimSpace(h)); err == nil && isPublicAddr(a) {
					return a.String()
				}
			}
		}
		return fallback(r)
	}
}

func peerAddr(r *http.Request) (netip.Addr, bool) {
	if r == nil || r.RemoteAddr == "" {
		return netip.Addr{}, false
	}
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	a, err := netip.ParseAddr(host)
	return a.Unmap(), err == nil
}

func isPublicAddr(a netip.Addr) bool {
	return a.IsValid() && a.IsGlobalUnicast() && !a.IsPrivate()
}
