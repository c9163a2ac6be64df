package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/JonMunkholm/cardsort/internal/core"
)

// TrustedRealIP resolves the client address and stores it in the request
// context (see core.ClientIPFromContext).
//
// X-Real-IP and X-Forwarded-For are honored only when the connection comes
// from one of trustedProxies (CIDRs or single addresses). Otherwise the
// connection address is used, so clients cannot spoof their way around the
// rate limiter.
func TrustedRealIP(trustedProxies []string) func(http.Handler) http.Handler {
	trusted := parsePrefixes(trustedProxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := remoteAddr(r.RemoteAddr)

			if client.IsValid() && isTrusted(client, trusted) {
				if fwd, ok := forwardedFor(r); ok {
					client = fwd
				}
			}

			ip := r.RemoteAddr
			if client.IsValid() {
				ip = client.String()
			}
			r = r.WithContext(core.ContextWithClientIP(r.Context(), ip))
			next.ServeHTTP(w, r)
		})
	}
}

func parsePrefixes(list []string) []netip.Prefix {
	var out []netip.Prefix
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			slog.Warn("realip: invalid trusted proxy, skipping", "proxy", s, "error", err)
			continue
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

// forwardedFor returns the client named by X-Real-IP, or failing that the
// first hop of X-Forwarded-For.
func forwardedFor(r *http.Request) (netip.Addr, bool) {
	if rip := strings.TrimSpace(r.Header.Get("X-Real-IP")); rip != "" {
		addr, err := netip.ParseAddr(rip)
		return addr, err == nil
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		addr, err := netip.ParseAddr(strings.TrimSpace(first))
		return addr, err == nil
	}
	return netip.Addr{}, false
}

func remoteAddr(addr string) netip.Addr {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return a.Unmap()
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
