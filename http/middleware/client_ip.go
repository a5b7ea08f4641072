package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/trailhead"
)

// UnknownIP stands in for a client whose address cannot be determined.
const UnknownIP = "0.0.0.0"

// nonPublic are the IANA special purpose ranges proxies in front of trailhead sit in,
// beyond the private and loopback ones netip already recognizes.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores ClientIP under trailhead.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), trailhead.IpAddrKey, ClientIP(r))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP finds the browser's address behind trailhead's proxies.
//
// X-Forwarded-For, then X-Real-Ip, are read right to left;
// the first public address is the one the outermost proxy saw.
// Without one, the public address of the connection itself is used, UnknownIP otherwise.
func ClientIP(r *http.Request) string {
	for _, name := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		hops := strings.Split(r.Header.Get(name), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			if addr, ok := publicAddr(hops[i]); ok {
				return addr.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, ok := publicAddr(host); ok {
		return addr.String()
	}

	return UnknownIP
}

func publicAddr(raw string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return netip.Addr{}, false
	}

	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return netip.Addr{}, false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return netip.Addr{}, false
		}
	}

	return addr, true
}
