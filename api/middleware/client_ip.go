package middleware

import (
	"fmt"
	"net"
	"strings"

	"github.com/labstack/echo/v4"
)

// ClientIPExtractor decides where c.RealIP comes from. Without trusted
// proxies the socket address is used and forwarding headers are ignored.
// With them, X-Forwarded-For is honoured only for hops inside the listed
// CIDR ranges.
func ClientIPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	var options []echo.TrustOption
	for _, cidr := range trustedProxies {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	if len(options) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options = append(options,
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	)
	return echo.ExtractIPFromXFFHeader(options...), nil
}
