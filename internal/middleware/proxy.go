package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// TrustedProxies makes c.RealIP() honour X-Real-IP and X-Forwarded-For only
// when the request arrives from one of trustedCIDRs. Behind a reverse proxy
// every client would otherwise share one rate-limit bucket.
//
// X-Forwarded-For is walked from the right and the first untrusted hop wins,
// so a client cannot spoof its address by prepending entries.
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) {
	e.IPExtractor = buildIPExtractor(trustedCIDRs)
}

func buildIPExtractor(trustedCIDRs []string) echo.IPExtractor {
	// Only the listed ranges are trusted, not echo's private-net defaults.
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy range", slog.String("cidr", cidr))
			continue
		}
		opts = append(opts, echo.TrustIPRange(network))
	}

	fromRealIP := echo.ExtractIPFromRealIPHeader(opts...)
	fromXFF := echo.ExtractIPFromXFFHeader(opts...)
	return func(req *http.Request) string {
		if req.Header.Get(echo.HeaderXRealIP) != "" {
			return fromRealIP(req)
		}
		return fromXFF(req)
	}
}
