package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API. "*" allows
	// any origin. Example: ["https://atlas.example.org", "http://localhost:3000"]
	AllowedOrigins []string

	// MaxAge is how long browsers may cache a preflight. Defaults to an hour.
	MaxAge time.Duration
}

// corsPolicy is the precomputed header set of a CORSConfig.
type corsPolicy struct {
	allowAll bool
	origins  map[string]bool
	methods  string
	headers  string
	expose   string
	maxAge   string
}

func newCORSPolicy(cfg CORSConfig) corsPolicy {
	p := corsPolicy{
		origins: make(map[string]bool, len(cfg.AllowedOrigins)),
		methods: strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodDelete, http.MethodOptions}, ", "),
		headers: strings.Join([]string{echo.HeaderContentType, "If-None-Match", echo.HeaderXRequestID}, ", "),
		expose:  strings.Join([]string{"ETag", "X-Catalog-Fingerprint", echo.HeaderXRequestID}, ", "),
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			p.allowAll = true
		}
		p.origins[strings.TrimSuffix(o, "/")] = true
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	p.maxAge = strconv.Itoa(int(maxAge.Seconds()))
	return p
}

func (p corsPolicy) allows(origin string) bool {
	return p.allowAll || p.origins[origin]
}

// CORS returns middleware that answers cross-origin requests from the
// configured origins. Map front-ends are usually served from another
// origin than the API. The API is anonymous, so credentials are never
// allowed. Requests from other origins pass through without CORS headers
// and the browser blocks the response.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	p := newCORSPolicy(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			h := c.Response().Header()

			origin := req.Header.Get(echo.HeaderOrigin)
			if origin == "" || !p.allows(origin) {
				return next(c)
			}

			h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			if req.Method == http.MethodOptions {
				h.Set(echo.HeaderAccessControlAllowMethods, p.methods)
				h.Set(echo.HeaderAccessControlAllowHeaders, p.headers)
				h.Set(echo.HeaderAccessControlMaxAge, p.maxAge)
				return c.NoContent(http.StatusNoContent)
			}

			h.Set(echo.HeaderAccessControlExposeHeaders, p.expose)
			return next(c)
		}
	}
}
