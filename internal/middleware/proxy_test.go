package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPExtractor(t *testing.T) {
	extract := buildIPExtractor([]string{"10.0.0.0/8", "not-a-cidr"})

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "direct client",
			remoteAddr: "203.0.113.50:4000",
			want:       "203.0.113.50",
		},
		{
			name:       "untrusted peer cannot spoof",
			remoteAddr: "203.0.113.50:4000",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1"},
			want:       "203.0.113.50",
		},
		{
			name:       "trusted proxy forwards client",
			remoteAddr: "10.0.0.5:4000",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.7"},
			want:       "198.51.100.1",
		},
		{
			name:       "rightmost untrusted hop wins",
			remoteAddr: "10.0.0.5:4000",
			headers:    map[string]string{"X-Forwarded-For": "1.1.1.1, 198.51.100.1"},
			want:       "198.51.100.1",
		},
		{
			name:       "real ip header from trusted proxy",
			remoteAddr: "10.0.0.5:4000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			want:       "198.51.100.2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, extract(req))
		})
	}
}
