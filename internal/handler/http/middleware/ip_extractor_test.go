package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"192.168.1.1:54321", "192.168.1.1"},
		{"[2001:db8::1]:8080", "2001:db8::1"},
		{"127.0.0.1", "127.0.0.1"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.addr
		got, err := RemoteAddrExtractor{}.ExtractIP(req)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "not-an-addr"
	_, err := RemoteAddrExtractor{}.ExtractIP(req)
	assert.Error(t, err)
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.0.0.1", " 172.16.0.0/12 ", "", "2001:db8::/32"})
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, 32, prefixes[0].Bits())

	_, err = ParseTrustedProxies([]string{"nope"})
	assert.Error(t, err)
}

func TestTrustedProxyExtractor(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	e := NewTrustedProxyExtractor(trusted)

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{name: "trusted proxy with XFF", remote: "10.1.2.3:443", xff: "203.0.113.7, 10.1.2.3", want: "203.0.113.7"},
		{name: "trusted proxy with X-Real-IP", remote: "10.1.2.3:443", xri: "203.0.113.8", want: "203.0.113.8"},
		{name: "trusted proxy without headers", remote: "10.1.2.3:443", want: "10.1.2.3"},
		{name: "untrusted peer spoofing XFF", remote: "198.51.100.1:1234", xff: "1.2.3.4", want: "198.51.100.1"},
		{name: "garbage XFF falls back", remote: "10.1.2.3:443", xff: "garbage", want: "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			got, err := e.ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
