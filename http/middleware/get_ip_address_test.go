package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		hm       http.Header
		expected string
	}{
		{"No-Match", make(http.Header), "0.0.0.0"},
		{
			"Only-Private-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "192.168.0.0")
				return h
			}(),
			"0.0.0.0",
		},
		{
			"Only-Public-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-Before-Proxy",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.0.0.1,1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-First-Public",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.255.255.255,8.8.8.8,1.1.1.1,172.16.0.0")
				return h
			}(),
			"1.1.1.1",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.hm))
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		remote   string
		expected string
	}{
		{"Header", "1.1.1.1", "10.0.0.1:1234", "1.1.1.1"},
		{"Private-Header", "192.168.0.2", "8.8.8.8:1234", "8.8.8.8"},
		{"Remote-Addr", "", "127.0.0.1:3000", "127.0.0.1"},
		{"Bad-Remote-Addr", "", "nonsense", "0.0.0.0"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var actual any
			h := middleware.InjectIPAddress()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actual = r.Context().Value(meadowlark.IpAddrKey)
			}))

			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			r.RemoteAddr = tc.remote
			if tc.header != "" {
				r.Header.Set("X-Forwarded-For", tc.header)
			}

			// Act
			h.ServeHTTP(httptest.NewRecorder(), r)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}
