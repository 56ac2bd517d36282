package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPAllowlist_Allows(t *testing.T) {
	allowlist := NewIPAllowlist([]string{"10.0.0.1", " 192.168.1.0/24 ", "", "not-an-ip"})

	tests := []struct {
		addr string
		want bool
	}{
		{addr: "10.0.0.1", want: true},
		{addr: "192.168.1.77", want: true},
		{addr: "192.168.2.1", want: false},
		{addr: "10.0.0.2", want: false},
		{addr: "garbage", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, allowlist.Allows(tt.addr))
		})
	}

	assert.True(t, NewIPAllowlist(nil).Allows("203.0.113.9"))
}

func TestIPAllowlist_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	require.NoError(t, router.SetTrustedProxies([]string{"10.0.0.0/8"}))
	router.GET("/admin", NewIPAllowlist([]string{"198.51.100.7"}).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		wantCode   int
	}{
		{name: "Direct allowed", remoteAddr: "198.51.100.7:5000", wantCode: http.StatusOK},
		{name: "Direct denied", remoteAddr: "203.0.113.9:5000", wantCode: http.StatusForbidden},
		{name: "Forged forwarded header from untrusted peer", remoteAddr: "203.0.113.9:5000", headers: map[string]string{"X-Forwarded-For": "198.51.100.7"}, wantCode: http.StatusForbidden},
		{name: "Forged real IP from untrusted peer", remoteAddr: "203.0.113.9:5000", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, wantCode: http.StatusForbidden},
		{name: "Trusted proxy forwards allowed client", remoteAddr: "10.0.0.2:80", headers: map[string]string{"X-Forwarded-For": "198.51.100.7"}, wantCode: http.StatusOK},
		{name: "Trusted proxy forwards other client", remoteAddr: "10.0.0.2:80", headers: map[string]string{"X-Forwarded-For": "203.0.113.9"}, wantCode: http.StatusForbidden},
		{name: "Client prepends allowed hop through proxy", remoteAddr: "10.0.0.2:80", headers: map[string]string{"X-Forwarded-For": "198.51.100.7, 203.0.113.9"}, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if w.Code == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), errors.AuthzIPNotAllowed)
			}
		})
	}
}
