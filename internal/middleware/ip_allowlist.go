package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/doorhan-crimea/doorhan-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

// IPAllowlist admits only the listed addresses or CIDR ranges. An empty list admits everyone.
type IPAllowlist struct {
	ips   map[string]struct{}
	nets  []*net.IPNet
	empty bool
}

func NewIPAllowlist(entries []string) *IPAllowlist {
	a := &IPAllowlist{ips: map[string]struct{}{}}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ipNet, err := net.ParseCIDR(e); err == nil {
			a.nets = append(a.nets, ipNet)
			continue
		}
		if ip := net.ParseIP(e); ip != nil {
			a.ips[ip.String()] = struct{}{}
		}
	}
	a.empty = len(a.ips) == 0 && len(a.nets) == 0
	return a
}

func (a *IPAllowlist) Allows(addr string) bool {
	if a.empty {
		return true
	}
	ip := net.ParseIP(strings.TrimSpace(addr))
	if ip == nil {
		return false
	}
	if _, ok := a.ips[ip.String()]; ok {
		return true
	}
	for _, n := range a.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// Middleware checks c.ClientIP, so forwarding headers count only when the
// engine's trusted proxies sent them.
func (a *IPAllowlist) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if a.Allows(ip) {
			c.Next()
			return
		}

		GetLoggerFromContext(c).Warn("Admin request from address outside allow-list", map[string]interface{}{
			"ip":   ip,
			"path": c.Request.URL.Path,
		})
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzIPNotAllowed, "Доступ с этого адреса запрещён")
		c.Abort()
	}
}
