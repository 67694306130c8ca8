package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	ClientIPContextKey  = "client_ip"
	UserAgentContextKey = "user_agent"
)

// RequestInfo captures the client address and user agent so the write path
// can stamp them onto revision entries. X-Forwarded-For wins over the socket
// address when the service sits behind a proxy.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("X-Forwarded-For")
		if ip == "" {
			ip = c.IP()
		}
		c.Locals(ClientIPContextKey, ip)
		c.Locals(UserAgentContextKey, c.Get("User-Agent"))
		return c.Next()
	}
}

// GetRequestMeta returns the captured IP and user agent, nil when absent.
func GetRequestMeta(c *fiber.Ctx) (ip, userAgent *string) {
	if v, ok := c.Locals(ClientIPContextKey).(string); ok && v != "" {
		ip = &v
	}
	if v, ok := c.Locals(UserAgentContextKey).(string); ok && v != "" {
		userAgent = &v
	}
	return ip, userAgent
}
