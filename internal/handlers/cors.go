package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// CORSPolicy is the header set written on every response of both the
// server and the serverless entrypoint.
type CORSPolicy struct {
	AllowOrigins string
	AllowMethods string
	AllowHeaders string
}

func (p CORSPolicy) Headers() map[string]string {
	return map[string]string{
		fiber.HeaderAccessControlAllowOrigin:  p.AllowOrigins,
		fiber.HeaderAccessControlAllowMethods: p.AllowMethods,
		fiber.HeaderAccessControlAllowHeaders: p.AllowHeaders,
	}
}

// Middleware sets the CORS headers and answers every OPTIONS request with
// an empty 200, whatever its body. fiber's cors middleware replies 204 to
// pre-flight requests, which browsers accept but existing clients of this
// API do not expect.
func (p CORSPolicy) Middleware() fiber.Handler {
	headers := p.Headers()
	return func(c *fiber.Ctx) error {
		for k, v := range headers {
			c.Set(k, v)
		}
		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).Send(nil)
		}
		return c.Next()
	}
}
