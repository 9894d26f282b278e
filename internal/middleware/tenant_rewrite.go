package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// rewriteExempt prefixes are never rewritten to a tenant storefront path.
var rewriteExempt = []string{"/api/", "/admin/", "/static/", "/media/"}

// TenantRewrite maps storefront subdomains onto tenant paths: a request for
// {slug}.{rootDomain}/x is served as /tenants/{slug}/x. API, admin, static
// and media prefixes, and direct file requests (paths with a dot in the
// last segment) pass through untouched. With no root domain configured the
// middleware is a no-op.
func TenantRewrite(rootDomain string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rootDomain == "" {
			return c.Next()
		}

		hostname := c.Hostname()
		if !strings.HasSuffix(hostname, "."+rootDomain) {
			return c.Next()
		}

		path := c.Path()
		for _, prefix := range rewriteExempt {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}
		if lastSegmentHasDot(path) {
			return c.Next()
		}

		tenantSlug := strings.TrimSuffix(hostname, "."+rootDomain)
		c.Path("/tenants/" + tenantSlug + path)
		return c.Next()
	}
}

func lastSegmentHasDot(path string) bool {
	idx := strings.LastIndex(path, "/")
	return strings.Contains(path[idx+1:], ".")
}
