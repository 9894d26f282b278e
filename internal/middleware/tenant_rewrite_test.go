package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// echoApp reports the path each request was ultimately routed with.
func echoApp(rootDomain string) *fiber.App {
	app := fiber.New()
	app.Use(TenantRewrite(rootDomain))
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString(c.Path())
	})
	return app
}

func routedPath(t *testing.T, app *fiber.App, host, path string) string {
	t.Helper()
	req := httptest.NewRequest("GET", "http://"+host+path, nil)
	req.Host = host
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	return string(buf[:n])
}

func TestTenantRewrite_SubdomainMapsToTenantPath(t *testing.T) {
	app := echoApp("marketfront.com")

	assert.Equal(t, "/tenants/pixel-goods/", routedPath(t, app, "pixel-goods.marketfront.com", "/"))
	assert.Equal(t, "/tenants/pixel-goods/checkout", routedPath(t, app, "pixel-goods.marketfront.com", "/checkout"))
}

func TestTenantRewrite_RootDomainUntouched(t *testing.T) {
	app := echoApp("marketfront.com")

	assert.Equal(t, "/pricing", routedPath(t, app, "marketfront.com", "/pricing"))
	assert.Equal(t, "/pricing", routedPath(t, app, "other-site.com", "/pricing"))
}

func TestTenantRewrite_ExemptPrefixes(t *testing.T) {
	app := echoApp("marketfront.com")

	assert.Equal(t, "/api/v1/products", routedPath(t, app, "pixel-goods.marketfront.com", "/api/v1/products"))
	assert.Equal(t, "/admin/dashboard", routedPath(t, app, "pixel-goods.marketfront.com", "/admin/dashboard"))
	assert.Equal(t, "/static/app.css", routedPath(t, app, "pixel-goods.marketfront.com", "/static/app.css"))
	assert.Equal(t, "/media/logo.png", routedPath(t, app, "pixel-goods.marketfront.com", "/media/logo.png"))
}

func TestTenantRewrite_FileRequestsPassThrough(t *testing.T) {
	app := echoApp("marketfront.com")

	assert.Equal(t, "/favicon.ico", routedPath(t, app, "pixel-goods.marketfront.com", "/favicon.ico"))
	assert.Equal(t, "/downloads/manual.pdf", routedPath(t, app, "pixel-goods.marketfront.com", "/downloads/manual.pdf"))
}

func TestTenantRewrite_DisabledWithoutRootDomain(t *testing.T) {
	app := echoApp("")

	assert.Equal(t, "/checkout", routedPath(t, app, "pixel-goods.marketfront.com", "/checkout"))
}
