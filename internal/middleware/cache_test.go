package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishdb/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	app := fiber.New()
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString(middleware.CacheKey(c))
	})

	cases := map[string]string{
		"/api/archive/first":                                   "/api/archive/first",
		"/api/archive/first?utm_source=feed":                   "/api/archive/first",
		"/api/archive/first?section=comics&recursive=true":     "/api/archive/first?recursive=true&section=comics",
		"/api/archive/first?recursive=true&x=1&section=comics": "/api/archive/first?recursive=true&section=comics",
		"/api/archive/first?section=a%20b":                     "/api/archive/first?section=a+b",
	}
	for target, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, want, string(body), target)
	}
}

func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	for header, want := range map[string]string{"": middleware.APIVersion, "1.0": middleware.APIVersion, "2.0.0": "2.0.0"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("X-Api-Version", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, want, string(body))
		assert.Equal(t, want, resp.Header.Get("X-Api-Version"))
	}
}
