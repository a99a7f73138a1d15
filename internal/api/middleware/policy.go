package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/VenkateshW22/teamflow-api/internal/api/metrics"
	"github.com/VenkateshW22/teamflow-api/internal/core/identity"
)

// Access is the requirement a policy rule places on matching paths.
type Access int

const (
	// Public paths are served regardless of authentication state.
	Public Access = iota
	// Authenticated paths require an identity in the request context.
	Authenticated
)

// Rule maps a path prefix to an access requirement. An exact-match rule is
// expressed with Exact=true (used for "/").
type Rule struct {
	Prefix string
	Exact  bool
	Access Access
}

// DefaultPolicy mirrors the route classification of the original service:
// auth endpoints, health checks, docs, and static assets are public; every
// other path requires an authenticated identity.
func DefaultPolicy() []Rule {
	return []Rule{
		{Prefix: "/api/auth/", Access: Public},
		{Prefix: "/api/public/", Access: Public},
		{Prefix: "/health", Access: Public},
		{Prefix: "/api/health", Access: Public},
		{Prefix: "/actuator/health", Access: Public},
		{Prefix: "/swagger/", Access: Public},
		{Prefix: "/api-docs/", Access: Public},
		{Prefix: "/static/", Access: Public},
		{Prefix: "/metrics", Access: Public},
		{Prefix: "/", Exact: true, Access: Public},
	}
}

// Authorize enforces an ordered, first-match-wins policy table. Paths not
// matched by any rule are protected. The table is plain data: route owners
// extend it without touching the authentication middleware or the codec.
func Authorize(rules []Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if required(rules, c.Request().URL.Path) == Public {
				return next(c)
			}
			if _, ok := identity.FromContext(c.Request().Context()); !ok {
				metrics.UnauthorizedTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			return next(c)
		}
	}
}

func required(rules []Rule, path string) Access {
	for _, r := range rules {
		if r.Exact {
			if path == r.Prefix {
				return r.Access
			}
			continue
		}
		if strings.HasPrefix(path, r.Prefix) {
			return r.Access
		}
	}
	return Authenticated
}
