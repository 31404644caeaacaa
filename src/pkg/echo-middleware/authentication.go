// Package echomw provides Echo middlewares used by the report service.
package echomw

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

const (
	// Comma separated; more than one token lets a new token go live before the old one is revoked.
	EnvReportBearerToken = "REPORT_API_BEARER_TOKEN"

	authRealm = "donation-report"
)

var (
	tokensOnce sync.Once
	tokens     [][]byte
)

/*
RequireBearerToken accepts "Authorization: Bearer <token>" when the token is
one of those listed in REPORT_API_BEARER_TOKEN.

With no token configured every request is refused. Refusals follow RFC 6750:
a missing credential gets a bare challenge, a wrong one error="invalid_token".
*/
func RequireBearerToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accepted := acceptedTokens()
		if len(accepted) == 0 {
			return refuse(c, "", "no bearer token configured")
		}

		credential, present := bearerCredential(c.Request().Header.Get(echo.HeaderAuthorization))
		if !present {
			return refuse(c, "", "missing bearer credential")
		}
		if !matchesAny(credential, accepted) {
			return refuse(c, "invalid_token", "bearer token not recognised")
		}

		return next(c)
	}
}

// bearerCredential extracts the token of a Bearer header; the scheme is case-insensitive.
func bearerCredential(header string) (credential string, present bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	credential = strings.TrimSpace(rest)
	return credential, credential != ""
}

// matchesAny compares against every accepted token so timing does not reveal which one matched.
func matchesAny(credential string, accepted [][]byte) bool {
	matched := 0
	for _, token := range accepted {
		matched |= subtle.ConstantTimeCompare([]byte(credential), token)
	}
	return matched == 1
}

func acceptedTokens() [][]byte {
	tokensOnce.Do(func() {
		tokens = parseTokens(os.Getenv(EnvReportBearerToken))
	})
	return tokens
}

func parseTokens(raw string) (parsed [][]byte) {
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			parsed = append(parsed, []byte(token))
		}
	}
	return parsed
}

func refuse(c echo.Context, errorCode string, reason string) error {
	LogRouteAccess(c, tl.Info, "Unauthorized ("+reason+")", palette.Yellow)

	challenge := `Bearer realm="` + authRealm + `"`
	if errorCode != "" {
		challenge += `, error="` + errorCode + `"`
	}
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}
