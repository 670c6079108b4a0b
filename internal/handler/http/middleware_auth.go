package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/pipeline"
	"github.com/MKhiriev/go-guardian/internal/utils"
)

const accessTokenCookie = "accessToken"

// authenticate admits requests carrying a valid access token and attaches
// the principal and the raw token to the request context.
//
// The token is read from the "Authorization: Bearer" header first and from
// the accessToken cookie second. A malformed header is logged and the cookie
// is tried instead.
func (h *Handler) authenticate(r *http.Request) (*http.Request, error) {
	token := accessTokenFromRequest(r)
	if token == "" {
		return nil, app.Authentication(app.MsgNoTokenProvided)
	}

	ctx := r.Context()
	principal, err := h.services.TokenService.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return r.WithContext(utils.WithPrincipal(ctx, principal, token)), nil
}

// requireRoles admits requests whose principal has one of roles. It must run
// after authenticate.
func requireRoles(roles ...string) pipeline.GuardFunc {
	return func(r *http.Request) (*http.Request, error) {
		principal, ok := utils.GetPrincipalFromContext(r.Context())
		if !ok {
			return nil, app.Authentication(app.MsgAuthenticationRequired)
		}
		if !principal.HasRole(roles...) {
			return nil, app.Authentication(app.MsgInsufficientPermissions)
		}
		return r, nil
	}
}

func accessTokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		token, err := getTokenFromAuthHeader(authHeader)
		if err == nil {
			return token
		}
		logger.FromRequest(r).Debug().Err(err).Msg("ignoring Authorization header")
	}

	if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the scheme is not Bearer or the
//     token part is missing entirely.
//   - [ErrEmptyToken] if the token part is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
