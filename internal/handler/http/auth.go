package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
)

type userResponse struct {
	User models.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) error {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		return err
	}

	logger.FromRequest(r).Info().Str("user_id", user.ID).Msg("user registered")
	_, err = utils.WriteJSON(w, userResponse{User: user}, http.StatusCreated)
	return err
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	tokens, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		return err
	}

	h.setTokenCookie(w, tokens.AccessToken)
	_, err = utils.WriteJSON(w, models.LoginResponse{
		Message:      app.MsgLoginSuccessful,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, http.StatusOK)
	return err
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) error {
	var req models.RefreshRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	tokens, err := h.services.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	h.setTokenCookie(w, tokens.AccessToken)
	_, err = utils.WriteJSON(w, models.RefreshResponse{
		Message:      app.MsgTokenRefreshed,
		RefreshToken: tokens.RefreshToken,
	}, http.StatusOK)
	return err
}

// logout revokes the presented access token and the optional refresh token
// from the body, then clears the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		return app.Authentication(app.MsgUserNotFoundForToken)
	}
	accessToken, _ := utils.GetTokenFromContext(ctx)

	var req models.RefreshRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		return err
	}

	err := h.services.AuthService.Logout(ctx, models.LogoutRequest{
		SubjectID:    principal.SubjectID,
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return err
	}

	h.clearTokenCookie(w)
	_, err = utils.WriteJSON(w, models.MessageResponse{Message: app.MsgLogoutSuccessful}, http.StatusOK)
	return err
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.App.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.App.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.App.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// decodeBody decodes a JSON request body. An empty body keeps
// utils.ErrEmptyBody in the chain, anything malformed becomes a validation
// error.
func decodeBody(r *http.Request, dst any) error {
	err := utils.DecodeJSON(r, dst)
	if err == nil {
		return nil
	}

	logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
	if errors.Is(err, utils.ErrEmptyBody) {
		return err
	}
	return app.Validation(app.MsgInvalidDataProvided)
}
