package http

import (
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP exchanges a username and password for an access token.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns a signed HS256 access token. Unknown users, wrong passwords and disabled accounts all return the same 401 body.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest			true	"username and password"
//	@Success		200		{object}	authsdk.LoginResponse			"token, username, role"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"malformed body"
//	@Failure		401		{object}	authsdk.ErrorResponse			"invalid_credentials"
//	@Failure		429		{object}	authsdk.ErrorResponse			"rate_limit_exceeded"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Token:    res.Token,
		Username: res.User.Username,
		Role:     res.User.Role.String(),
	})
}
