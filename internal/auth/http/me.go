package http

import (
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
)

// MeHandler serves the authenticated user's own account.
type MeHandler struct {
	UserService *service.UserService
}

// HandleGet returns the account behind the bearer token.
//
//	@Summary		Current user
//	@Description	Returns the account of the authenticated user. Requires ViewProfile.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Failure		404	{object}	authsdk.ErrorResponse	"account no longer exists"
//	@Router			/api/auth/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		authsdk.ErrTokenInvalid.WriteError(w)
		return
	}

	u, err := h.UserService.Get(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleChangePassword replaces the caller's password.
//
//	@Summary		Change password
//	@Description	Replaces the password of the authenticated user. Requires EditProfile. Tokens already issued stay valid.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	authsdk.ChangePasswordRequest	true	"current and new password"
//	@Success		204
//	@Failure		400	{object}	authsdk.ValidationErrorResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token or invalid_credentials"
//	@Router			/api/auth/me/password [put].
func (h *MeHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		authsdk.ErrTokenInvalid.WriteError(w)
		return
	}

	var req authsdk.ChangePasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		UID:       u.UID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		IsSystem:  u.IsSystem,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
