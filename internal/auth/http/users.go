package http

import (
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
)

// UsersHandler handles the user administration endpoints.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /api/users
//
//	@Summary		List users
//	@Description	Returns every account, oldest first. Requires ViewUsers.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ListUsersResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := authsdk.ListUsersResponse{
		Users: make([]authsdk.UserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/users/{uid}
//
//	@Summary		Get user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			uid	path		string	true	"user uid"
//	@Success		200	{object}	authsdk.UserResponse
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Router			/api/users/{uid} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.Get(r.Context(), r.PathValue("uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleCreate handles POST /api/users
//
//	@Summary		Create user
//	@Description	Creates an active account. Username and email are unique ignoring case. Requires CreateUser.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CreateUserRequest	true	"new account"
//	@Success		201		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ValidationErrorResponse
//	@Failure		409		{object}	authsdk.ErrorResponse	"duplicate_entity"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	role := authz.RoleUser
	if req.Role != "" {
		var err error
		if role, err = authz.ParseRole(req.Role); err != nil {
			writeError(w, r, err)
			return
		}
	}

	u, err := h.UserService.Create(r.Context(), service.NewUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// HandleChangeRole handles PUT /api/users/{uid}/role
//
//	@Summary		Change role
//	@Description	Sets the role of an account. The system administrator cannot be demoted. Requires EditUser.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			uid		path		string						true	"user uid"
//	@Param			request	body		authsdk.ChangeRoleRequest	true	"new role"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		403		{object}	authsdk.ErrorResponse	"permission_denied or system_protected"
//	@Failure		404		{object}	authsdk.ErrorResponse
//	@Router			/api/users/{uid}/role [put].
func (h *UsersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ChangeRoleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserService.ChangeRole(r.Context(), r.PathValue("uid"), role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleSetActive handles PUT /api/users/{uid}/active
//
//	@Summary		Enable or disable user
//	@Description	Disabled accounts cannot log in. The system administrator cannot be disabled. Requires EditUser.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			uid		path		string						true	"user uid"
//	@Param			request	body		authsdk.SetActiveRequest	true	"active flag"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		403		{object}	authsdk.ErrorResponse	"permission_denied or system_protected"
//	@Failure		404		{object}	authsdk.ErrorResponse
//	@Router			/api/users/{uid}/active [put].
func (h *UsersHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SetActiveRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	u, err := h.UserService.SetActive(r.Context(), r.PathValue("uid"), *req.Active)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleDelete handles DELETE /api/users/{uid}
//
//	@Summary		Delete user
//	@Description	Removes an account. The system administrator cannot be deleted. Requires DeleteUser.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			uid	path	string	true	"user uid"
//	@Success		204
//	@Failure		403	{object}	authsdk.ErrorResponse	"permission_denied or system_protected"
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Router			/api/users/{uid} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), r.PathValue("uid")); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
