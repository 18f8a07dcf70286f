package http

import (
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
)

const resetWarning = "tokens issued before the reset remain valid until they expire"

type ResetHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP wipes and reseeds the user table.
//
//	@Summary		Reset database
//	@Description	Deletes every account and reseeds the system administrator and the sample users. Requires DeleteUser. Tokens issued before the reset, including the caller's, stay valid until they expire.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.ResetResponse
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Failure		500	{object}	authsdk.ErrorResponse
//	@Router			/api/admin/reset [post].
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, _ := httpx.UserIDFromContext(r.Context())
	slogx.FromContext(r.Context()).Warn("database reset requested", "requested_by", uid)

	n, err := h.BootstrapService.ResetAndReseed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ResetResponse{
		Users:   n,
		Warning: resetWarning,
	})
}
