package http

import (
	"net/http"

	"go.uber.org/zap"

	useruc "example.com/property-listing/app/internal/usecase/user"
)

type changePasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

func (a *API) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())
	u, err := a.userSvc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapUser(u))
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())

	var req changePasswordRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	err := a.userSvc.ChangePassword(r.Context(), useruc.ChangePasswordInput{
		UserID:          claims.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.Password,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (a *API) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())

	var req deleteAccountRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	if err := a.userSvc.DeleteAccount(r.Context(), claims.UserID, req.Password); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	if err := a.authSvc.Logout(r.Context(), claims); err != nil {
		a.log.Warn("token revocation after account deletion failed",
			zap.Int64("user_id", claims.UserID),
			zap.Error(err),
		)
	}
	w.WriteHeader(http.StatusNoContent)
}
