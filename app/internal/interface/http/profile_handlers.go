package http

import (
	"net/http"

	profileuc "example.com/property-listing/app/internal/usecase/profile"
)

type profileInformationRequest struct {
	Phone   string `json:"phone" validate:"max=32"`
	Bio     string `json:"bio" validate:"max=5000"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=128"`
	Country string `json:"country" validate:"max=128"`
	Website string `json:"website" validate:"omitempty,url,max=255"`
}

type socialMediaRequest struct {
	Facebook  string `json:"facebook" validate:"omitempty,url,max=255"`
	Twitter   string `json:"twitter" validate:"omitempty,max=255"`
	Instagram string `json:"instagram" validate:"omitempty,max=255"`
	LinkedIn  string `json:"linkedin" validate:"omitempty,url,max=255"`
}

func (a *API) handleGetProfileInformation(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())
	p, err := a.profileSvc.Get(r.Context(), claims.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProfileInformation(p))
}

func (a *API) handleUpdateProfileInformation(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())

	var req profileInformationRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	p, err := a.profileSvc.UpdateInformation(r.Context(), claims.UserID, profileuc.InformationInput{
		Phone:   req.Phone,
		Bio:     req.Bio,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		Website: req.Website,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProfileInformation(p))
}

func (a *API) handleGetSocialMedia(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())
	p, err := a.profileSvc.Get(r.Context(), claims.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSocialMedia(p))
}

func (a *API) handleUpdateSocialMedia(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())

	var req socialMediaRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	p, err := a.profileSvc.UpdateSocialMedia(r.Context(), claims.UserID, profileuc.SocialMediaInput{
		Facebook:  req.Facebook,
		Twitter:   req.Twitter,
		Instagram: req.Instagram,
		LinkedIn:  req.LinkedIn,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSocialMedia(p))
}
