package http

import (
	"net/http"

	messageuc "example.com/property-listing/app/internal/usecase/message"
)

type createMessageRequest struct {
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	Body       string `json:"body" validate:"required,max=5000"`
}

type replyMessageRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

func (a *API) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())

	var req createMessageRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	m, err := a.messageSvc.Send(r.Context(), claims.UserID, messageuc.SendInput{
		PropertyID: req.PropertyID,
		Body:       req.Body,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapMessage(m))
}

func (a *API) handleReplyMessage(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())
	parentID, err := parseIDParam(r, "message")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req replyMessageRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	m, err := a.messageSvc.Reply(r.Context(), claims.UserID, parentID, req.Body)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapMessage(m))
}

func (a *API) handleInbox(w http.ResponseWriter, r *http.Request) {
	claims := getAuthUser(r.Context())
	messages, err := a.messageSvc.Inbox(r.Context(), claims.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}

	resp := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, mapMessage(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}
