package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/response"
	"github.com/srgjo27/shutterbook/internal/core/services"
)

type MessageHandler struct {
	svc *services.MessageService
}

func NewMessageHandler(svc *services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func (h *MessageHandler) Inbox(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	view, err := h.svc.Inbox(r.Context(), user, r.URL.Query().Get("q"))
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	counterpartID, err := uuidParam(ps, "userId")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	conv, err := h.svc.Thread(r.Context(), user, counterpartID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, conv)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	receiverID, err := uuidParam(ps, "userId")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.SendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	msg, err := h.svc.Send(r.Context(), user, receiverID, req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, msg)
}
