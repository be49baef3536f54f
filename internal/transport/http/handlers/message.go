package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/endurancehub/endurance-hub/internal/application/message"
	"github.com/endurancehub/endurance-hub/internal/domain"
	"github.com/endurancehub/endurance-hub/internal/logger"
	"github.com/endurancehub/endurance-hub/internal/transport/http/dto"
	"github.com/endurancehub/endurance-hub/internal/transport/http/middleware"
	"github.com/endurancehub/endurance-hub/internal/transport/http/response"
)

type MessageHandler struct {
	svc *message.Service
}

func NewMessageHandler(svc *message.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func messageActor(r *http.Request) (message.Actor, bool) {
	u, ok := middleware.AuthUserFromContext(r.Context())
	return message.Actor{ID: u.ID, Role: u.Role}, ok
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := messageActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	var req dto.SendMessageRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	m, err := h.svc.Send(r.Context(), actor, message.SendInput{
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("message_id", m.ID).
		Str("recipient_id", m.RecipientID).
		Msg("message_sent")

	response.Created(w, dto.NewMessageView(m))
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := messageActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	out, err := h.svc.List(r.Context(), actor, message.Box(r.URL.Query().Get("box")))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewMessageViews(out))
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := messageActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	m, err := h.svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewMessageView(m))
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := messageActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	m, err := h.svc.MarkRead(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewMessageView(m))
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := messageActor(r)
	if !ok {
		response.WriteError(w, r, domain.ErrAuthenticationRequired())
		return
	}

	if err := h.svc.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
