package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HACKWAVE2025/B54/internal/analysis/chat"
	"github.com/HACKWAVE2025/B54/internal/http/response"
	"github.com/HACKWAVE2025/B54/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type createSessionReq struct {
	Language string `json:"language"`
}

type sessionView struct {
	SessionID  string     `json:"sessionId"`
	Language   string     `json:"language"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastActive time.Time  `json:"lastActive"`
	Turns      []turnView `json:"turns,omitempty"`
}

type turnView struct {
	Role          string    `json:"role"`
	Text          string    `json:"text"`
	HasAttachment bool      `json:"hasAttachment,omitempty"`
	Degraded      bool      `json:"degraded,omitempty"`
	At            time.Time `json:"at"`
}

func viewSession(s *chat.Session, withTurns bool) sessionView {
	v := sessionView{
		SessionID:  s.ID(),
		Language:   s.Language(),
		CreatedAt:  s.CreatedAt(),
		LastActive: s.LastActive(),
	}
	if withTurns {
		for _, t := range s.Turns() {
			v.Turns = append(v.Turns, turnView{
				Role:          string(t.Role),
				Text:          t.Text,
				HasAttachment: t.Attachment != nil,
				Degraded:      t.Degraded,
				At:            t.At,
			})
		}
	}
	return v
}

// POST /api/chat/sessions
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	sess, err := h.chat.CreateSession(c.Request.Context(), req.Language)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, viewSession(sess, false))
}

// GET /api/chat/sessions/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, err := h.chat.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, viewSession(sess, true))
}

type sendMessageReq struct {
	Text         string        `json:"text"`
	Image        *imagePayload `json:"image"`
	ImageDataURI string        `json:"imageDataUri"`
}

// POST /api/chat/sessions/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	att, err := decodeImage(req.Image, req.ImageDataURI)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	reply, err := h.chat.SendMessage(c.Request.Context(), c.Param("id"), req.Text, att)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reply": reply.Text, "degraded": reply.Degraded})
}

// DELETE /api/chat/sessions/:id
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.chat.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
