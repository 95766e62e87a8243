package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/services"
	"buildxpert/pkg/apperrors"
)

type MessageHandler struct {
	*BaseHandler
	messages *services.MessageService
}

func NewMessageHandler(base *BaseHandler, messages *services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messages: messages}
}

// List godoc
// @Summary List the message thread of a job
// @Description Returns the thread in chronological order. Without user_id the caller must be an admin and gets the full thread; with user_id the caller sees that participant's view (non-admins may only name themselves).
// @Tags messages
// @Security BearerAuth
// @Produce json
// @Param job_id query string true "Job ID"
// @Param user_id query string false "Participant filter"
// @Success 200 {object} dto.MessageListResponse
// @Router /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	var query dto.MessageListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	callerID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	isAdmin := h.IsAdmin(c)

	var (
		resp *dto.MessageListResponse
		err  error
	)
	switch {
	case query.UserID == "":
		// Whole thread, no participant filter: back-office only.
		if !isAdmin {
			h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		resp, err = h.messages.ListAll(c.Request.Context(), query.JobID)

	case query.UserID != callerID && !isAdmin:
		h.HandleServiceError(c, apperrors.NewForbiddenError("Cannot read another user's messages"))
		return

	default:
		resp, err = h.messages.List(c.Request.Context(), query.JobID, query.UserID)
	}

	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Short shared cache: the WebSocket push makes polling cheap and
	// rare, and this endpoint is the catch-up source of truth.
	c.Header("Cache-Control", "public, max-age=20")
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Send a message in a job's thread
// @Description The sender/receiver pair must be the job's poster and an administrator.
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMessageRequest true "Message"
// @Success 201 {object} dto.ChatMessageResponse
// @Router /messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	senderID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.messages.Create(c.Request.Context(), senderID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MarkRead godoc
// @Summary Mark the caller's unread messages in a job as read
// @Tags messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkReadRequest true "Job"
// @Success 200 {object} dto.MarkReadResponse
// @Router /messages/read [put]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.messages.MarkRead(c.Request.Context(), req.JobID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
