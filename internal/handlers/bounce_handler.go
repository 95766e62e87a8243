package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/services"
)

type BounceHandler struct {
	*BaseHandler
	bounces *services.BounceService
}

func NewBounceHandler(base *BaseHandler, bounces *services.BounceService) *BounceHandler {
	return &BounceHandler{BaseHandler: base, bounces: bounces}
}

// Webhook godoc
// @Summary Receive a bounce notification from the email provider
// @Tags bounces
// @Accept json
// @Produce json
// @Param request body dto.BounceWebhookRequest true "Bounce payload"
// @Success 200 {object} dto.MessageResponse
// @Router /webhooks/email-bounce [post]
func (h *BounceHandler) Webhook(c *gin.Context) {
	var req dto.BounceWebhookRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.bounces.Record(c.Request.Context(), req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bounce recorded"})
}

// List godoc
// @Summary List bounced addresses (back office)
// @Tags bounces
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BounceListResponse
// @Router /admin/bounces [get]
func (h *BounceHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)

	resp, err := h.bounces.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Unsuppress godoc
// @Summary Remove an address from the suppression list
// @Tags bounces
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/bounces/{email} [delete]
func (h *BounceHandler) Unsuppress(c *gin.Context) {
	if err := h.bounces.Unsuppress(c.Request.Context(), c.Param("email")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Address unsuppressed"})
}
