package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/services"
)

type ContactHandler struct {
	*BaseHandler
	contacts *services.ContactService
}

func NewContactHandler(base *BaseHandler, contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{BaseHandler: base, contacts: contacts}
}

// Create godoc
// @Summary Submit the public contact form
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact form"
// @Success 201 {object} dto.ContactResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List contact submissions (back office)
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} dto.ContactListResponse
// @Router /admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	page, pageSize := h.ParsePagination(c)

	resp, err := h.contacts.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Change a contact submission's status
// @Tags contacts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactStatusRequest true "New status"
// @Success 200 {object} dto.ContactResponse
// @Router /admin/contacts/{id} [put]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateContactStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a contact submission
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Contact deleted"})
}
