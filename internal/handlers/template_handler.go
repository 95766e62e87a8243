package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/services"
)

type TemplateHandler struct {
	*BaseHandler
	templates *services.TemplateService
}

func NewTemplateHandler(base *BaseHandler, templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{BaseHandler: base, templates: templates}
}

// Create godoc
// @Summary Create an email template override
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Router /admin/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.templates.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update an email template
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body dto.UpdateTemplateRequest true "Changed fields"
// @Success 200 {object} dto.TemplateResponse
// @Router /admin/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.templates.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one email template
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} dto.TemplateResponse
// @Router /admin/templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	resp, err := h.templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List email templates
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.TemplateResponse
// @Router /admin/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	resp, err := h.templates.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete an email template override
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Template deleted"})
}
