package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/services"
)

type JobHandler struct {
	*BaseHandler
	jobs *services.JobService
}

func NewJobHandler(base *BaseHandler, jobs *services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs}
}

// Create godoc
// @Summary Start a job draft
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Initial fields"
// @Success 201 {object} dto.JobResponse
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobs.CreateDraft(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Apply one wizard step to a draft
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.UpdateJobRequest true "Changed fields"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobs.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Publish godoc
// @Summary Publish a complete draft
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id}/publish [post]
func (h *JobHandler) Publish(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobs.Publish(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary Close a published job
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id}/close [post]
func (h *JobHandler) Close(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobs.Close(c.Request.Context(), c.Param("id"), userID, h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	callerID, _ := c.Get("userID")
	userID, _ := callerID.(string)

	resp, err := h.jobs.Get(c.Request.Context(), c.Param("id"), userID, h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List jobs with filters
// @Tags jobs
// @Produce json
// @Param status query string false "Status filter"
// @Param city query string false "City filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.JobListResponse
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.jobs.List(c.Request.Context(), query, h.IsAdmin(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine godoc
// @Summary List the caller's own jobs
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.JobListResponse
// @Router /jobs/mine [get]
func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.jobs.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AttachImage godoc
// @Summary Attach an uploaded image to a job
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Param upload_id path string true "Upload ID"
// @Success 200 {object} dto.MessageResponse
// @Router /jobs/{id}/images/{upload_id} [post]
func (h *JobHandler) AttachImage(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.jobs.AttachImage(c.Request.Context(), c.Param("id"), c.Param("upload_id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Image attached"})
}
