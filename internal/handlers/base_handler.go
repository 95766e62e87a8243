package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"buildxpert/internal/validator"
	"buildxpert/pkg/apperrors"
	"buildxpert/pkg/contextkeys"
)

// BaseHandler carries the helpers every HTTP handler shares.
type BaseHandler struct {
	Validator *validator.Validator
}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{Validator: validator.New()}
}

// GetDB pulls the request-scoped gorm handle placed by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	db, _ := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)
	return db
}

// BindAndValidateJSON decodes the body into obj and runs struct
// validation. On failure it writes the error response and returns
// false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidateQuery decodes query parameters into obj and validates.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if err := h.Validator.Validate(obj); err != nil {
		if ve, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError forwards a service-layer error to the client.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// GetUserID returns the authenticated user id set by AuthMiddleware.
func (h *BaseHandler) GetUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("userID")
	userID, _ := userIDVal.(string)
	if !exists || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization required"))
		return "", false
	}
	return userID, true
}

// IsAdmin reports whether the authenticated request carries the admin
// role.
func (h *BaseHandler) IsAdmin(c *gin.Context) bool {
	role, _ := c.Get("userRole")
	return role == "ADMIN"
}

// ParsePagination reads page/page_size with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
