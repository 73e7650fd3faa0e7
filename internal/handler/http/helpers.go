package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/dto"
)

const internalErrorMessage = "internal server error"

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrAuthRequired), errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden), errors.Is(err, entity.ErrSuspended), errors.Is(err, entity.ErrEmailNotConfirmed):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrValidation), errors.Is(err, entity.ErrInvalidToken), errors.Is(err, entity.ErrInvalidAccessCode):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HandleError writes err with its mapped status. Unmapped errors are reported without detail.
func HandleError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		ErrorHandler(c, status, internalErrorMessage)
		return
	}
	ErrorHandler(c, status, err.Error())
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
