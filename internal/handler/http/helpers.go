package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/likesync/internal/domain/entity"
	"github.com/mikiasgoitom/likesync/internal/handler/http/dto"
)

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

// SyncErrorHandler maps an engine error onto an HTTP status and writes the
// taxonomy message. Remote terminal statuses pass through unchanged.
func SyncErrorHandler(c *gin.Context, err error) {
	var rl *entity.RateLimitedError
	var term *entity.TerminalError
	switch {
	case errors.Is(err, entity.ErrAlreadyInFlight):
		ErrorHandler(c, http.StatusConflict, entity.SyncErrorMessage(err))
	case errors.As(err, &rl):
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.Wait.Seconds()))))
		ErrorHandler(c, http.StatusTooManyRequests, entity.SyncErrorMessage(err))
	case errors.Is(err, entity.ErrAuthRequired):
		ErrorHandler(c, http.StatusUnauthorized, entity.SyncErrorMessage(err))
	case errors.As(err, &term):
		ErrorHandler(c, term.Status, entity.SyncErrorMessage(err))
	case errors.Is(err, entity.ErrNetwork), errors.Is(err, entity.ErrServer):
		ErrorHandler(c, http.StatusBadGateway, entity.SyncErrorMessage(err))
	default:
		ErrorHandler(c, http.StatusInternalServerError, entity.SyncErrorMessage(err))
	}
}
