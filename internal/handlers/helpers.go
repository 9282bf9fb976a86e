package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/logger"
	"tokenvest/internal/middleware"
	"tokenvest/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID reads a UUID path parameter. A malformed id cannot name an
// existing row, so it is reported as notFound.
func parsePathID(c *gin.Context, param string, notFound *apperrors.AppError) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", notFound
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, kind, and message. Otherwise
// it logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, apperrors.Body(appErr))
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, apperrors.Body(apperrors.ErrInternalServer))
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is returned by endpoints that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
