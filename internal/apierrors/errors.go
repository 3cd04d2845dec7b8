package apierrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape for every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, ErrorResponse{Detail: detail})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, detail)
}

// Unauthorized sends a 401 response with the bearer challenge header
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Could not validate credentials"
	}
	c.Header("WWW-Authenticate", "Bearer")
	RespondWithError(c, http.StatusUnauthorized, detail)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not authorized"
	}
	RespondWithError(c, http.StatusForbidden, detail)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, detail)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, detail)
}
