package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sosiol/sosiol/internal/api/shared/errors"
	"github.com/sosiol/sosiol/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// respondWithAPIError sends the error envelope with the status matching the error code
func respondWithAPIError(c *gin.Context, apiErr *apierrors.APIError) {
	c.JSON(apiErr.HTTPStatus(), errorResponse{Error: apiErr})
}

// respondWithError sends an executor error. Anything that is not an APIError is logged and
// answered with a generic internal error.
func respondWithError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		respondWithAPIError(c, apiErr)
		return
	}

	logger.ErrorCtx(c.Request.Context(), err)
	respondWithAPIError(c, apierrors.NewInternalError("Internal server error"))
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithAPIError(c, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithAPIError(c, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details ...string) {
	respondWithAPIError(c, apierrors.NewValidationError(details...))
}
