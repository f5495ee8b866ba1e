package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triviapro/user-service/internal/dto"
	"github.com/triviapro/user-service/internal/repository"
	"github.com/triviapro/user-service/internal/service"
)

// respondError maps service-layer sentinels to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	label := "Internal server error"

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		status, label = http.StatusConflict, "Conflict"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, label = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrWrongProvider),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrInvalidVerificationToken),
		errors.Is(err, service.ErrValidation):
		status, label = http.StatusBadRequest, "Bad request"
	case errors.Is(err, repository.ErrNotFound):
		status, label = http.StatusNotFound, "Not found"
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   label,
		Message: err.Error(),
	})
}

func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
