package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

const (
	codeValidationFailed = "validation_failed"
	codeInvalidRequest   = "invalid_request"
	codeNotFound         = "not_found"
	codeConflict         = "conflict"
	codeInternal         = "internal"
)

// APIError - тело ошибки в ответе.
type APIError struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// ErrorEnvelope оборачивает APIError в поле "error".
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, apiErr APIError) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: apiErr})
}

func respondInvalid(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, APIError{Message: message, Code: codeInvalidRequest})
}

// respondServiceError переводит ошибки бизнес-операций в HTTP-ответы.
// Детали внутренних ошибок уходят только в лог.
func respondServiceError(c *gin.Context, logger *log.Entry, err error) {
	if verr, ok := domain.AsValidation(err); ok {
		respondError(c, http.StatusBadRequest, APIError{
			Message: "validation failed",
			Code:    codeValidationFailed,
			Fields:  verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		respondError(c, http.StatusNotFound, APIError{Message: domain.ErrCustomerNotFound.Error(), Code: codeNotFound})
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(c, http.StatusNotFound, APIError{Message: domain.ErrProductNotFound.Error(), Code: codeNotFound})
	case errors.Is(err, domain.ErrPurchaseNotFound):
		respondError(c, http.StatusNotFound, APIError{Message: domain.ErrPurchaseNotFound.Error(), Code: codeNotFound})
	case errors.Is(err, domain.ErrProductInUse):
		respondError(c, http.StatusConflict, APIError{Message: domain.ErrProductInUse.Error(), Code: codeConflict})
	default:
		logger.WithError(err).WithFields(log.Fields{
			"route":      c.FullPath(),
			"request_id": requestID(c),
		}).Error("request failed")
		respondError(c, http.StatusInternalServerError, APIError{Message: "internal server error", Code: codeInternal})
	}
}
