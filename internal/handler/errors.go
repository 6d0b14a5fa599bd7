package handler

import (
	"errors"
	"net/http"
	"saree-checkout/internal/dto"
	"saree-checkout/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ErrorHandler renders every handler error as {"error": message}. Service
// sentinels keep their own message; anything unexpected is logged and
// surfaced as a plain 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	httpStatus, message := statusOf(err)
	if httpStatus >= http.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpStatus)
	} else {
		writeErr = c.JSON(httpStatus, &dto.ErrorResponse{Error: message})
	}
	if writeErr != nil {
		log.Errorf("write error response: %v", writeErr)
	}
}

func statusOf(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, service.ErrUnauthorized.Error()
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, service.ErrOrderNotFound.Error()
	case errors.Is(err, service.ErrDuplicateOrder):
		return http.StatusConflict, service.ErrDuplicateOrder.Error()
	case errors.Is(err, service.ErrProviderCommunication):
		return http.StatusBadGateway, service.ErrProviderCommunication.Error()
	case errors.Is(err, service.ErrServerConfig):
		return http.StatusInternalServerError, service.ErrServerConfig.Error()
	}

	for _, badRequest := range []error{
		service.ErrMissingFields,
		service.ErrInvalidAmount,
		service.ErrEmptyCart,
		service.ErrMissingShippingAddress,
		service.ErrInvalidSignature,
		service.ErrHashMismatch,
		service.ErrPaymentNotConfirmed,
		service.ErrInvalidPhone,
		service.ErrInvalidOTP,
		service.ErrOTPExpired,
	} {
		if errors.Is(err, badRequest) {
			return http.StatusBadRequest, badRequest.Error()
		}
	}

	return http.StatusInternalServerError, "internal server error"
}
