package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"saree-checkout/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Error codes the frontend failure page understands.
const (
	CodeVerificationFailed = "verification_failed"
	CodePaymentFailed      = "payment_failed"
	CodeOrderNotFound      = "order_not_found"
	CodeServerError        = "server_error"
)

// CallbackHandler receives the gateway's browser callbacks. It never
// answers with JSON; the buyer always lands on a frontend page.
type CallbackHandler struct {
	gatewayService service.GatewayService
	frontendURL    string
}

func NewCallbackHandler(gatewayService service.GatewayService, frontendURL string) *CallbackHandler {
	return &CallbackHandler{
		gatewayService: gatewayService,
		frontendURL:    strings.TrimRight(frontendURL, "/"),
	}
}

func (h *CallbackHandler) PaymentSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	fields, err := callbackFields(c)
	if err != nil {
		log.Warnf("read gateway success callback: %v", err)
		return h.redirect(c, "/payment-failure", "error", CodeServerError)
	}

	orderID, err := h.gatewayService.HandleSuccess(ctx, fields)
	if err != nil {
		code := callbackErrorCode(err)
		if code == CodeServerError {
			log.Errorf("gateway success callback: %v", err)
		}
		return h.redirect(c, "/payment-failure", "error", code)
	}

	return h.redirect(c, "/payment-success", "orderId", orderID)
}

func (h *CallbackHandler) PaymentFailure(c echo.Context) error {
	ctx := c.Request().Context()

	fields, err := callbackFields(c)
	if err != nil {
		log.Warnf("read gateway failure callback: %v", err)
		return h.redirect(c, "/payment-failure", "error", CodeServerError)
	}

	pgOrderID, err := h.gatewayService.HandleFailure(ctx, fields)
	if err != nil {
		log.Errorf("gateway failure callback: %v", err)
		return h.redirect(c, "/payment-failure", "error", CodeServerError)
	}

	return h.redirect(c, "/payment-failure", "orderId", pgOrderID)
}

func (h *CallbackHandler) redirect(c echo.Context, page, key, value string) error {
	query := url.Values{}
	query.Set(key, value)
	return c.Redirect(http.StatusFound, h.frontendURL+page+"?"+query.Encode())
}

func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrHashMismatch),
		errors.Is(err, service.ErrProviderCommunication):
		return CodeVerificationFailed
	case errors.Is(err, service.ErrPaymentNotConfirmed):
		return CodePaymentFailed
	case errors.Is(err, service.ErrOrderNotFound):
		return CodeOrderNotFound
	default:
		return CodeServerError
	}
}

// callbackFields flattens a form or JSON callback body into string fields.
// Only the first value of a repeated form key is kept.
func callbackFields(c echo.Context) (map[string]string, error) {
	req := c.Request()

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var body map[string]interface{}
		dec := json.NewDecoder(req.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("decode callback body: %w", err)
		}

		fields := make(map[string]string, len(body))
		for k, v := range body {
			switch t := v.(type) {
			case nil:
				fields[k] = ""
			case string:
				fields[k] = t
			default:
				fields[k] = fmt.Sprint(t)
			}
		}
		return fields, nil
	}

	params, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("parse callback form: %w", err)
	}

	fields := make(map[string]string, len(params))
	for k := range params {
		fields[k] = params.Get(k)
	}
	return fields, nil
}
