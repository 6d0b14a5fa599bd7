package handler

import (
	"net/http"
	"saree-checkout/internal/dto"
	"saree-checkout/internal/middleware"
	"saree-checkout/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	razorpayService service.RazorpayService
	gatewayService  service.GatewayService
	orderService    service.OrderService
}

func NewPaymentHandler(
	razorpayService service.RazorpayService,
	gatewayService service.GatewayService,
	orderService service.OrderService,
) *PaymentHandler {
	return &PaymentHandler{
		razorpayService: razorpayService,
		gatewayService:  gatewayService,
		orderService:    orderService,
	}
}

func (h *PaymentHandler) CreateRazorpayOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateRazorpayOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	checkout, err := h.razorpayService.CreateOrder(ctx, &service.RazorpayOrderInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkout)
}

func (h *PaymentHandler) VerifyRazorpayPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyRazorpayPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.razorpayService.VerifyPayment(ctx, middleware.UserID(c), &service.RazorpayVerifyInput{
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.OrderResponse{
		Success: true,
		Order:   order,
	})
}

func (h *PaymentHandler) CreateCODOrder(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.CreateCODOrder(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.OrderResponse{
		Success: true,
		Order:   order,
	})
}

func (h *PaymentHandler) CreateGatewayPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	redirectURL, err := h.gatewayService.CreatePayment(ctx, middleware.UserID(c), &service.GatewayPaymentInput{
		OrderID: req.OrderID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CreatePaymentResponse{
		RedirectURL: redirectURL,
	})
}
