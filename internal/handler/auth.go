package handler

import (
	"net/http"
	"saree-checkout/internal/dto"
	"saree-checkout/internal/middleware"
	"saree-checkout/internal/service"
	"time"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService  service.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) SendOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if err := h.authService.SendOTP(ctx, req.PhoneNumber()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.MessageResponse{
		Success: true,
		Message: "OTP sent successfully",
	})
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, token, err := h.authService.VerifyOTP(ctx, req.PhoneNumber(), req.OTP)
	if err != nil {
		return err
	}

	sameSite := http.SameSiteLaxMode
	if h.secureCookie {
		// the frontend is served from another origin in production
		sameSite = http.SameSiteNoneMode
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: sameSite,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})

	return c.JSON(http.StatusOK, &dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}
