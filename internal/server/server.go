package server

import (
	"context"
	"net/http"
	"saree-checkout/internal/handler"
	"saree-checkout/internal/middleware"
	"saree-checkout/internal/service"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type Server struct {
	echo            *echo.Echo
	tokens          *service.TokenManager
	paymentHandler  *handler.PaymentHandler
	callbackHandler *handler.CallbackHandler
	orderHandler    *handler.OrderHandler
	authHandler     *handler.AuthHandler
}

type Options struct {
	FrontendURL  string
	SecureCookie bool
}

func NewServer(
	razorpayService service.RazorpayService,
	gatewayService service.GatewayService,
	orderService service.OrderService,
	authService service.AuthService,
	tokens *service.TokenManager,
	opts Options,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Warnf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{opts.FrontendURL},
		AllowCredentials: true,
	}))

	s := &Server{
		echo:            e,
		tokens:          tokens,
		paymentHandler:  handler.NewPaymentHandler(razorpayService, gatewayService, orderService),
		callbackHandler: handler.NewCallbackHandler(gatewayService, opts.FrontendURL),
		orderHandler:    handler.NewOrderHandler(orderService),
		authHandler:     handler.NewAuthHandler(authService, tokens.TTL(), opts.SecureCookie),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")
	requireAuth := middleware.AuthMiddleware(s.tokens)

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/send-otp", s.authHandler.SendOTP)
	auth.POST("/verify-otp", s.authHandler.VerifyOTP)

	// -------- payment --------
	payment := api.Group("/payment")
	payment.POST("/orders", s.paymentHandler.CreateRazorpayOrder)
	payment.POST("/verify", s.paymentHandler.VerifyRazorpayPayment, requireAuth)
	payment.POST("/cod", s.paymentHandler.CreateCODOrder, requireAuth)
	payment.POST("/create-payment", s.paymentHandler.CreateGatewayPayment, requireAuth)

	// -------- gateway callbacks --------
	payment.POST("/success", s.callbackHandler.PaymentSuccess)
	payment.POST("/failure", s.callbackHandler.PaymentFailure)

	// -------- orders --------
	orders := api.Group("/orders", requireAuth)
	orders.GET("", s.orderHandler.ListOrders)
	orders.GET("/:id", s.orderHandler.GetOrder)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
