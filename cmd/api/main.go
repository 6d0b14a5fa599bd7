package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"saree-checkout/internal/client"
	"saree-checkout/internal/config"
	"saree-checkout/internal/repository"
	"saree-checkout/internal/server"
	"saree-checkout/internal/service"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(&cfg.Log)

	db, err := client.InitDatabase(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := client.InitRedisClient(startCtx, &cfg.Redis)
	startCancel()
	if err != nil {
		log.Fatalf("init redis: %v", err)
	}
	defer redisClient.Close()

	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)
	gatewayClient := client.NewGatewayClient(&cfg.Gateway)
	smsClient := client.NewSMSClient(&cfg.SMS)
	warnUnconfigured(razorpayClient, gatewayClient, smsClient)
	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET not set, login and authenticated routes will fail")
	}

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	userRepo := repository.NewUserRepository(db)
	otpStore := repository.NewOTPStore(redisClient)

	snapshotter := service.NewSnapshotter(cartRepo, addressRepo)
	orderService := service.NewOrderService(db, snapshotter, orderRepo, cartRepo)
	razorpayService := service.NewRazorpayService(razorpayClient, orderRepo, orderService)
	gatewayService := service.NewGatewayService(gatewayClient, orderService, &cfg.Gateway, cfg.BackendURL)
	tokens := service.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(otpStore, userRepo, smsClient, tokens, cfg.OTP.TTL)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		razorpayService,
		gatewayService,
		orderService,
		authService,
		tokens,
		server.Options{
			FrontendURL:  cfg.FrontendURL,
			SecureCookie: cfg.Environment.IsProduction() || strings.HasPrefix(cfg.BackendURL, "https://"),
		},
	)

	log.Infof("Starting HTTP server on %s", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
}

func setupLogger(cfg *config.Log) {
	switch strings.ToLower(cfg.Level) {
	case "debug":
		log.SetLevel(log.DEBUG)
	case "warn":
		log.SetLevel(log.WARN)
	case "error":
		log.SetLevel(log.ERROR)
	default:
		log.SetLevel(log.INFO)
	}

	if cfg.Format == "text" {
		log.SetHeader("${time_rfc3339} ${level} ${short_file}:${line}")
	}
}

func warnUnconfigured(razorpayClient client.RazorpayClient, gatewayClient client.GatewayClient, smsClient client.SMSClient) {
	if !razorpayClient.Configured() {
		log.Warn("RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET not set, razorpay checkout disabled")
	}
	if !gatewayClient.Configured() {
		log.Warn("PG_API_URL / PG_API_KEY / PG_SALT not set, payment gateway disabled")
	}
	if !smsClient.Configured() {
		log.Warn("FAST2SMS_API_KEY not set, otp login disabled")
	}
}
