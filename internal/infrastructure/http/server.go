package http

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/roomlet/payment-service/internal/adapter/handler/http"
	"github.com/roomlet/payment-service/internal/config"
	"github.com/roomlet/payment-service/internal/domain/processor"
	"github.com/roomlet/payment-service/internal/infrastructure/database"
	"github.com/roomlet/payment-service/internal/middleware/auth"
	"github.com/roomlet/payment-service/internal/usecase"
)

type Server struct {
	config    *config.Config
	logger    *zap.Logger
	echo      *echo.Echo
	repos     *database.Repositories
	processor processor.PaymentProcessor
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, proc processor.PaymentProcessor) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:    cfg,
		logger:    logger,
		echo:      e,
		repos:     repos,
		processor: proc,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	paymentService := usecase.NewPaymentService(s.repos.Payment, s.processor, s.logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, s.logger)

	authConfig := auth.Config{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/api/v1/payments/health",
		},
	}

	payments := s.echo.Group("/api/v1/payments")
	payments.GET("/health", paymentHandler.Health)

	protected := payments.Group("", auth.Middleware(authConfig))
	protected.POST("", paymentHandler.CreatePayment)
	protected.GET("/:id", paymentHandler.GetPayment)
	protected.GET("/user/:userId", paymentHandler.GetPaymentsByUser)
	protected.GET("/room/:roomId", paymentHandler.GetPaymentsByRoom)
	protected.GET("/user/:userId/room/:roomId", paymentHandler.GetPaymentsByUserAndRoom)
	protected.POST("/:id/confirm", paymentHandler.ConfirmPayment)
	protected.POST("/:id/refund", paymentHandler.RefundPayment)
	protected.PUT("/:id/status", paymentHandler.UpdatePaymentStatus)
}
