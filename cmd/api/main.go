package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"astroconsult/internal/config"
	"astroconsult/internal/database"
	"astroconsult/internal/gateway/razorpay"
	"astroconsult/internal/middleware"
	"astroconsult/internal/modules/assistant"
	"astroconsult/internal/modules/auth"
	"astroconsult/internal/modules/availability"
	"astroconsult/internal/modules/calendar"
	"astroconsult/internal/modules/catalog"
	"astroconsult/internal/modules/flow"
	"astroconsult/internal/modules/notifier"
	"astroconsult/internal/modules/payment"
	jwtsvc "astroconsult/internal/pkg/jwt"
	"astroconsult/internal/repository"
)

const (
	sessionSweepInterval = 10 * time.Minute
	sessionTTL           = 2 * time.Hour
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewPaymentOrderRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	gateway := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpaySecret, cfg.GatewayTimeout)
	if cfg.GatewayBaseURL != "" {
		gateway = gateway.WithBaseURL(cfg.GatewayBaseURL)
	}

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService()
	catalogHandler := catalog.NewHandler(catalogService)

	generator := availability.NewGenerator(nil)
	availabilityHandler := availability.NewHandler(generator)

	flowService := flow.NewService(catalogService, generator)
	flowHandler := flow.NewHandler(flowService)

	hub := notifier.NewHub()
	notifierService := notifier.NewService(notifier.DefaultTTL, hub)
	notifierHandler := notifier.NewHandler(notifierService, hub)

	links := calendar.NewBuilder(cfg.AdvisorEmail, cfg.BookingLocation)

	paymentService := payment.NewService(gateway, orderRepo, flowService, notifierService, links, nil, payment.Config{
		MerchantName: cfg.MerchantName,
		ThemeColor:   cfg.CheckoutTheme,
	})
	paymentHandler := payment.NewHandler(paymentService)

	assistantService := assistant.NewService(cfg.AssistantURL, 0)
	assistantHandler := assistant.NewHandler(assistantService)

	go flowService.Janitor(context.Background(), sessionSweepInterval, sessionTTL)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			flowHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			notifierHandler.RegisterRoutes(protected)
			assistantHandler.RegisterRoutes(protected)
		}
	}

	addr := ":" + getEnv("PORT", "8080")
	log.Printf("api_listening addr=%s env=%s", addr, cfg.AppEnv)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
