package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/quickcart/storefront/internal/api/handlers"
	"github.com/quickcart/storefront/internal/api/middleware"
	"github.com/quickcart/storefront/internal/cache"
	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/internal/health"
	"github.com/quickcart/storefront/internal/metrics"
	repository "github.com/quickcart/storefront/internal/repositories"
	service "github.com/quickcart/storefront/internal/services"
	"github.com/quickcart/storefront/internal/telemetry"
	"github.com/quickcart/storefront/internal/upstream"
	"github.com/quickcart/storefront/pkg/razorpay"
	"github.com/quickcart/storefront/pkg/sendgrid"
	"github.com/quickcart/storefront/pkg/stripe"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing
	shutdownTracing, err := telemetry.Setup(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Stores
	cartRepo := repository.NewCartRepo()
	sessionRepo := repository.NewSessionRepo(redisClient)
	accountRepo := repository.NewAccountRepo(redisClient)
	rateLimiter := repository.NewLoginRateLimiter(redisClient, &cfg.RateConfig)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	// Outbound clients
	commerce := upstream.New(&cfg.Upstream)
	rzpClient := razorpay.New(razorpay.Config{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
		BaseURL:   cfg.Razorpay.BaseURL,
	})
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey)

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	gateway, err := service.NewPaymentGateway(cfg, rzpClient, stripeClient)
	if err != nil {
		slog.Error("❌ Error selecting payment gateway", "error", err.Error())
		os.Exit(1)
	}

	// Services and handlers
	authenticator := service.NewAuthenticator(cfg, sessionRepo, accountRepo, rateLimiter)
	userHandler := handlers.NewUserHandler(authenticator)
	cartService := service.NewCartService(cartRepo)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(cartService, commerce, &cfg.Payment)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentService := service.NewPaymentService(commerce, gateway, emailService, &cfg.Payment)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	orderService := service.NewOrderService(commerce)
	orderHandler := handlers.NewOrderHandler(orderService)
	productService := service.NewProductService(commerce, productCache, &cfg.Cache)
	productHandler := handlers.NewProductHandler(productService)
	authMiddleware := middleware.NewAuthMiddleware(authenticator)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		RazorpayClient: rzpClient,
		StripeClient:   stripeClient,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storefront initialized",
		slog.String("env", cfg.Env),
		slog.String("authMode", cfg.Auth.Mode),
		slog.String("gateway", gateway.Name()))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authMiddleware.Authenticate(userHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/auth/me", authMiddleware.Authenticate(userHandler.Me()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Submit()))
	routerMux.HandleFunc("POST /api/v1/payments/order", authMiddleware.Authenticate(paymentHandler.CreateOrder()))
	routerMux.HandleFunc("POST /api/v1/payments/confirm", authMiddleware.Authenticate(paymentHandler.Confirm()))
	routerMux.HandleFunc("POST /api/v1/payments/cancel", authMiddleware.Authenticate(paymentHandler.Cancel()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/featured", productHandler.FeaturedProducts())
	routerMux.HandleFunc("GET /api/v1/products/categories", productHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "storefront")
	}

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
