package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/quickcart/storefront/internal/config"
	"github.com/quickcart/storefront/pkg/razorpay"
	"github.com/quickcart/storefront/pkg/stripe"
)

// Endpoints are the dependencies worth probing: the session store, the
// commerce backend, and whichever gateway is configured.
type Endpoints struct {
	RazorpayClient razorpay.Client
	StripeClient   stripe.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
		{
			Name:      "commerce-backend",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check:     reachabilityCheck(cfg.Upstream.BaseURL),
		},
	}

	switch cfg.Payment.Gateway {
	case "stripe":
		checks = append(checks, health.Config{
			Name:      "stripe",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.StripeClient == nil {
					return fmt.Errorf("stripe client is not initialized")
				}

				if err := endpoints.StripeClient.Ping(); err != nil {
					return fmt.Errorf("failed to connect to stripe: %w", err)
				}

				return nil
			},
		})
	default:
		checks = append(checks, health.Config{
			Name:      "razorpay",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.RazorpayClient == nil {
					return fmt.Errorf("razorpay client is not initialized")
				}

				return reachabilityCheck(endpoints.RazorpayClient.BaseURL())(ctx)
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// reachabilityCheck only asserts the host answers; any HTTP status counts.
func reachabilityCheck(baseURL string) func(ctx context.Context) error {
	return func(ctx context.Context) error {

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return fmt.Errorf("failed to build probe request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("unreachable: %w", err)
		}

		return resp.Body.Close()
	}
}
