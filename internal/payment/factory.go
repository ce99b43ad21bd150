package payment

import (
	"fmt"
	"time"

	"carsharing-backend/internal/config"
)

// NewProvider builds the provider named by cfg.Provider. The mock provider
// is also returned on its own so its checkout page can be mounted.
func NewProvider(cfg config.PaymentConfig, timeout time.Duration) (Provider, *MockProvider, error) {
	switch cfg.Provider {
	case "", "mock":
		m := NewMockProvider(cfg.Domain)
		return m, m, nil
	case "stripe":
		return NewStripeProvider(cfg.SecretKey, timeout), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown payment provider %q", cfg.Provider)
	}
}

// RetryPolicyFrom converts the configured retry settings.
func RetryPolicyFrom(cfg config.PaymentConfig) RetryPolicy {
	return RetryPolicy{
		Attempts:       cfg.RetryAttempts,
		InitialBackoff: time.Duration(cfg.RetryBackoffMillis) * time.Millisecond,
		MaxBackoff:     time.Duration(cfg.RetryMaxBackoffMillis) * time.Millisecond,
	}
}
