package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Token provider names.
const (
	ProviderFirebase = "firebase"
	ProviderJWT      = "jwt"
)

// MaxCustomTokenTTL is the longest lifetime the identity backend accepts
// for a custom token.
const MaxCustomTokenTTL = time.Hour

// Config holds the application configuration
type Config struct {
	Port               string        // Service port
	ServiceAccountFile string        // Path to the service-account JSON key
	TokenProvider      string        // firebase or jwt
	FirebaseProjectID  string        // Optional project id override
	BackendTimeout     time.Duration // Bound on a single mint call
	CustomTokenTTL     time.Duration // Lifetime of locally signed tokens
	RateLimitRPM       int           // Per-IP requests per minute, 0 disables
	RateLimitBurst     int           // Per-IP burst
	RelaySharedSecret  string        // Optional secret callers must present
	TrustedProxies     []*net.IPNet  // Proxies whose X-Forwarded-For is believed
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		Port:               getEnv("PORT", "5000"),
		ServiceAccountFile: getEnv("SERVICE_ACCOUNT_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		TokenProvider:      strings.ToLower(getEnv("TOKEN_PROVIDER", ProviderFirebase)),
		FirebaseProjectID:  getEnv("FIREBASE_PROJECT_ID", ""),
		BackendTimeout:     5 * time.Second,
		CustomTokenTTL:     MaxCustomTokenTTL,
		RateLimitRPM:       60,
		RateLimitBurst:     10,
		RelaySharedSecret:  getEnv("RELAY_SHARED_SECRET", ""),
	}

	var err error
	if config.BackendTimeout, err = getDuration("BACKEND_TIMEOUT", config.BackendTimeout); err != nil {
		return nil, err
	}
	if config.CustomTokenTTL, err = getDuration("CUSTOM_TOKEN_TTL", config.CustomTokenTTL); err != nil {
		return nil, err
	}
	if config.RateLimitRPM, err = getInt("RATE_LIMIT_RPM", config.RateLimitRPM); err != nil {
		return nil, err
	}
	if config.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", config.RateLimitBurst); err != nil {
		return nil, err
	}
	if config.TrustedProxies, err = getCIDRs("TRUSTED_PROXIES"); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.ServiceAccountFile == "" {
		return fmt.Errorf("SERVICE_ACCOUNT_FILE (or GOOGLE_APPLICATION_CREDENTIALS) must be set")
	}

	switch c.TokenProvider {
	case ProviderFirebase, ProviderJWT:
	default:
		return fmt.Errorf("TOKEN_PROVIDER must be %q or %q, got %q", ProviderFirebase, ProviderJWT, c.TokenProvider)
	}

	if c.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}

	if c.CustomTokenTTL <= 0 || c.CustomTokenTTL > MaxCustomTokenTTL {
		return fmt.Errorf("CUSTOM_TOKEN_TTL must be in (0, %s]", MaxCustomTokenTTL)
	}

	if c.RateLimitRPM < 0 {
		return fmt.Errorf("RATE_LIMIT_RPM cannot be negative")
	}

	if c.RateLimitRPM > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return duration, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return n, nil
}

// getCIDRs parses a comma-separated list of CIDRs. A bare IP is read as a
// single-host range.
func getCIDRs(key string) ([]*net.IPNet, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}

	var nets []*net.IPNet
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "/") {
			if ip := net.ParseIP(part); ip != nil && ip.To4() != nil {
				part += "/32"
			} else {
				part += "/128"
			}
		}
		_, ipNet, err := net.ParseCIDR(part)
		if err != nil {
			return nil, fmt.Errorf("invalid %s format: %w", key, err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}
