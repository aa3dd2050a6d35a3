package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// If empty, authentication is disabled.
	ApiKey string `mapstructure:"api_key" default:""`
	// RateLimit is the maximum number of requests per second per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `mapstructure:"rate_limit" default:"0"`
	// RateBurst is the maximum burst size allowed by the rate limiter.
	RateBurst int `mapstructure:"rate_burst" default:"20"`
}
