package infrastructure

import "os"

// Config holds everything read from the environment at startup.
type Config struct {
	Env  string
	Port string

	MongoURI string
	MongoDB  string

	JWTSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string

	// Allowed browser origins for the two frontends.
	ClientURL string
	AdminURL  string

	RedisAddr string
	UploadDir string
}

// Load reads configuration from environment variables with development
// fallbacks.
func Load() *Config {
	return &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "5000"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "ecombazaar"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-jwt-secret"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		ClientURL:         getEnv("CLIENT_URL", "http://localhost:5173"),
		AdminURL:          getEnv("ADMIN_URL", "http://localhost:5174"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
	}
}

// Production reports whether the app runs in production mode. Controls
// cookie security flags and gin's release mode.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// AllowedOrigins lists the browser origins CORS accepts.
func (c *Config) AllowedOrigins() []string {
	return []string{c.ClientURL, c.AdminURL}
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
