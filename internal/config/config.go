package config

import (
	"errors"  // For validation errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list variables
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // Application port
	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name
	JWTSecret         string        // JWT signing secret
	JWTTTL            time.Duration // Token lifetime
	BcryptCost        int           // bcrypt work factor
	RedisAddr         string        // Redis server address, empty disables caching
	RedisPass         string        // Redis password
	RedisDB           int           // Redis database number
	CacheTTL          time.Duration // Lifetime of cached list pages
	LoginRateLimit    int           // Login attempts per minute per client IP
	AssetsRequireAuth bool          // Put asset routes behind the auth verifier
	CORSOrigins       []string      // Browser origins allowed to call the API
	AdminName         string        // Seed admin name
	AdminEmail        string        // Seed admin email
	AdminPassword     string        // Seed admin password
	LogLevel          string        // logrus level name
	IsProd            bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:           getEnv("APP_PORT", "5000"),                       // Application port
		DBUser:            os.Getenv("DB_USER"),                             // Database user
		DBPassword:        os.Getenv("DB_PASSWORD"),                         // Database password
		DBHost:            getEnv("DB_HOST", "127.0.0.1"),                   // Database host
		DBPort:            getEnv("DB_PORT", "3306"),                        // Database port
		DBName:            os.Getenv("DB_NAME"),                             // Database name
		JWTSecret:         os.Getenv("JWT_SECRET"),                          // JWT secret key
		JWTTTL:            getDuration("JWT_TTL", time.Hour),                // Tokens live one hour
		BcryptCost:        getInt("BCRYPT_COST", 12),                        // Work factor 12
		RedisAddr:         os.Getenv("REDIS_ADDR"),                          // Redis server address
		RedisPass:         os.Getenv("REDIS_PASS"),                          // Redis password
		RedisDB:           getInt("REDIS_DB", 0),                            // Redis database number
		CacheTTL:          getDuration("CACHE_TTL", 60*time.Second),         // Cached pages live a minute
		LoginRateLimit:    getInt("LOGIN_RATE_LIMIT", 5),                    // Login attempts per minute
		AssetsRequireAuth: os.Getenv("ASSETS_REQUIRE_AUTH") == "true",       // Asset routes public by default
		CORSOrigins:       getList("CORS_ORIGINS", "http://localhost:3000"), // Allowed browser origins
		AdminName:         getEnv("ADMIN_NAME", "Administrador"),            // Seed admin name
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),                         // Seed admin email
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),                      // Seed admin password
		LogLevel:          getEnv("LOG_LEVEL", "info"),                      // Log level
		IsProd:            os.Getenv("IS_PROD") == "true",                   // Is production environment
	}
}

// Validate reports configuration the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 4 and 31"))
	}
	return errors.Join(errs...)
}

// DSN returns the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, falling back on absence or garbage
func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getDuration parses a Go duration variable such as "90m"
func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

// getList splits a comma-separated variable, dropping empty items
func getList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
