package api

import (
	"asset_inventory/internal/middleware" // Auth, role gate, logging, errors
	"asset_inventory/internal/store"      // Persistence

	"github.com/gin-gonic/gin" // Gin web framework
)

// Tokens issues and verifies bearer tokens
type Tokens interface {
	TokenIssuer
	middleware.TokenParser
}

// Deps is everything the router wires into handlers
type Deps struct {
	Users             store.Users             // User records
	Assets            store.Assets            // Asset records
	Hasher            PasswordHasher          // Password hashing
	Tokens            Tokens                  // Token issuance and verification
	Cache             ListCache               // List page cache, zero value disables it
	LoginLimiter      *middleware.RateLimiter // Brute-force guard for login, nil disables it
	AssetsRequireAuth bool                    // Put asset routes behind the auth verifier
	CORSOrigins       []string                // Browser origins allowed to call the API
	HealthChecks      []HealthCheck           // Dependencies probed by /healthz
}

// NewRouter builds the gin engine with every route of the service
func NewRouter(d Deps) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(d.CORSOrigins),
		middleware.BodyLimit(),
		middleware.ErrorHandler(),
	)
	r.NoRoute(middleware.NotFoundHandler)

	r.GET("/healthz", HealthHandler(d.HealthChecks...))

	// User routes
	users := r.Group("/api/users")
	login := []gin.HandlerFunc{}
	if d.LoginLimiter != nil {
		login = append(login, d.LoginLimiter.Middleware())
	}
	users.POST("/login", append(login, LoginHandler(d.Users, d.Hasher, d.Tokens))...) // Login endpoint
	users.POST("/register", RegisterHandler(d.Users, d.Hasher, d.Tokens, d.Cache))    // Self-registration

	// Admin-only user routes
	admin := users.Group("", middleware.JWTAuthMiddleware(d.Tokens), middleware.AdminOnlyMiddleware())
	admin.POST("/signup", SignupHandler(d.Users, d.Hasher, d.Tokens, d.Cache)) // Admin creates accounts
	admin.GET("", ListUsersHandler(d.Users, d.Cache))                          // List users
	admin.GET("/:id", GetUserHandler(d.Users))                                 // Get user
	admin.PATCH("/:id", UpdateUserHandler(d.Users, d.Hasher, d.Cache))         // Update user
	admin.DELETE("/:id", DeleteUserHandler(d.Users, d.Cache))                  // Delete user

	// Asset routes
	assets := r.Group("/api/assets")
	if d.AssetsRequireAuth {
		assets.Use(middleware.JWTAuthMiddleware(d.Tokens))
	}
	assets.GET("", ListAssetsHandler(d.Assets, d.Cache))         // List assets
	assets.POST("", CreateAssetHandler(d.Assets, d.Cache))       // Create asset
	assets.GET("/:id", GetAssetHandler(d.Assets))                // Get asset
	assets.PATCH("/:id", UpdateAssetHandler(d.Assets, d.Cache))  // Replace asset fields
	assets.DELETE("/:id", DeleteAssetHandler(d.Assets, d.Cache)) // Delete asset

	return r
}
