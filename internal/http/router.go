package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"johar-connect/internal/domain"
	"johar-connect/internal/service"
)

// RouterOptions agrupa la configuración transversal del router.
type RouterOptions struct {
	AllowedOrigins []string
	Limiter        service.RateLimiter
	Environment    string
}

// NewRouter configura el router de Gin con middlewares y la superficie /api.
func NewRouter(
	logger *zap.Logger,
	opts RouterOptions,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	resH *ResourceHandler,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()

	r.Use(
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		securityHeadersMiddleware(),
		corsMiddleware(opts.AllowedOrigins),
		rateLimitMiddleware(opts.Limiter),
		jsonContentTypeMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   "johar-connect-api",
			"version":   "1.0.0",
		})
	})

	api := r.Group("/api")
	api.GET("/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Jharkhand Tourism API",
			"environment": opts.Environment,
			"version":     "1.0.0",
		})
	})

	requireAuth := JWTAuthMiddleware(jwtSvc, logger)
	optionalAuth := OptionalJWTMiddleware(jwtSvc)

	auth := api.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/register", userH.Register)
	auth.POST("/logout", userH.Logout)
	auth.GET("/me", requireAuth, userH.Me)

	api.GET("/analytics", resH.GetAnalytics)
	api.GET("/analytics/trends", resH.GetTrends)

	api.GET("/sentiment/analysis", resH.GetSentimentOverview)
	api.POST("/sentiment/analyze", resH.AnalyzeText)

	chain := api.Group("/blockchain")
	chain.GET("/contracts", resH.GetContracts)
	chain.GET("/transactions", resH.GetTransactions)
	chain.GET("/network", resH.GetNetwork)
	chain.POST("/deploy", optionalAuth, resH.DeployContract)

	providers := api.Group("/providers")
	providers.GET("", resH.GetProviders)
	providers.POST("", requireAuth, resH.CreateProvider)
	providers.POST("/:id/verify", requireAuth, RequireRoles(domain.RoleOfficial, domain.RoleAdmin), resH.VerifyProvider)

	market := api.Group("/marketplace")
	market.GET("/products", resH.GetProducts)
	market.GET("/orders", requireAuth, resH.GetOrders)
	market.POST("/orders", requireAuth, resH.CreateOrder)

	api.GET("/feedback", resH.GetFeedback)
	api.POST("/feedback", optionalAuth, resH.SubmitFeedback)

	gov := api.Group("/governance")
	gov.GET("", resH.GetGovernance)
	gov.POST("/proposals", requireAuth, resH.CreateProposal)
	gov.POST("/proposals/:id/vote", requireAuth, resH.Vote)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

var securityHeaders = map[string]string{
	"X-Frame-Options":           "DENY",
	"X-Content-Type-Options":    "nosniff",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
	"Permissions-Policy":        "geolocation=(), microphone=(), camera=()",
	"X-Platform":                "Jharkhand-Tourism",
	"X-API-Version":             "1.0.0",
}

func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		c.Next()
	}
}

// corsMiddleware refleja el Origin solo si está en la lista; "*" acepta cualquiera.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o = strings.TrimSpace(o); o != "" {
			set[o] = true
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (set["*"] || set[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// rateLimitMiddleware limita por IP; /health queda excluido.
func rateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			retry := int(limiter.Window().Seconds())
			if retry <= 0 {
				retry = 60
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
