package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/linesheet-app/linesheet-golang/internal/handlers"
	"github.com/linesheet-app/linesheet-golang/internal/middleware"
)

// CORSMiddleware tells the browser it is safe for the admin frontend
// to send requests (including the Authorization header) to us.
func CORSMiddleware() gin.HandlerFunc {
	// Default to the local Vite dev server when FRONTEND_ORIGIN is unset.
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Handle the "Preflight" OPTIONS request.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	// CORS must be the very first thing the router uses.
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)
		v1.POST("/auth/verify-email", h.VerifyEmail)
		v1.POST("/auth/resend-code", h.ResendVerificationEmail)
		v1.POST("/auth/mfa/challenge", h.MFAChallenge)

		// --- Shared Linesheet (Public, token-gated) ---
		v1.GET("/shared/:token", h.GetSharedLinesheet)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.DB))
		{
			auth.GET("/profile/me", h.GetMyProfile)

			// --- MFA Enrollment ---
			auth.POST("/auth/mfa/setup", h.MFASetup)
			auth.POST("/auth/mfa/verify", h.MFAVerify)

			// --- Catalog Routes (Shopify proxy) ---
			auth.GET("/products/search", h.SearchProducts)
			auth.GET("/products/:id", h.GetProduct)

			// --- Linesheet Routes ---
			linesheets := auth.Group("/linesheets")
			{
				linesheets.POST("/", h.CreateLinesheet)
				linesheets.GET("/", h.GetMyLinesheets)
				linesheets.GET("/:id", h.GetLinesheet)
				linesheets.PUT("/:id", h.UpdateLinesheet)
				linesheets.DELETE("/:id", h.DeleteLinesheet)
				linesheets.POST("/:id/preview", h.PreviewLinesheet)
				linesheets.POST("/:id/render", h.RenderLinesheet)
				linesheets.POST("/:id/share", h.ShareLinesheet)
			}

			// --- Price List Routes ---
			priceLists := auth.Group("/price-lists")
			{
				priceLists.POST("/", h.CreatePriceList)
				priceLists.GET("/", h.GetMyPriceLists)
				priceLists.GET("/:id", h.GetPriceList)
				priceLists.DELETE("/:id", h.DeletePriceList)
			}
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.DB))
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.GET("/users/pending", h.GetPendingUsers)
			admin.PATCH("/users/:id/approve", h.ApproveUser)
			admin.PATCH("/users/:id/reject", h.RejectUser)

			admin.GET("/settings", h.GetSettings)
			admin.PATCH("/settings", h.UpdateSettings)
		}
	}

	return router
}
