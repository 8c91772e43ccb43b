// Marketplace Vehicle Valuator API
// @title Marketplace Vehicle Valuator API
// @version 1.0
// @description Estimates used vehicle prices from marketplace listings
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key

package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "carvaluator/docs"
	"carvaluator/internal/app"
	"carvaluator/internal/config"
	"carvaluator/internal/handlers"
	"carvaluator/internal/middleware"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	application := app.New(cfg, app.Overrides{Insights: true, WithLocation: true})
	defer application.Close()

	r := gin.Default()

	// Configure trusted proxies for tunnels and container networks
	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",
		"10.0.0.0/8",
		"192.168.0.0/16",
	})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Admin-Key"}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.HTTPMethodFilter([]string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodHead}))
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Limit(1), 10)))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler := handlers.NewHandler(
		application.Service,
		application.Cache,
		middleware.NewScrapeThrottle(cfg.ScrapeCooldown),
		cfg.ScrapeTimeout,
	)
	handler.RegisterRoutes(r, cfg.AdminKey)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
