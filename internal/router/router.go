package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lexio-dev/lexio/internal/auth"
	"github.com/lexio-dev/lexio/internal/authz"
	"github.com/lexio-dev/lexio/internal/config"
	"github.com/lexio-dev/lexio/internal/handlers"
	"github.com/lexio-dev/lexio/internal/middleware"
	"github.com/lexio-dev/lexio/internal/types"
)

// New wires the token service and authorization policy once from config and
// hands them to the handlers; nothing downstream consults the environment.
func New(cfg config.Config) *gin.Engine {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	policy := authz.NewPolicy(tokens.Mode())

	authHandler := handlers.NewAuthHandler(tokens)
	objectHandler := handlers.NewObjectHandler(policy, tokens.Mode())
	metadataHandler := handlers.NewMetadataHandler()
	relationHandler := handlers.NewRelationHandler()
	projectHandler := handlers.NewProjectHandler(policy)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Metrics())

	r.GET("/health", handlers.HealthCheck)
	r.GET("/ready", handlers.Ready)
	r.GET("/metrics", handlers.Metrics)

	users := r.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh", authHandler.Refresh)
		users.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)
	}

	objects := r.Group("/objects")
	{
		objects.GET("", middleware.OptionalAuth(tokens), objectHandler.ListObjects)
		objects.GET("/:id", objectHandler.GetObject)
		objects.POST("", middleware.OptionalAuth(tokens), objectHandler.CreateObject)
	}

	projects := r.Group("/projects")
	{
		projects.POST("", middleware.RequireAuth(tokens), projectHandler.CreateProject)
		projects.GET("", middleware.RequireAuth(tokens), projectHandler.ListProjects)
		projects.GET("/:id/objects", middleware.OptionalAuth(tokens), projectHandler.ListProjectObjects)
	}

	r.POST("/metadata", middleware.OptionalAuth(tokens), metadataHandler.CreateMetadata)
	r.POST("/relations", middleware.OptionalAuth(tokens), relationHandler.CreateRelation)

	return r
}
